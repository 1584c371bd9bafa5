package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstrumentedRouter(t *testing.T) (*gin.Engine, *Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("gca4g")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "gca4g"))
	router.POST("/v1/messages", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return router, provider
}

func serve(router http.Handler, method, path string) int {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w.Code
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	router, provider := newInstrumentedRouter(t)

	for range 3 {
		require.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/v1/messages"))
	}
	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health"))
	require.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/wp-login.php"))
	require.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/.env"))

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `gca4g_http_requests_total`,
		`method="POST".*route="/v1/messages".*status_code="200"`, `3`)
	assertBizMetricLine(t, output, `gca4g_http_requests_total`,
		`method="GET".*route="/health".*status_code="200"`, `1`)
	assertBizMetricLine(t, output, `gca4g_http_requests_total`,
		`method="GET".*route="unmatched".*status_code="404"`, `2`)
	assertBizMetricLine(t, output, `gca4g_http_request_duration_seconds_count`,
		`method="POST".*route="/v1/messages"`, `3`)
	assert.NotContains(t, output, "wp-login")
}

func TestHTTPMetricsMiddleware_InFlightReturnsToZero(t *testing.T) {
	router, provider := newInstrumentedRouter(t)

	require.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/v1/messages"))

	assert.Regexp(t, `gca4g_http_requests_in_flight(\{[^}]*\})? 0`, scrape(t, provider))
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/v1/messages", routeLabel("/v1/messages"))
	assert.Equal(t, unmatchedRoute, routeLabel(""))
}
