package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine matches a Prometheus sample by name, partial labels and value.
// The exporter injects otel_scope_* labels, hence the regex.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_Operations(t *testing.T) {
	provider, err := NewProvider("gca4g")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "gca4g")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "codegen", "generate", "success")
	bm.RecordOperation(ctx, "codegen", "generate", "success")
	bm.RecordOperation(ctx, "codegen", "generate", "error")
	bm.RecordOperation(ctx, "vault", "secret_save", "success")
	bm.RecordOperation(ctx, "project", "pull", "success")

	bm.RecordDuration(ctx, "codegen", "generate", 2*time.Second, "success")
	bm.RecordDuration(ctx, "codegen", "generate", 3*time.Second, "success")
	bm.RecordDuration(ctx, "project", "pull", 400*time.Millisecond, "success")

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `gca4g_operations_total`,
		`domain="codegen".*operation="generate".*status="success"`, `2`)
	assertBizMetricLine(t, output, `gca4g_operations_total`,
		`domain="codegen".*operation="generate".*status="error"`, `1`)
	assertBizMetricLine(t, output, `gca4g_operations_total`,
		`domain="vault".*operation="secret_save".*status="success"`, `1`)
	assertBizMetricLine(t, output, `gca4g_operation_duration_seconds_count`,
		`domain="codegen".*operation="generate".*status="success"`, `2`)
	assertBizMetricLine(t, output, `gca4g_operation_duration_seconds_bucket`,
		`domain="project".*le="0.5".*operation="pull"`, `1`)
}

func TestBusinessMetrics_RecordCacheLookup(t *testing.T) {
	provider, err := NewProvider("gca4g")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "gca4g")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordCacheLookup(ctx, "generation", false)
	bm.RecordCacheLookup(ctx, "generation", true)
	bm.RecordCacheLookup(ctx, "generation", true)

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `gca4g_cache_lookups_total`, `cache="generation".*result="hit"`, `2`)
	assertBizMetricLine(t, output, `gca4g_cache_lookups_total`, `cache="generation".*result="miss"`, `1`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()
	assert.IsType(t, &NoOpBusinessMetrics{}, noOp)

	assert.NotPanics(t, func() {
		ctx := context.Background()
		noOp.RecordOperation(ctx, "vault", "secret_save", "success")
		noOp.RecordDuration(ctx, "codegen", "generate", time.Second, "error")
		noOp.RecordCacheLookup(ctx, "generation", true)
	})
}
