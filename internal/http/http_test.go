package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authService "github.com/utenadev/gca4g/internal/auth/service"
	codegenMocks "github.com/utenadev/gca4g/internal/codegen/usecase/mocks"
	"github.com/utenadev/gca4g/internal/config"
	messageHTTP "github.com/utenadev/gca4g/internal/message/http"
	"github.com/utenadev/gca4g/internal/metrics"
	oauthMocks "github.com/utenadev/gca4g/internal/oauth/usecase/mocks"
	projectMocks "github.com/utenadev/gca4g/internal/project/usecase/mocks"
	"github.com/utenadev/gca4g/internal/storage"
	vaultMocks "github.com/utenadev/gca4g/internal/vault/usecase/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestServer creates a test server without a storage backend.
func createTestServer() *Server {
	return NewServer(nil, "localhost", 0, discardLogger())
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("NotReady_NilStorage", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not_ready", response["status"])

		components, ok := response["components"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "error", components["storage"])
	})

	t.Run("Ready_BlobStorage", func(t *testing.T) {
		store, err := storage.OpenBlobStore(context.Background(), "mem://")
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		server := NewServer(store, "localhost", 0, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ready"`)
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-Id")
	parsed, err := uuid.Parse(requestID)
	require.NoError(t, err, "X-Request-Id should be a valid UUID")
	assert.NotEqual(t, uuid.Nil, parsed)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type routerFixture struct {
	server *Server
	vault  *vaultMocks.MockVaultUseCase
	token  string
}

// setupRouter builds the full router with a boundary token and mocked use cases.
func setupRouter(t *testing.T, cfg *config.Config) *routerFixture {
	t.Helper()

	tokenService := authService.NewTokenService()
	plain, hash, err := tokenService.GenerateToken()
	require.NoError(t, err)
	cfg.BoundaryTokenHash = hash

	vault := vaultMocks.NewMockVaultUseCase(t)
	handler := messageHTTP.NewMessageHandler(
		vault,
		codegenMocks.NewMockCodeGenUseCase(t),
		oauthMocks.NewMockOAuthUseCase(t),
		projectMocks.NewMockProjectUseCase(t),
		discardLogger(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := createTestServer()
	server.SetupRouter(ctx, cfg, handler, tokenService, nil)

	return &routerFixture{server: server, vault: vault, token: plain}
}

func postMessage(handler http.Handler, token string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/messages", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	handler.ServeHTTP(w, req)
	return w
}

func TestRouter_Messages(t *testing.T) {
	t.Run("Success_Authenticated", func(t *testing.T) {
		f := setupRouter(t, &config.Config{})
		f.vault.On("HasPassword", mock.Anything).Return(false).Once()

		w := postMessage(f.server.GetHandler(), f.token, `{"type":"GET_MASTER_PASSWORD_STATUS"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"hasPassword":false}`, w.Body.String())
	})

	t.Run("Error_MissingToken", func(t *testing.T) {
		f := setupRouter(t, &config.Config{})

		w := postMessage(f.server.GetHandler(), "", `{"type":"GET_MASTER_PASSWORD_STATUS"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("Error_RateLimited", func(t *testing.T) {
		f := setupRouter(t, &config.Config{
			RateLimitEnabled:        true,
			RateLimitRequestsPerSec: 1,
			RateLimitBurst:          1,
		})
		f.vault.On("HasPassword", mock.Anything).Return(true).Once()

		first := postMessage(f.server.GetHandler(), f.token, `{"type":"GET_MASTER_PASSWORD_STATUS"}`)
		second := postMessage(f.server.GetHandler(), f.token, `{"type":"GET_MASTER_PASSWORD_STATUS"}`)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})

	t.Run("NotFound_UnknownRoute", func(t *testing.T) {
		f := setupRouter(t, &config.Config{})

		w := httptest.NewRecorder()
		f.server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("NotFound_MetricsNotExposed", func(t *testing.T) {
		f := setupRouter(t, &config.Config{})

		w := httptest.NewRecorder()
		f.server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServer_StartWithoutRouter(t *testing.T) {
	assert.Error(t, createTestServer().Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := createTestServer()
	server.router = gin.New()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 0, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
