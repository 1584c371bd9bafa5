// Package http provides the HTTP server that exposes the message endpoint.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/utenadev/gca4g/internal/auth/http"
	authService "github.com/utenadev/gca4g/internal/auth/service"
	"github.com/utenadev/gca4g/internal/config"
	messageHTTP "github.com/utenadev/gca4g/internal/message/http"
	"github.com/utenadev/gca4g/internal/metrics"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server.
type Server struct {
	storage Pinger
	server  *http.Server
	router  *gin.Engine
	logger  *slog.Logger
}

// NewServer creates a new HTTP server. storage backs the readiness check.
func NewServer(
	storage Pinger,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		storage: storage,
		logger:  logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
//
// POST /v1/messages is protected by the bearer token middleware when
// cfg.BoundaryTokenHash is set, and rate limited per client IP when enabled.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	messageHandler *messageHTTP.MessageHandler,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	if cfg.BoundaryTokenHash != "" {
		v1.Use(authHTTP.AuthenticationMiddleware(tokenService, cfg.BoundaryTokenHash, s.logger))
	} else {
		s.logger.Warn("boundary token hash not configured, message endpoint is unauthenticated")
	}

	v1.POST("/messages", messageHandler.Handle)

	s.router = router
}

// healthHandler answers liveness probes.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler answers readiness probes by pinging the storage backend.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.storage == nil || s.storage.Ping(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"storage": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"storage": "ok"},
	})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router
	return listenAndServe(s.server, "message server", s.logger)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down message server")
	return s.server.Shutdown(ctx)
}

// listenAndServe blocks until srv is shut down. A graceful shutdown is not an error.
func listenAndServe(srv *http.Server, name string, logger *slog.Logger) error {
	logger.Info("starting "+name, slog.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}
