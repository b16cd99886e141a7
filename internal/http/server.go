// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/securetransfer/internal/config"
	"github.com/allisson/securetransfer/internal/metrics"
	redactionHTTP "github.com/allisson/securetransfer/internal/redaction/http"
	transferHTTP "github.com/allisson/securetransfer/internal/transfer/http"
	trustHTTP "github.com/allisson/securetransfer/internal/trust/http"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	checks map[string]ReadinessCheck
}

// NewServer creates a new HTTP server. checks are evaluated by /ready; a nil
// check is reported as an error.
func NewServer(
	checks map[string]ReadinessCheck,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		checks: checks,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers every route. ctx bounds background work started by
// middleware such as the rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	transferHandler *transferHTTP.TransferHandler,
	portableHandler *transferHTTP.PortableHandler,
	trustHandler *trustHTTP.TrustHandler,
	redactionHandler *redactionHTTP.RedactionHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		transfers := v1.Group("/transfers")
		transfers.POST("", transferHandler.SendHandler)
		transfers.GET("/events", transferHandler.StatusStreamHandler)

		// Inbound endpoints reached by peer nodes.
		inbound := transfers.Group("")
		if cfg.RateLimitEnabled {
			inbound.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
		}
		inbound.POST("/parts", transferHandler.ReceivePartHandler)
		inbound.GET("/ws", transferHandler.PartsSocketHandler)

		v1.DELETE("/sessions/:id", transferHandler.ResetSessionHandler)
		v1.GET("/messages", transferHandler.ListMessagesHandler)

		v1.POST("/portable/export", portableHandler.ExportHandler)
		v1.POST("/portable/import", portableHandler.ImportHandler)

		v1.GET("/trust", trustHandler.GetHandler)
		v1.PUT("/trust/signals", trustHandler.UpdateSignalsHandler)

		v1.POST("/redact", redactionHandler.RedactHandler)
	}

	s.server.RegisterOnShutdown(transferHandler.CloseStreams)
	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	ready := true
	components := make(map[string]string, len(names))
	for _, name := range names {
		check := s.checks[name]
		if check == nil {
			components[name] = "error"
			ready = false
			continue
		}
		if err := check(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.String("component", name), slog.Any("error", err))
			components[name] = "error"
			ready = false
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
