// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"

	channelService "github.com/allisson/securetransfer/internal/channel/service"
	"github.com/allisson/securetransfer/internal/config"
	cryptoService "github.com/allisson/securetransfer/internal/crypto/service"
	cryptoUseCase "github.com/allisson/securetransfer/internal/crypto/usecase"
	"github.com/allisson/securetransfer/internal/http"
	"github.com/allisson/securetransfer/internal/metrics"
	redactionHTTP "github.com/allisson/securetransfer/internal/redaction/http"
	redactionService "github.com/allisson/securetransfer/internal/redaction/service"
	transferHTTP "github.com/allisson/securetransfer/internal/transfer/http"
	transferService "github.com/allisson/securetransfer/internal/transfer/service"
	transferUseCase "github.com/allisson/securetransfer/internal/transfer/usecase"
	trustHTTP "github.com/allisson/securetransfer/internal/trust/http"
	trustUseCase "github.com/allisson/securetransfer/internal/trust/usecase"
	vaultService "github.com/allisson/securetransfer/internal/vault/service"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Lifecycle context for background work owned by components; canceled by Shutdown.
	runCtx    context.Context
	runCancel context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	badgerDB        *badger.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	transferMetrics metrics.TransferMetrics

	// Vault
	kmsService vaultService.KMSService
	vault      vaultService.Vault

	// Crypto
	aeadManager  cryptoService.AEADManager
	cryptoEngine cryptoUseCase.Engine

	// Channels
	loopbackTransport  *channelService.LoopbackTransport
	websocketTransport *channelService.WebSocketTransport
	channelRegistry    *channelService.Registry

	// Transfer
	inbox       *transferService.Inbox
	coordinator transferUseCase.Coordinator

	// Trust
	trustMonitor *trustUseCase.Monitor

	// Redaction
	redactionEngine *redactionService.Engine

	// Handlers
	transferHandler  *transferHTTP.TransferHandler
	portableHandler  *transferHTTP.PortableHandler
	trustHandler     *trustHTTP.TrustHandler
	redactionHandler *redactionHTTP.RedactionHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                   sync.Mutex
	loggerInit           sync.Once
	dbInit               sync.Once
	badgerDBInit         sync.Once
	metricsProviderInit  sync.Once
	businessMetricsInit  sync.Once
	transferMetricsInit  sync.Once
	kmsServiceInit       sync.Once
	vaultInit            sync.Once
	aeadManagerInit      sync.Once
	cryptoEngineInit     sync.Once
	channelRegistryInit  sync.Once
	inboxInit            sync.Once
	coordinatorInit      sync.Once
	trustMonitorInit     sync.Once
	redactionEngineInit  sync.Once
	transferHandlerInit  sync.Once
	portableHandlerInit  sync.Once
	trustHandlerInit     sync.Once
	redactionHandlerInit sync.Once
	httpServerInit       sync.Once
	metricsServerInit    sync.Once
	initErrors           map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	runCtx, runCancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		runCtx:     runCtx,
		runCancel:  runCancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when
// metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// TransferMetrics returns the part delivery and session recorder. It is a no-op
// when metrics are disabled.
func (c *Container) TransferMetrics() (metrics.TransferMetrics, error) {
	var err error
	c.transferMetricsInit.Do(func() {
		c.transferMetrics, err = c.initTransferMetrics()
		if err != nil {
			c.initErrors["transferMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transferMetrics"]; exists {
		return nil, storedErr
	}
	return c.transferMetrics, nil
}

// HTTPServer returns the HTTP server instance with every route registered.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.runCancel()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.websocketTransport != nil {
		if err := c.websocketTransport.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("websocket transport close: %w", err))
		}
	}

	if closer, ok := c.vault.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("kms keeper close: %w", err))
		}
	}

	if c.badgerDB != nil {
		if err := c.badgerDB.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("badger close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initMetricsProvider creates the Prometheus-backed provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initTransferMetrics creates the transfer metrics recorder.
func (c *Container) initTransferMetrics() (metrics.TransferMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for transfer metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpTransferMetrics(), nil
	}
	return metrics.NewTransferMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	transferHandler, err := c.TransferHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer handler for http server: %w", err)
	}

	portableHandler := c.PortableHandler()

	trustHandler, err := c.TrustHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get trust handler for http server: %w", err)
	}

	redactionHandler := c.RedactionHandler()

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	checks, err := c.readinessChecks()
	if err != nil {
		return nil, fmt.Errorf("failed to build readiness checks: %w", err)
	}

	server := http.NewServer(checks, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(
		c.runCtx,
		c.config,
		transferHandler,
		portableHandler,
		trustHandler,
		redactionHandler,
		metricsProvider,
	)

	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}

// readinessChecks reports the crypto key and the channel registry.
func (c *Container) readinessChecks() (map[string]http.ReadinessCheck, error) {
	engine, err := c.CryptoEngine()
	if err != nil {
		return nil, err
	}

	registry := c.ChannelRegistry()

	checks := map[string]http.ReadinessCheck{
		"crypto_key": engine.LoadOrCreateKey,
		"channels": func(context.Context) error {
			if len(registry.Available()) == 0 {
				return errors.New("no channel available")
			}
			return nil
		},
	}

	if c.db != nil {
		db := c.db
		checks["database"] = db.PingContext
	}

	return checks, nil
}
