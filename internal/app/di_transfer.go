package app

import (
	"fmt"
	"log/slog"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	channelService "github.com/allisson/securetransfer/internal/channel/service"
	transferHTTP "github.com/allisson/securetransfer/internal/transfer/http"
	transferService "github.com/allisson/securetransfer/internal/transfer/service"
	transferUseCase "github.com/allisson/securetransfer/internal/transfer/usecase"
)

// ChannelRegistry returns the registry of delivery channels.
//
// The local channel streams to LOCAL_PEER_URL over a websocket; without a peer it
// loops parts back into this node's coordinator. The cloud relay and short-range
// radio channels are registered but unavailable.
func (c *Container) ChannelRegistry() *channelService.Registry {
	c.channelRegistryInit.Do(func() {
		c.channelRegistry = c.initChannelRegistry()
	})
	return c.channelRegistry
}

// Inbox returns the bounded store of delivered messages.
func (c *Container) Inbox() *transferService.Inbox {
	c.inboxInit.Do(func() {
		c.inbox = transferService.NewInbox(c.config.InboxCapacity)
	})
	return c.inbox
}

// Coordinator returns the transfer coordinator.
func (c *Container) Coordinator() (transferUseCase.Coordinator, error) {
	var err error
	c.coordinatorInit.Do(func() {
		c.coordinator, err = c.initCoordinator()
		if err != nil {
			c.initErrors["coordinator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["coordinator"]; exists {
		return nil, storedErr
	}
	return c.coordinator, nil
}

// TransferHandler returns the transfer HTTP handler.
func (c *Container) TransferHandler() (*transferHTTP.TransferHandler, error) {
	var err error
	c.transferHandlerInit.Do(func() {
		c.transferHandler, err = c.initTransferHandler()
		if err != nil {
			c.initErrors["transferHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transferHandler"]; exists {
		return nil, storedErr
	}
	return c.transferHandler, nil
}

// PortableHandler returns the portable format HTTP handler.
func (c *Container) PortableHandler() *transferHTTP.PortableHandler {
	c.portableHandlerInit.Do(func() {
		c.portableHandler = transferHTTP.NewPortableHandler(c.Logger())
	})
	return c.portableHandler
}

// initChannelRegistry builds the channels and their transports.
func (c *Container) initChannelRegistry() *channelService.Registry {
	logger := c.Logger()

	var transport channelDomain.Transport
	if c.config.LocalPeerURL != "" {
		c.websocketTransport = channelService.NewWebSocketTransport(c.config.LocalPeerURL, logger)
		transport = c.websocketTransport
		logger.Info("local channel streams to peer", slog.String("peer_url", c.config.LocalPeerURL))
	} else {
		c.loopbackTransport = channelService.NewLoopbackTransport()
		transport = c.loopbackTransport
	}

	return channelService.NewRegistry(
		logger,
		channelService.NewLocalChannel(transport, logger),
		channelService.NewCloudRelayChannel(),
		channelService.NewShortRangeRadioChannel(),
	)
}

// initCoordinator creates the coordinator and attaches it to the loopback transport.
func (c *Container) initCoordinator() (transferUseCase.Coordinator, error) {
	engine, err := c.CryptoEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get crypto engine for coordinator: %w", err)
	}

	monitor, err := c.TrustMonitor()
	if err != nil {
		return nil, fmt.Errorf("failed to get trust monitor for coordinator: %w", err)
	}

	transferMetrics, err := c.TransferMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer metrics for coordinator: %w", err)
	}

	coordinator := transferUseCase.NewCoordinator(
		engine,
		transferService.NewFragmenter(),
		c.ChannelRegistry(),
		monitor,
		c.Inbox(),
		c.Logger(),
		transferMetrics,
		transferUseCase.Options{
			TrustGateEnabled: c.config.TrustGateEnabled,
			SessionTTL:       c.config.SessionTTL,
			SweepInterval:    c.config.SessionSweepInterval,
			MaxTotalParts:    c.config.MaxTotalParts,
			MaxSessions:      c.config.MaxSessions,
		},
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for coordinator: %w", err)
		}
		coordinator = transferUseCase.NewCoordinatorWithMetrics(coordinator, businessMetrics)
	}

	if c.loopbackTransport != nil {
		c.loopbackTransport.Attach(coordinator)
	}

	return coordinator, nil
}

// initTransferHandler creates the transfer HTTP handler with all its dependencies.
func (c *Container) initTransferHandler() (*transferHTTP.TransferHandler, error) {
	coordinator, err := c.Coordinator()
	if err != nil {
		return nil, fmt.Errorf("failed to get coordinator for transfer handler: %w", err)
	}

	defaultChannels, err := channelDomain.ParseKinds(c.config.DefaultChannels)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CHANNELS: %w", err)
	}

	handler := transferHTTP.NewTransferHandler(coordinator, c.Inbox(), defaultChannels, c.Logger())
	if c.config.RateLimitEnabled {
		handler.SetFrameRateLimit(c.config.RateLimitRequestsPerSec, c.config.RateLimitBurst)
	}
	return handler, nil
}
