package app

import (
	"fmt"

	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
	trustHTTP "github.com/allisson/securetransfer/internal/trust/http"
	trustUseCase "github.com/allisson/securetransfer/internal/trust/usecase"
)

// TrustMonitor returns the trust monitor seeded with TRUST_INITIAL_NETWORK and an
// unknown battery level.
func (c *Container) TrustMonitor() (*trustUseCase.Monitor, error) {
	var err error
	c.trustMonitorInit.Do(func() {
		c.trustMonitor, err = c.initTrustMonitor()
		if err != nil {
			c.initErrors["trustMonitor"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["trustMonitor"]; exists {
		return nil, storedErr
	}
	return c.trustMonitor, nil
}

// TrustHandler returns the trust HTTP handler.
func (c *Container) TrustHandler() (*trustHTTP.TrustHandler, error) {
	var err error
	c.trustHandlerInit.Do(func() {
		var monitor *trustUseCase.Monitor
		monitor, err = c.TrustMonitor()
		if err != nil {
			err = fmt.Errorf("failed to get trust monitor for trust handler: %w", err)
			c.initErrors["trustHandler"] = err
			return
		}
		c.trustHandler = trustHTTP.NewTrustHandler(monitor, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["trustHandler"]; exists {
		return nil, storedErr
	}
	return c.trustHandler, nil
}

// initTrustMonitor creates the monitor and evaluates the initial signals.
func (c *Container) initTrustMonitor() (*trustUseCase.Monitor, error) {
	network, err := trustDomain.ParseNetworkClass(c.config.TrustInitialNetwork)
	if err != nil {
		return nil, fmt.Errorf("invalid TRUST_INITIAL_NETWORK: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for trust monitor: %w", err)
	}

	return trustUseCase.NewMonitor(
		trustDomain.Signals{Network: network},
		nil,
		c.Logger(),
		businessMetrics,
	), nil
}
