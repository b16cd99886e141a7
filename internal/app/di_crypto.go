package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/securetransfer/internal/crypto/domain"
	cryptoService "github.com/allisson/securetransfer/internal/crypto/service"
	cryptoUseCase "github.com/allisson/securetransfer/internal/crypto/usecase"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// CryptoEngine returns the engine that seals and opens transfer payloads.
func (c *Container) CryptoEngine() (cryptoUseCase.Engine, error) {
	var err error
	c.cryptoEngineInit.Do(func() {
		c.cryptoEngine, err = c.initCryptoEngine()
		if err != nil {
			c.initErrors["cryptoEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cryptoEngine"]; exists {
		return nil, storedErr
	}
	return c.cryptoEngine, nil
}

// initCryptoEngine creates the engine bound to the configured vault and algorithm.
func (c *Container) initCryptoEngine() (cryptoUseCase.Engine, error) {
	algorithm, err := cryptoDomain.ParseAlgorithm(c.config.CryptoAlgorithm)
	if err != nil {
		return nil, err
	}

	vault, err := c.Vault()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault for crypto engine: %w", err)
	}

	baseEngine := cryptoUseCase.NewEngine(
		vault,
		c.AEADManager(),
		algorithm,
		c.config.CryptoKeyName,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for crypto engine: %w", err)
		}
		return cryptoUseCase.NewEngineWithMetrics(baseEngine, businessMetrics), nil
	}

	return baseEngine, nil
}
