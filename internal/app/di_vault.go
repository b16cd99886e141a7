package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/allisson/securetransfer/internal/database"
	vaultRepository "github.com/allisson/securetransfer/internal/vault/repository"
	vaultService "github.com/allisson/securetransfer/internal/vault/service"
)

// DB returns the SQL connection used by the postgres and mysql vault drivers.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// BadgerDB returns the embedded store used by the badger vault driver.
func (c *Container) BadgerDB() (*badger.DB, error) {
	var err error
	c.badgerDBInit.Do(func() {
		c.badgerDB, err = c.initBadgerDB()
		if err != nil {
			c.initErrors["badgerDB"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["badgerDB"]; exists {
		return nil, storedErr
	}
	return c.badgerDB, nil
}

// KMSService returns the KMS service.
func (c *Container) KMSService() vaultService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = vaultService.NewKMSService()
	})
	return c.kmsService
}

// Vault returns the secret store selected by VAULT_DRIVER, wrapped with KMS
// encryption when VAULT_KMS_KEY_URI is set.
func (c *Container) Vault() (vaultService.Vault, error) {
	var err error
	c.vaultInit.Do(func() {
		c.vault, err = c.initVault()
		if err != nil {
			c.initErrors["vault"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vault"]; exists {
		return nil, storedErr
	}
	return c.vault, nil
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(c.runCtx, database.Config{
		Driver:             c.config.VaultDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initBadgerDB opens the embedded store at VAULT_BADGER_PATH.
func (c *Container) initBadgerDB() (*badger.DB, error) {
	db, err := database.OpenBadger(database.BadgerConfig{Path: c.config.VaultBadgerPath})
	if err != nil {
		return nil, err
	}
	c.Logger().Info("badger vault opened", slog.String("path", c.config.VaultBadgerPath))
	return db, nil
}

// initVault selects the backend and applies the optional KMS decorator.
func (c *Container) initVault() (vaultService.Vault, error) {
	var vault vaultService.Vault

	switch c.config.VaultDriver {
	case "memory":
		vault = vaultService.NewMemoryVault()
	case "badger":
		db, err := c.BadgerDB()
		if err != nil {
			return nil, fmt.Errorf("failed to get badger store for vault: %w", err)
		}
		vault = vaultService.NewRepositoryVault(vaultRepository.NewBadgerSecretRepository(db))
	case "postgres":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for vault: %w", err)
		}
		vault = vaultService.NewRepositoryVault(vaultRepository.NewPostgreSQLSecretRepository(db))
	case "mysql":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for vault: %w", err)
		}
		vault = vaultService.NewRepositoryVault(vaultRepository.NewMySQLSecretRepository(db))
	default:
		return nil, fmt.Errorf(
			"unsupported vault driver: %s (valid options: memory, badger, postgres, mysql)",
			c.config.VaultDriver,
		)
	}

	if c.config.VaultKMSKeyURI == "" {
		return vault, nil
	}

	keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.VaultKMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open kms keeper for vault: %w", err)
	}
	return vaultService.NewKMSVault(vault, keeper), nil
}
