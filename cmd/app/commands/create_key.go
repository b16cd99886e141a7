package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoUseCase "github.com/allisson/securetransfer/internal/crypto/usecase"
)

// RunCreateKey makes sure the payload encryption key exists in the configured vault.
// An existing key is never replaced, so running the command twice is harmless.
//
// Requirements: for the postgres and mysql drivers the database must be migrated.
func RunCreateKey(
	ctx context.Context,
	engine cryptoUseCase.Engine,
	logger *slog.Logger,
	writer io.Writer,
	keyName string,
	vaultDriver string,
) error {
	logger.Info("loading encryption key",
		slog.String("key_name", keyName),
		slog.String("vault_driver", vaultDriver),
	)

	if err := engine.LoadOrCreateKey(ctx); err != nil {
		return fmt.Errorf("failed to load or create key: %w", err)
	}

	logger.Info("encryption key ready", slog.String("key_name", keyName))

	_, err := fmt.Fprintf(writer, "Encryption key %q is ready in the %s vault\n", keyName, vaultDriver)
	return err
}
