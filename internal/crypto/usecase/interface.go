package usecase

import (
	"context"
)

// KeyVault is the subset of the secret store the engine needs to load and publish its key.
type KeyVault interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Create(ctx context.Context, name string, value []byte) error
}

// Engine defines symmetric authenticated encryption over the process-wide key.
type Engine interface {
	// LoadOrCreateKey makes sure a key exists in the vault and is cached in-process.
	// It never replaces a key that already exists.
	LoadOrCreateKey(ctx context.Context) error

	// Encrypt seals plaintext into an opaque blob (nonce || ciphertext || tag).
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)

	// Decrypt verifies and opens a blob produced by Encrypt.
	//
	// Security Note: callers own the returned plaintext and should call
	// cryptoDomain.Zero on it once it is no longer needed.
	Decrypt(ctx context.Context, blob []byte) ([]byte, error)
}
