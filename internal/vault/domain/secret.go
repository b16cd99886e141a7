package domain

import (
	"context"
	"time"
)

// Secret is a named opaque blob held by the secret store.
//
// Value is whatever the caller stored; when the store is wrapped by a KMS vault the
// persisted Value is the KMS ciphertext and the plaintext never reaches the backend.
type Secret struct {
	Name      string
	Value     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KMSKeeper is the subset of *secrets.Keeper used to protect stored values at rest.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
