// Package service provides secret store implementations: an in-memory store,
// SQL-backed stores through repositories, and a KMS decorator for at-rest encryption.
package service

import (
	"context"
)

// Vault is a named secret store with get/set/delete semantics.
//
// Create is the atomic insert-if-absent used to publish a value exactly once;
// it returns domain.ErrSecretAlreadyExists when the name is taken.
type Vault interface {
	// Get returns the stored value or domain.ErrSecretNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Set stores value under name, replacing any previous value.
	Set(ctx context.Context, name string, value []byte) error

	// Create stores value under name only if the name is not yet used.
	Create(ctx context.Context, name string, value []byte) error

	// Delete removes the value. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
}
