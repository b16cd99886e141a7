// Package domain defines secret store domain models and errors.
package domain

import (
	"github.com/allisson/securetransfer/internal/errors"
)

// Secret store error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// so callers can branch on intent (missing, conflict, unavailable) without
// knowing which backend produced them.
var (
	// ErrSecretNotFound indicates no secret is stored under the requested name.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrSecretAlreadyExists indicates Create lost to an existing secret with the same name.
	ErrSecretAlreadyExists = errors.Wrap(errors.ErrConflict, "secret already exists")

	// ErrInvalidSecretName indicates the secret name is empty.
	ErrInvalidSecretName = errors.Wrap(errors.ErrInvalidInput, "invalid secret name")

	// ErrVaultUnavailable indicates the backend could not be read or written.
	ErrVaultUnavailable = errors.Wrap(errors.ErrUnavailable, "vault unavailable")
)
