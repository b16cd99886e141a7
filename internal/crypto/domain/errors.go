// Package domain defines the symmetric key model, algorithms and cryptographic errors.
package domain

import (
	"github.com/allisson/securetransfer/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// so handlers can map them to status codes without knowing crypto details.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key that is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrAuthenticationFailed indicates the blob's integrity tag did not verify.
	//
	// Raised for tampered, truncated or corrupted blobs and for blobs sealed under a
	// different key. The specific cause is never disclosed and no partial plaintext
	// is returned.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "authentication failed")

	// ErrKeyUnavailable indicates the secret store could not produce or persist the key.
	ErrKeyUnavailable = errors.Wrap(errors.ErrUnavailable, "key unavailable")
)
