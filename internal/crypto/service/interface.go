// Package service provides the AEAD ciphers used to seal transfer payloads.
package service

import (
	cryptoDomain "github.com/allisson/securetransfer/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
//
// Seal returns a single self-contained blob laid out as nonce || ciphertext || tag,
// so callers never handle the nonce separately.
type AEAD interface {
	// Seal encrypts plaintext with optional AAD and returns the combined blob.
	Seal(plaintext, aad []byte) ([]byte, error)

	// Open verifies and decrypts a blob produced by Seal with the same key and AAD.
	Open(blob, aad []byte) ([]byte, error)

	// Overhead returns the number of bytes Seal adds to the plaintext.
	Overhead() int
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}
