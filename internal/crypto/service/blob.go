package service

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/securetransfer/internal/crypto/domain"
)

// sealBlob generates a fresh random nonce and prepends it to the sealed output.
func sealBlob(aead cipher.AEAD, plaintext, aad []byte) ([]byte, error) {
	nonceSize := aead.NonceSize()
	blob := make([]byte, nonceSize, nonceSize+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(blob); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return aead.Seal(blob, blob[:nonceSize], plaintext, aad), nil
}

// openBlob splits the nonce off the blob and verifies the remainder.
// Every failure maps to ErrAuthenticationFailed without leaking the cause.
func openBlob(aead cipher.AEAD, blob, aad []byte) ([]byte, error) {
	nonceSize := aead.NonceSize()
	if len(blob) < nonceSize+aead.Overhead() {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	plaintext, err := aead.Open(nil, blob[:nonceSize], blob[nonceSize:], aad)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
