package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/allisson/securetransfer/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM.
//
// Security properties:
//   - 256-bit key
//   - 12-byte nonce, randomly generated per Seal
//   - 16-byte authentication tag appended to the ciphertext
//
// The cipher instance is stateless and safe for concurrent use.
//
// Example usage:
//
//	cipher, err := NewAESGCM(key)
//	if err != nil {
//	    return err
//	}
//	blob, err := cipher.Seal([]byte("hello"), nil)
//	plaintext, err := cipher.Open(blob, nil)
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
// The key must be exactly 32 bytes.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts plaintext and returns nonce || ciphertext || tag.
// Two calls with the same plaintext produce different blobs.
func (a *AESGCMCipher) Seal(plaintext, aad []byte) ([]byte, error) {
	return sealBlob(a.aead, plaintext, aad)
}

// Open verifies and decrypts a blob produced by Seal.
//
// Tampering, truncation or a wrong key all return ErrAuthenticationFailed and no
// partial plaintext.
func (a *AESGCMCipher) Open(blob, aad []byte) ([]byte, error) {
	return openBlob(a.aead, blob, aad)
}

// Overhead returns nonce size plus tag size.
func (a *AESGCMCipher) Overhead() int {
	return a.aead.NonceSize() + a.aead.Overhead()
}
