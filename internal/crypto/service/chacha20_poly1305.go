package service

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/securetransfer/internal/crypto/domain"
)

// ChaCha20Poly1305Cipher implements the AEAD interface using ChaCha20-Poly1305.
//
// Preferred on devices without AES hardware acceleration. The blob layout matches
// AESGCMCipher: 12-byte nonce, ciphertext, 16-byte tag.
type ChaCha20Poly1305Cipher struct {
	aead cipher.AEAD
}

// NewChaCha20Poly1305 creates a new ChaCha20-Poly1305 cipher instance.
func NewChaCha20Poly1305(key []byte) (*ChaCha20Poly1305Cipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	return &ChaCha20Poly1305Cipher{aead: aead}, nil
}

// Seal encrypts plaintext and returns nonce || ciphertext || tag.
func (c *ChaCha20Poly1305Cipher) Seal(plaintext, aad []byte) ([]byte, error) {
	return sealBlob(c.aead, plaintext, aad)
}

// Open verifies and decrypts a blob produced by Seal.
func (c *ChaCha20Poly1305Cipher) Open(blob, aad []byte) ([]byte, error) {
	return openBlob(c.aead, blob, aad)
}

// Overhead returns nonce size plus tag size.
func (c *ChaCha20Poly1305Cipher) Overhead() int {
	return c.aead.NonceSize() + c.aead.Overhead()
}
