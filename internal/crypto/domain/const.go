package domain

import (
	"fmt"
)

// Algorithm represents the AEAD cipher used to seal transfer payloads.
//
// Both algorithms use a 256-bit key, a 12-byte random nonce and a 16-byte tag,
// so the blob layout is identical and only the cipher differs:
//   - Use AESGCM on CPUs with AES-NI hardware acceleration
//   - Use ChaCha20 on devices without AES acceleration
type Algorithm string

const (
	// AESGCM represents AES-256-GCM.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the length in bytes of every SecretKey.
const KeySize = 32

// ParseAlgorithm converts a configuration string into an Algorithm.
func ParseAlgorithm(alg string) (Algorithm, error) {
	switch Algorithm(alg) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", fmt.Errorf("%w: %q (valid options: aes-gcm, chacha20-poly1305)", ErrUnsupportedAlgorithm, alg)
	}
}
