// Package usecase implements the crypto engine: key lifecycle plus AEAD encryption
// and decryption of transfer payloads.
//
// The engine owns a single SecretKey persisted in the vault under a fixed name.
// The key is created lazily on first use with the vault's atomic insert-if-absent,
// so two engines racing on an empty vault converge on the same key:
//
//	Get(name) ── found ──────────────────────────────▶ use stored key
//	    │
//	    └─ not found ─▶ generate ─▶ Create(name) ─ ok ─▶ use generated key
//	                                   │
//	                                   └─ already exists ─▶ Get(name) ─▶ use stored key
package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/allisson/securetransfer/internal/crypto/domain"
	cryptoService "github.com/allisson/securetransfer/internal/crypto/service"
	vaultDomain "github.com/allisson/securetransfer/internal/vault/domain"
)

// engine implements Engine with a cached AEAD cipher built from the vault key.
type engine struct {
	vault       KeyVault
	aeadManager cryptoService.AEADManager
	algorithm   cryptoDomain.Algorithm
	keyName     string
	logger      *slog.Logger

	mu     sync.Mutex
	cipher cryptoService.AEAD
}

// NewEngine creates an Engine bound to a vault, key name and algorithm.
func NewEngine(
	vault KeyVault,
	aeadManager cryptoService.AEADManager,
	algorithm cryptoDomain.Algorithm,
	keyName string,
	logger *slog.Logger,
) Engine {
	return &engine{
		vault:       vault,
		aeadManager: aeadManager,
		algorithm:   algorithm,
		keyName:     keyName,
		logger:      logger,
	}
}

// LoadOrCreateKey loads the key from the vault or creates it on first use.
func (e *engine) LoadOrCreateKey(ctx context.Context) error {
	_, err := e.getCipher(ctx)
	return err
}

// Encrypt seals plaintext with a fresh random nonce.
func (e *engine) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	cipher, err := e.getCipher(ctx)
	if err != nil {
		return nil, err
	}

	blob, err := cipher.Seal(plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	return blob, nil
}

// Decrypt opens a blob; tampering, truncation and wrong keys return ErrAuthenticationFailed.
func (e *engine) Decrypt(ctx context.Context, blob []byte) ([]byte, error) {
	cipher, err := e.getCipher(ctx)
	if err != nil {
		return nil, err
	}

	return cipher.Open(blob, nil)
}

// getCipher returns the cached cipher, loading the key the first time it succeeds.
// Failures are not cached so a recovered vault is picked up by the next call.
func (e *engine) getCipher(ctx context.Context) (cryptoService.AEAD, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cipher != nil {
		return e.cipher, nil
	}

	key, err := e.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	cipher, err := e.aeadManager.CreateCipher(key, e.algorithm)
	if err != nil {
		return nil, err
	}

	e.cipher = cipher
	return cipher, nil
}

func (e *engine) loadOrCreate(ctx context.Context) ([]byte, error) {
	key, err := e.readKey(ctx)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, vaultDomain.ErrSecretNotFound) {
		return nil, err
	}

	key = make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: failed to generate key: %v", cryptoDomain.ErrKeyUnavailable, err)
	}

	err = e.vault.Create(ctx, e.keyName, key)
	switch {
	case err == nil:
		e.logger.Info("encryption key created", slog.String("key_name", e.keyName))
		return key, nil
	case errors.Is(err, vaultDomain.ErrSecretAlreadyExists):
		cryptoDomain.Zero(key)
		e.logger.Info("encryption key created concurrently, using stored key", slog.String("key_name", e.keyName))
		key, err = e.readKey(ctx)
		if errors.Is(err, vaultDomain.ErrSecretNotFound) {
			return nil, fmt.Errorf("%w: key vanished after concurrent create", cryptoDomain.ErrKeyUnavailable)
		}
		return key, err
	default:
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf("%w: failed to store key: %v", cryptoDomain.ErrKeyUnavailable, err)
	}
}

// readKey returns ErrSecretNotFound untouched and maps every other failure to ErrKeyUnavailable.
func (e *engine) readKey(ctx context.Context) ([]byte, error) {
	key, err := e.vault.Get(ctx, e.keyName)
	if err != nil {
		if errors.Is(err, vaultDomain.ErrSecretNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to read key: %v", cryptoDomain.ErrKeyUnavailable, err)
	}

	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf("%w: stored key has %d bytes", cryptoDomain.ErrKeyUnavailable, len(key))
	}
	return key, nil
}
