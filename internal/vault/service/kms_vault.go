package service

import (
	"context"
	"fmt"

	vaultDomain "github.com/allisson/securetransfer/internal/vault/domain"
)

// KMSVault decorates a Vault so that every value is encrypted with a KMS keeper
// before it reaches the backend and decrypted after it is read back.
type KMSVault struct {
	next   Vault
	keeper vaultDomain.KMSKeeper
}

// NewKMSVault wraps next with keeper-based at-rest encryption.
func NewKMSVault(next Vault, keeper vaultDomain.KMSKeeper) *KMSVault {
	return &KMSVault{next: next, keeper: keeper}
}

// Get reads the sealed value and opens it with the keeper.
func (k *KMSVault) Get(ctx context.Context, name string) ([]byte, error) {
	sealed, err := k.next.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	value, err := k.keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decrypt secret with KMS: %v", vaultDomain.ErrVaultUnavailable, err)
	}
	return value, nil
}

// Set seals value with the keeper and stores the ciphertext.
func (k *KMSVault) Set(ctx context.Context, name string, value []byte) error {
	sealed, err := k.seal(ctx, value)
	if err != nil {
		return err
	}
	return k.next.Set(ctx, name, sealed)
}

// Create seals value with the keeper and inserts it if name is unused.
func (k *KMSVault) Create(ctx context.Context, name string, value []byte) error {
	sealed, err := k.seal(ctx, value)
	if err != nil {
		return err
	}
	return k.next.Create(ctx, name, sealed)
}

// Delete removes name from the underlying vault.
func (k *KMSVault) Delete(ctx context.Context, name string) error {
	return k.next.Delete(ctx, name)
}

// Close releases the keeper.
func (k *KMSVault) Close() error {
	return k.keeper.Close()
}

func (k *KMSVault) seal(ctx context.Context, value []byte) ([]byte, error) {
	sealed, err := k.keeper.Encrypt(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encrypt secret with KMS: %v", vaultDomain.ErrVaultUnavailable, err)
	}
	return sealed, nil
}
