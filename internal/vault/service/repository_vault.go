package service

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/allisson/securetransfer/internal/errors"
	vaultDomain "github.com/allisson/securetransfer/internal/vault/domain"
)

// SecretRepository defines persistence operations for vault secrets.
type SecretRepository interface {
	// Get returns the secret or apperrors.ErrNotFound.
	Get(ctx context.Context, name string) (*vaultDomain.Secret, error)

	// Upsert inserts the secret or replaces the value of an existing one.
	Upsert(ctx context.Context, secret *vaultDomain.Secret) error

	// CreateIfAbsent inserts the secret and reports whether a row was written.
	CreateIfAbsent(ctx context.Context, secret *vaultDomain.Secret) (bool, error)

	// Delete removes the secret by name.
	Delete(ctx context.Context, name string) error
}

// RepositoryVault adapts a SecretRepository (PostgreSQL, MySQL) to the Vault interface.
type RepositoryVault struct {
	repo SecretRepository
}

// NewRepositoryVault creates a Vault backed by repo.
func NewRepositoryVault(repo SecretRepository) *RepositoryVault {
	return &RepositoryVault{repo: repo}
}

// Get loads the secret value by name.
func (r *RepositoryVault) Get(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, vaultDomain.ErrInvalidSecretName
	}

	secret, err := r.repo.Get(ctx, name)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, vaultDomain.ErrSecretNotFound
		}
		return nil, fmt.Errorf("%w: %v", vaultDomain.ErrVaultUnavailable, err)
	}
	return secret.Value, nil
}

// Set writes value under name, replacing any existing value.
func (r *RepositoryVault) Set(ctx context.Context, name string, value []byte) error {
	if name == "" {
		return vaultDomain.ErrInvalidSecretName
	}

	now := time.Now().UTC()
	if err := r.repo.Upsert(ctx, &vaultDomain.Secret{
		Name:      name,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("%w: %v", vaultDomain.ErrVaultUnavailable, err)
	}
	return nil
}

// Create inserts value only when name is unused; the database enforces uniqueness.
func (r *RepositoryVault) Create(ctx context.Context, name string, value []byte) error {
	if name == "" {
		return vaultDomain.ErrInvalidSecretName
	}

	now := time.Now().UTC()
	created, err := r.repo.CreateIfAbsent(ctx, &vaultDomain.Secret{
		Name:      name,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", vaultDomain.ErrVaultUnavailable, err)
	}
	if !created {
		return vaultDomain.ErrSecretAlreadyExists
	}
	return nil
}

// Delete removes name from the repository.
func (r *RepositoryVault) Delete(ctx context.Context, name string) error {
	if name == "" {
		return vaultDomain.ErrInvalidSecretName
	}

	if err := r.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("%w: %v", vaultDomain.ErrVaultUnavailable, err)
	}
	return nil
}
