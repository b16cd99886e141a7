// Package repository implements vault secret persistence for PostgreSQL, MySQL and an
// embedded badger store.
package repository

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/allisson/securetransfer/internal/errors"
	vaultDomain "github.com/allisson/securetransfer/internal/vault/domain"
)

// PostgreSQLSecretRepository implements Secret persistence for PostgreSQL databases.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL secret repository.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}

// Get retrieves a secret by name.
func (p *PostgreSQLSecretRepository) Get(ctx context.Context, name string) (*vaultDomain.Secret, error) {
	query := `SELECT name, value, created_at, updated_at 
			  FROM vault_secrets 
			  WHERE name = $1`

	var secret vaultDomain.Secret
	err := p.db.QueryRowContext(ctx, query, name).Scan(
		&secret.Name,
		&secret.Value,
		&secret.CreatedAt,
		&secret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret")
	}

	return &secret, nil
}

// Upsert inserts a secret or replaces the value of an existing one.
func (p *PostgreSQLSecretRepository) Upsert(ctx context.Context, secret *vaultDomain.Secret) error {
	query := `INSERT INTO vault_secrets (name, value, created_at, updated_at) 
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	_, err := p.db.ExecContext(ctx, query, secret.Name, secret.Value, secret.CreatedAt, secret.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert secret")
	}
	return nil
}

// CreateIfAbsent inserts a secret unless the name already exists.
// Returns false when an existing row kept the name.
func (p *PostgreSQLSecretRepository) CreateIfAbsent(
	ctx context.Context,
	secret *vaultDomain.Secret,
) (bool, error) {
	query := `INSERT INTO vault_secrets (name, value, created_at, updated_at) 
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (name) DO NOTHING`

	result, err := p.db.ExecContext(ctx, query, secret.Name, secret.Value, secret.CreatedAt, secret.UpdatedAt)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to create secret")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rows == 1, nil
}

// Delete removes a secret by name.
func (p *PostgreSQLSecretRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM vault_secrets WHERE name = $1`

	if _, err := p.db.ExecContext(ctx, query, name); err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}
	return nil
}
