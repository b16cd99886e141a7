package repository

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/allisson/securetransfer/internal/errors"
	vaultDomain "github.com/allisson/securetransfer/internal/vault/domain"
)

// MySQLSecretRepository implements Secret persistence for MySQL.
// Values are stored as BLOB; name is the primary key.
type MySQLSecretRepository struct {
	db *sql.DB
}

// NewMySQLSecretRepository creates a new MySQL secret repository.
func NewMySQLSecretRepository(db *sql.DB) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db}
}

// Get retrieves a secret by name.
func (m *MySQLSecretRepository) Get(ctx context.Context, name string) (*vaultDomain.Secret, error) {
	query := `SELECT name, value, created_at, updated_at 
			  FROM vault_secrets 
			  WHERE name = ?`

	var secret vaultDomain.Secret
	err := m.db.QueryRowContext(ctx, query, name).Scan(
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
func (m *MySQLSecretRepository) Upsert(ctx context.Context, secret *vaultDomain.Secret) error {
	query := `INSERT INTO vault_secrets (name, value, created_at, updated_at) 
			  VALUES (?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`

	_, err := m.db.ExecContext(ctx, query, secret.Name, secret.Value, secret.CreatedAt, secret.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert secret")
	}
	return nil
}

// CreateIfAbsent inserts a secret unless the name already exists.
// INSERT IGNORE reports zero affected rows on a duplicate primary key.
func (m *MySQLSecretRepository) CreateIfAbsent(ctx context.Context, secret *vaultDomain.Secret) (bool, error) {
	query := `INSERT IGNORE INTO vault_secrets (name, value, created_at, updated_at) 
			  VALUES (?, ?, ?, ?)`

	result, err := m.db.ExecContext(ctx, query, secret.Name, secret.Value, secret.CreatedAt, secret.UpdatedAt)
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
func (m *MySQLSecretRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM vault_secrets WHERE name = ?`

	if _, err := m.db.ExecContext(ctx, query, name); err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}
	return nil
}
