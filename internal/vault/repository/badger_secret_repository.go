package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	apperrors "github.com/allisson/securetransfer/internal/errors"
	vaultDomain "github.com/allisson/securetransfer/internal/vault/domain"
)

const (
	badgerSecretPrefix = "vault/secret/"

	// badgerMaxConflictRetries bounds retries of a CreateIfAbsent transaction
	// that lost a write race.
	badgerMaxConflictRetries = 3
)

type badgerSecretRecord struct {
	Value     []byte    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BadgerSecretRepository implements Secret persistence on an embedded badger store.
type BadgerSecretRepository struct {
	db *badger.DB
}

// NewBadgerSecretRepository creates a new badger secret repository.
func NewBadgerSecretRepository(db *badger.DB) *BadgerSecretRepository {
	return &BadgerSecretRepository{db: db}
}

func badgerSecretKey(name string) []byte {
	return []byte(badgerSecretPrefix + name)
}

// Get retrieves a secret by name.
func (b *BadgerSecretRepository) Get(ctx context.Context, name string) (*vaultDomain.Secret, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record badgerSecretRecord
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerSecretKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret")
	}

	return &vaultDomain.Secret{
		Name:      name,
		Value:     record.Value,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

// Upsert inserts a secret or replaces the value of an existing one. The original
// creation time of an existing secret is preserved.
func (b *BadgerSecretRepository) Upsert(ctx context.Context, secret *vaultDomain.Secret) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		record := badgerSecretRecord{
			Value:     secret.Value,
			CreatedAt: secret.CreatedAt,
			UpdatedAt: secret.UpdatedAt,
		}

		item, err := txn.Get(badgerSecretKey(secret.Name))
		switch {
		case err == nil:
			var existing badgerSecretRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return err
			}
			record.CreatedAt = existing.CreatedAt
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		return setBadgerSecret(txn, secret.Name, record)
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert secret")
	}
	return nil
}

// CreateIfAbsent inserts a secret unless the name already exists.
// Returns false when an existing record kept the name.
func (b *BadgerSecretRepository) CreateIfAbsent(
	ctx context.Context,
	secret *vaultDomain.Secret,
) (bool, error) {
	var created bool
	var err error

	for attempt := 0; attempt < badgerMaxConflictRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		created = false
		err = b.db.Update(func(txn *badger.Txn) error {
			_, err := txn.Get(badgerSecretKey(secret.Name))
			if err == nil {
				return nil
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			created = true
			return setBadgerSecret(txn, secret.Name, badgerSecretRecord{
				Value:     secret.Value,
				CreatedAt: secret.CreatedAt,
				UpdatedAt: secret.UpdatedAt,
			})
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return false, apperrors.Wrap(err, "failed to create secret")
	}

	return created, nil
}

// Delete removes a secret by name. Deleting a missing secret is not an error.
func (b *BadgerSecretRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerSecretKey(name))
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}
	return nil
}

func setBadgerSecret(txn *badger.Txn, name string, record badgerSecretRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return txn.Set(badgerSecretKey(name), payload)
}
