package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/securetransfer/internal/database"
	apperrors "github.com/allisson/securetransfer/internal/errors"
	vaultDomain "github.com/allisson/securetransfer/internal/vault/domain"
)

func newBadgerDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := database.OpenBadger(database.BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestBadgerSecretRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := NewBadgerSecretRepository(newBadgerDB(t))
		secret := testSecret()
		require.NoError(t, repo.Upsert(ctx, secret))

		got, err := repo.Get(ctx, secret.Name)
		require.NoError(t, err)
		assert.Equal(t, secret.Name, got.Name)
		assert.Equal(t, secret.Value, got.Value)
		assert.True(t, secret.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := NewBadgerSecretRepository(newBadgerDB(t))

		got, err := repo.Get(ctx, "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		repo := NewBadgerSecretRepository(newBadgerDB(t))
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.Get(canceled, "encryption-key")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBadgerSecretRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerSecretRepository(newBadgerDB(t))

	first := testSecret()
	first.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	first.UpdatedAt = first.CreatedAt
	require.NoError(t, repo.Upsert(ctx, first))

	later := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, &vaultDomain.Secret{
		Name:      first.Name,
		Value:     []byte("replaced"),
		CreatedAt: later,
		UpdatedAt: later,
	}))

	got, err := repo.Get(ctx, first.Name)
	require.NoError(t, err)
	assert.Equal(t, []byte("replaced"), got.Value)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt), "creation time is preserved")
	assert.True(t, later.Equal(got.UpdatedAt))
}

func TestBadgerSecretRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesOnce", func(t *testing.T) {
		repo := NewBadgerSecretRepository(newBadgerDB(t))
		secret := testSecret()

		created, err := repo.CreateIfAbsent(ctx, secret)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = repo.CreateIfAbsent(ctx, &vaultDomain.Secret{Name: secret.Name, Value: []byte("other")})
		require.NoError(t, err)
		assert.False(t, created)

		got, err := repo.Get(ctx, secret.Name)
		require.NoError(t, err)
		assert.Equal(t, secret.Value, got.Value)
	})

	t.Run("ConcurrentCreatesHaveOneWinner", func(t *testing.T) {
		repo := NewBadgerSecretRepository(newBadgerDB(t))

		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := repo.CreateIfAbsent(ctx, testSecret())
				if err == nil && created {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
	})
}

func TestBadgerSecretRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerSecretRepository(newBadgerDB(t))
	secret := testSecret()
	require.NoError(t, repo.Upsert(ctx, secret))

	require.NoError(t, repo.Delete(ctx, secret.Name))
	_, err := repo.Get(ctx, secret.Name)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, "missing"))
}
