package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaultDomain "github.com/allisson/securetransfer/internal/vault/domain"
)

func TestMemoryVault(t *testing.T) {
	ctx := context.Background()

	t.Run("get missing secret", func(t *testing.T) {
		v := NewMemoryVault()
		_, err := v.Get(ctx, "encryption-key")
		assert.ErrorIs(t, err, vaultDomain.ErrSecretNotFound)
	})

	t.Run("set then get returns a copy", func(t *testing.T) {
		v := NewMemoryVault()
		value := []byte("secret")
		require.NoError(t, v.Set(ctx, "k", value))

		value[0] = 'X'
		got, err := v.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("secret"), got)

		got[0] = 'Y'
		again, err := v.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("secret"), again)
	})

	t.Run("create does not overwrite", func(t *testing.T) {
		v := NewMemoryVault()
		require.NoError(t, v.Create(ctx, "k", []byte("first")))

		err := v.Create(ctx, "k", []byte("second"))
		assert.ErrorIs(t, err, vaultDomain.ErrSecretAlreadyExists)

		got, err := v.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), got)
	})

	t.Run("delete", func(t *testing.T) {
		v := NewMemoryVault()
		require.NoError(t, v.Set(ctx, "k", []byte("value")))
		require.NoError(t, v.Delete(ctx, "k"))
		require.NoError(t, v.Delete(ctx, "k"))

		_, err := v.Get(ctx, "k")
		assert.ErrorIs(t, err, vaultDomain.ErrSecretNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		v := NewMemoryVault()
		_, err := v.Get(ctx, "")
		assert.ErrorIs(t, err, vaultDomain.ErrInvalidSecretName)
		assert.ErrorIs(t, v.Set(ctx, "", nil), vaultDomain.ErrInvalidSecretName)
		assert.ErrorIs(t, v.Create(ctx, "", nil), vaultDomain.ErrInvalidSecretName)
		assert.ErrorIs(t, v.Delete(ctx, ""), vaultDomain.ErrInvalidSecretName)
	})

	t.Run("concurrent create has exactly one winner", func(t *testing.T) {
		v := NewMemoryVault()

		var wg sync.WaitGroup
		var mu sync.Mutex
		winners := 0
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if err := v.Create(ctx, "k", []byte{byte(i)}); err == nil {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, winners)
	})
}
