package service

import (
	"context"
	"sync"

	vaultDomain "github.com/allisson/securetransfer/internal/vault/domain"
)

// MemoryVault is a process-local Vault. Values are copied on the way in and out
// so callers can zero their buffers without corrupting the store.
type MemoryVault struct {
	mu      sync.RWMutex
	secrets map[string][]byte
}

// NewMemoryVault creates an empty MemoryVault.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{secrets: make(map[string][]byte)}
}

// Get returns a copy of the value stored under name.
func (m *MemoryVault) Get(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, vaultDomain.ErrInvalidSecretName
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.secrets[name]
	if !ok {
		return nil, vaultDomain.ErrSecretNotFound
	}
	return clone(value), nil
}

// Set stores a copy of value under name.
func (m *MemoryVault) Set(ctx context.Context, name string, value []byte) error {
	if name == "" {
		return vaultDomain.ErrInvalidSecretName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.secrets[name] = clone(value)
	return nil
}

// Create stores value only if name is unused. The existence check and the write
// happen under one lock.
func (m *MemoryVault) Create(ctx context.Context, name string, value []byte) error {
	if name == "" {
		return vaultDomain.ErrInvalidSecretName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.secrets[name]; exists {
		return vaultDomain.ErrSecretAlreadyExists
	}
	m.secrets[name] = clone(value)
	return nil
}

// Delete removes name from the store.
func (m *MemoryVault) Delete(ctx context.Context, name string) error {
	if name == "" {
		return vaultDomain.ErrInvalidSecretName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if value, ok := m.secrets[name]; ok {
		for i := range value {
			value[i] = 0
		}
		delete(m.secrets, name)
	}
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
