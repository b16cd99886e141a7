// Package mocks provides mock implementations of the crypto use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEngine is a mock implementation of Engine for testing.
type MockEngine struct {
	mock.Mock
}

// LoadOrCreateKey mocks the LoadOrCreateKey method of Engine.
func (m *MockEngine) LoadOrCreateKey(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Encrypt mocks the Encrypt method of Engine.
func (m *MockEngine) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of Engine.
func (m *MockEngine) Decrypt(ctx context.Context, blob []byte) ([]byte, error) {
	args := m.Called(ctx, blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
