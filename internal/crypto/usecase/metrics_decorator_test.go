package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) LoadOrCreateKey(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockEngine) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockEngine) Decrypt(ctx context.Context, blob []byte) ([]byte, error) {
	args := m.Called(ctx, blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestEngineWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("encrypt success", func(t *testing.T) {
		next := &mockEngine{}
		m := &mockBusinessMetrics{}
		eng := NewEngineWithMetrics(next, m)

		next.On("Encrypt", ctx, []byte("p")).Return([]byte("blob"), nil).Once()
		m.On("RecordOperation", ctx, "crypto", "encrypt", "success").Once()
		m.On("RecordDuration", ctx, "crypto", "encrypt", mock.AnythingOfType("time.Duration"), "success").Once()

		blob, err := eng.Encrypt(ctx, []byte("p"))
		assert.NoError(t, err)
		assert.Equal(t, []byte("blob"), blob)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("decrypt error", func(t *testing.T) {
		next := &mockEngine{}
		m := &mockBusinessMetrics{}
		eng := NewEngineWithMetrics(next, m)
		expectedErr := errors.New("boom")

		next.On("Decrypt", ctx, []byte("blob")).Return(nil, expectedErr).Once()
		m.On("RecordOperation", ctx, "crypto", "decrypt", "error").Once()
		m.On("RecordDuration", ctx, "crypto", "decrypt", mock.AnythingOfType("time.Duration"), "error").Once()

		plaintext, err := eng.Decrypt(ctx, []byte("blob"))
		assert.ErrorIs(t, err, expectedErr)
		assert.Nil(t, plaintext)
		m.AssertExpectations(t)
	})

	t.Run("key load", func(t *testing.T) {
		next := &mockEngine{}
		m := &mockBusinessMetrics{}
		eng := NewEngineWithMetrics(next, m)

		next.On("LoadOrCreateKey", ctx).Return(nil).Once()
		m.On("RecordOperation", ctx, "crypto", "key_load", "success").Once()
		m.On("RecordDuration", ctx, "crypto", "key_load", mock.AnythingOfType("time.Duration"), "success").Once()

		assert.NoError(t, eng.LoadOrCreateKey(ctx))
		m.AssertExpectations(t)
	})
}
