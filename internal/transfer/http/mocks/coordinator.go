// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// MockCoordinator is a mock implementation of Coordinator for testing.
type MockCoordinator struct {
	mock.Mock
}

// Send mocks the Send method of Coordinator.
func (m *MockCoordinator) Send(
	ctx context.Context,
	plaintext []byte,
	channels []channelDomain.Kind,
) (*transferDomain.SendResult, error) {
	args := m.Called(ctx, plaintext, channels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transferDomain.SendResult), args.Error(1)
}

// OnPartReceived mocks the OnPartReceived method of Coordinator.
func (m *MockCoordinator) OnPartReceived(ctx context.Context, msg transferDomain.WireMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// Reset mocks the Reset method of Coordinator.
func (m *MockCoordinator) Reset(transferID uuid.UUID) error {
	args := m.Called(transferID)
	return args.Error(0)
}

// Sessions mocks the Sessions method of Coordinator.
func (m *MockCoordinator) Sessions() int {
	args := m.Called()
	return args.Int(0)
}

// ExpireSessions mocks the ExpireSessions method of Coordinator.
func (m *MockCoordinator) ExpireSessions(now time.Time) int {
	args := m.Called(now)
	return args.Int(0)
}

// Start mocks the Start method of Coordinator.
func (m *MockCoordinator) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Statuses mocks the Statuses method of Coordinator.
func (m *MockCoordinator) Statuses(buffer int) (<-chan transferDomain.StatusEvent, func()) {
	args := m.Called(buffer)
	return args.Get(0).(<-chan transferDomain.StatusEvent), args.Get(1).(func())
}
