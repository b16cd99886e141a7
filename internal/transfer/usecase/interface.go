package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
)

// CryptoEngine seals and opens transfer payloads.
type CryptoEngine interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, blob []byte) ([]byte, error)
}

// Fragmenter splits blobs into parts and joins them back.
type Fragmenter interface {
	Split(blob []byte, parts int) ([]transferDomain.Part, error)
	Combine(parts []transferDomain.Part) []byte
}

// Dispatcher sends one part over a named channel and reports the result once.
type Dispatcher interface {
	Send(ctx context.Context, kind channelDomain.Kind, msg transferDomain.WireMessage, onResult func(ok bool))
}

// TrustGate exposes the latest trust verdict.
type TrustGate interface {
	Current() trustDomain.Verdict
}

// Sink receives delivered messages.
type Sink interface {
	Deliver(ctx context.Context, msg transferDomain.SecureMessage)
}

// Coordinator drives the send and receive state machines.
type Coordinator interface {
	// Send encrypts plaintext, splits it into one part per channel and dispatches
	// every part. It returns once encryption and splitting succeeded; delivery
	// results arrive on Statuses.
	Send(ctx context.Context, plaintext []byte, channels []channelDomain.Kind) (*transferDomain.SendResult, error)

	// OnPartReceived buffers a part and, once its transfer is complete, combines,
	// decrypts and delivers it to the Sink.
	OnPartReceived(ctx context.Context, msg transferDomain.WireMessage) error

	// Reset discards the session of a transfer.
	Reset(transferID uuid.UUID) error

	// Sessions returns the number of open sessions.
	Sessions() int

	// ExpireSessions drops sessions older than the TTL and returns how many were dropped.
	ExpireSessions(now time.Time) int

	// Start runs the session sweeper until ctx is done.
	Start(ctx context.Context) error

	// Statuses subscribes to status events.
	Statuses(buffer int) (<-chan transferDomain.StatusEvent, func())
}
