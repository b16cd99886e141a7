package service

import (
	"bytes"
	"context"
	"sync"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// Receiver accepts parts arriving from a transport.
type Receiver interface {
	OnPartReceived(ctx context.Context, msg transferDomain.WireMessage) error
}

// LoopbackTransport hands each message to an in-process Receiver, typically the
// coordinator of the same node. It is unsupported until a receiver is attached.
type LoopbackTransport struct {
	mu       sync.RWMutex
	receiver Receiver
}

// NewLoopbackTransport creates a detached loopback transport.
func NewLoopbackTransport() *LoopbackTransport {
	return &LoopbackTransport{}
}

// Attach sets the receiver. It breaks the construction cycle between the
// coordinator and the channels it dispatches through.
func (t *LoopbackTransport) Attach(r Receiver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.receiver = r
}

func (t *LoopbackTransport) Supported() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.receiver != nil
}

// Deliver copies the payload, as a real wire would, and passes it to the receiver.
func (t *LoopbackTransport) Deliver(ctx context.Context, msg transferDomain.WireMessage) error {
	t.mu.RLock()
	r := t.receiver
	t.mu.RUnlock()

	if r == nil {
		return errNoReceiver
	}

	msg.Data = bytes.Clone(msg.Data)
	return r.OnPartReceived(ctx, msg)
}
