package service

import (
	"context"
	"sync"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// Inbox keeps the most recently delivered messages, dropping the oldest once
// capacity is reached.
type Inbox struct {
	mu       sync.RWMutex
	capacity int
	messages []transferDomain.SecureMessage
}

// NewInbox creates an Inbox holding at most capacity messages (minimum 1).
func NewInbox(capacity int) *Inbox {
	if capacity < 1 {
		capacity = 1
	}
	return &Inbox{capacity: capacity, messages: make([]transferDomain.SecureMessage, 0, capacity)}
}

// Deliver appends msg.
func (i *Inbox) Deliver(_ context.Context, msg transferDomain.SecureMessage) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.messages) == i.capacity {
		copy(i.messages, i.messages[1:])
		i.messages = i.messages[:len(i.messages)-1]
	}
	i.messages = append(i.messages, msg)
}

// List returns up to limit messages, newest first, skipping offset.
func (i *Inbox) List(offset, limit int) []transferDomain.SecureMessage {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]transferDomain.SecureMessage, 0, limit)
	for idx := len(i.messages) - 1 - offset; idx >= 0 && len(out) < limit; idx-- {
		out = append(out, i.messages[idx])
	}
	return out
}

// Len returns the number of stored messages.
func (i *Inbox) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.messages)
}

// Capacity returns the maximum number of stored messages.
func (i *Inbox) Capacity() int {
	return i.capacity
}
