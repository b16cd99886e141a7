package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// Registry holds the channels a node can dispatch parts through.
//
// Send never returns an error: unknown or unavailable channels are logged and
// reported as onResult(false), and onResult is invoked exactly once.
type Registry struct {
	logger *slog.Logger

	mu       sync.RWMutex
	channels map[channelDomain.Kind]channelDomain.Channel
	order    []channelDomain.Kind
}

// NewRegistry creates a Registry with the given channels.
func NewRegistry(logger *slog.Logger, channels ...channelDomain.Channel) *Registry {
	r := &Registry{
		logger:   logger,
		channels: make(map[channelDomain.Kind]channelDomain.Channel),
	}
	for _, ch := range channels {
		r.Register(ch)
	}
	return r
}

// Register adds ch, replacing any channel of the same kind.
func (r *Registry) Register(ch channelDomain.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := ch.Name()
	if _, exists := r.channels[kind]; !exists {
		r.order = append(r.order, kind)
	}
	r.channels[kind] = ch
}

// Get returns the channel registered for kind.
func (r *Registry) Get(kind channelDomain.Kind) (channelDomain.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, ok := r.channels[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", channelDomain.ErrUnknownChannel, kind)
	}
	return ch, nil
}

// Kinds returns every registered kind in registration order.
func (r *Registry) Kinds() []channelDomain.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]channelDomain.Kind(nil), r.order...)
}

// Available returns the registered kinds whose channel is currently available.
func (r *Registry) Available() []channelDomain.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var kinds []channelDomain.Kind
	for _, kind := range r.order {
		if r.channels[kind].IsAvailable() {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Send dispatches msg over the channel for kind.
func (r *Registry) Send(
	ctx context.Context,
	kind channelDomain.Kind,
	msg transferDomain.WireMessage,
	onResult func(ok bool),
) {
	var once sync.Once
	report := func(ok bool) {
		once.Do(func() { onResult(ok) })
	}

	ch, err := r.Get(kind)
	if err != nil {
		r.logFailure(kind, msg, err)
		report(false)
		return
	}
	if !ch.IsAvailable() {
		r.logFailure(kind, msg, channelDomain.ErrChannelUnavailable)
		report(false)
		return
	}

	defer func() {
		if p := recover(); p != nil {
			r.logFailure(kind, msg, fmt.Errorf("channel panicked: %v", p))
			report(false)
		}
	}()
	ch.Send(ctx, msg, report)
}

func (r *Registry) logFailure(kind channelDomain.Kind, msg transferDomain.WireMessage, err error) {
	r.logger.Warn("part not dispatched",
		slog.String("channel", string(kind)),
		slog.String("transfer_id", msg.TransferID.String()),
		slog.Int("part", msg.Part),
		slog.Any("error", err),
	)
}
