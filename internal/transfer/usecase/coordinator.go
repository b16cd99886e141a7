// Package usecase implements the transfer coordinator.
//
// Send side:
//
//	Idle → Encrypting → Splitting → Dispatching → Idle
//	          │             │
//	          └──── Failed ─┘   (no part is dispatched)
//
// Receive side, one session per transfer id:
//
//	Idle → Buffering → Combining → Decrypting → Delivered
//	                                    │
//	                                    └──→ Failed
//
// Every transition is published as a StatusEvent. Per-part delivery failures
// never abort a send; they are reported as dispatching events with OK=false.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/securetransfer/internal/broadcast"
	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	"github.com/allisson/securetransfer/internal/metrics"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// Defaults applied when Options leaves a field unset.
const (
	DefaultSessionTTL    = 5 * time.Minute
	DefaultSweepInterval = 30 * time.Second
	DefaultMaxTotalParts = 64
	DefaultMaxSessions   = 1024
)

// Options configures a coordinator.
//
// MaxTotalParts bounds both the channels of one send and the totalParts an
// inbound part may declare. MaxSessions bounds the incomplete transfers buffered
// at once.
type Options struct {
	TrustGateEnabled bool
	SessionTTL       time.Duration
	SweepInterval    time.Duration
	MaxTotalParts    int
	MaxSessions      int
	Clock            func() time.Time
}

type coordinator struct {
	crypto     CryptoEngine
	fragmenter Fragmenter
	dispatcher Dispatcher
	trust      TrustGate
	sink       Sink
	logger     *slog.Logger
	metrics    metrics.TransferMetrics
	opts       Options

	statuses *broadcast.Hub[transferDomain.StatusEvent]

	mu       sync.Mutex
	sessions map[uuid.UUID]*transferDomain.Session
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(
	crypto CryptoEngine,
	fragmenter Fragmenter,
	dispatcher Dispatcher,
	trust TrustGate,
	sink Sink,
	logger *slog.Logger,
	transferMetrics metrics.TransferMetrics,
	opts Options,
) Coordinator {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.MaxTotalParts <= 0 {
		opts.MaxTotalParts = DefaultMaxTotalParts
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	return &coordinator{
		crypto:     crypto,
		fragmenter: fragmenter,
		dispatcher: dispatcher,
		trust:      trust,
		sink:       sink,
		logger:     logger,
		metrics:    transferMetrics,
		opts:       opts,
		statuses:   broadcast.NewHub[transferDomain.StatusEvent](),
		sessions:   make(map[uuid.UUID]*transferDomain.Session),
	}
}

func (c *coordinator) Send(
	ctx context.Context,
	plaintext []byte,
	channels []channelDomain.Kind,
) (*transferDomain.SendResult, error) {
	if c.opts.TrustGateEnabled {
		if verdict := c.trust.Current(); !verdict.Safe {
			return nil, transferDomain.NewUntrustedError(verdict.Reasons)
		}
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels selected", transferDomain.ErrInvalidPartCount)
	}
	if len(channels) > c.opts.MaxTotalParts {
		return nil, fmt.Errorf(
			"%w: %d channels selected, at most %d allowed",
			transferDomain.ErrInvalidPartCount, len(channels), c.opts.MaxTotalParts,
		)
	}

	transferID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transfer id: %w", err)
	}
	total := len(channels)

	c.publishPhase(transferID, transferDomain.PhaseEncrypting, total, nil)
	blob, err := c.crypto.Encrypt(ctx, plaintext)
	if err != nil {
		c.publishPhase(transferID, transferDomain.PhaseFailed, total, err)
		return nil, err
	}

	c.publishPhase(transferID, transferDomain.PhaseSplitting, total, nil)
	parts, err := c.fragmenter.Split(blob, total)
	if err != nil {
		c.publishPhase(transferID, transferDomain.PhaseFailed, total, err)
		return nil, err
	}

	c.publishPhase(transferID, transferDomain.PhaseDispatching, total, nil)
	reported := &atomic.Int64{}
	names := make([]string, total)
	for i, part := range parts {
		kind := channels[i]
		names[i] = string(kind)
		msg := transferDomain.WireMessage{
			TransferID: transferID,
			Part:       part.Index,
			TotalParts: total,
			Data:       part.Data,
		}
		c.dispatcher.Send(ctx, kind, msg, c.deliveryReporter(ctx, transferID, kind, part.Index, total, reported))
	}
	c.publishPhase(transferID, transferDomain.PhaseIdle, total, nil)

	c.logger.Info("transfer dispatched",
		slog.String("transfer_id", transferID.String()),
		slog.Int("parts", total),
		slog.Any("channels", names),
	)

	return &transferDomain.SendResult{TransferID: transferID, TotalParts: total, Channels: names}, nil
}

// deliveryReporter builds the onResult callback for one part. reported is shared
// by every part of the transfer; Progress is the fraction of parts whose result
// is known, in the order the channels report them.
func (c *coordinator) deliveryReporter(
	ctx context.Context,
	transferID uuid.UUID,
	kind channelDomain.Kind,
	index, total int,
	reported *atomic.Int64,
) func(bool) {
	return func(ok bool) {
		c.metrics.RecordPartDelivery(ctx, string(kind), ok)
		done := reported.Add(1)

		event := transferDomain.StatusEvent{
			TransferID: transferID,
			Phase:      transferDomain.PhaseDispatching,
			Channel:    string(kind),
			Part:       index,
			TotalParts: total,
			OK:         ok,
			Progress:   float64(done) / float64(total),
			Timestamp:  c.opts.Clock(),
		}
		if !ok {
			event.Error = channelDomain.ErrChannelUnavailable.Error()
		}
		c.publish(event)
	}
}

func (c *coordinator) OnPartReceived(ctx context.Context, msg transferDomain.WireMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if msg.TotalParts > c.opts.MaxTotalParts {
		return fmt.Errorf(
			"%w: totalParts %d exceeds the limit of %d",
			transferDomain.ErrInvalidPart, msg.TotalParts, c.opts.MaxTotalParts,
		)
	}

	now := c.opts.Clock()

	c.mu.Lock()
	session, ok := c.sessions[msg.TransferID]
	if !ok {
		if len(c.sessions) >= c.opts.MaxSessions {
			c.mu.Unlock()
			c.logger.Warn("transfer refused, session limit reached",
				slog.String("transfer_id", msg.TransferID.String()),
				slog.Int("max_sessions", c.opts.MaxSessions),
			)
			return transferDomain.ErrTooManySessions
		}
		session = transferDomain.NewSession(msg.TransferID, msg.TotalParts, now)
		c.sessions[msg.TransferID] = session
		c.metrics.AddActiveSessions(ctx, 1)
	}

	if err := session.Add(msg, now); err != nil {
		c.removeLocked(ctx, msg.TransferID)
		c.mu.Unlock()
		c.publishPhase(msg.TransferID, transferDomain.PhaseFailed, msg.TotalParts, err)
		c.logger.Warn("transfer rejected",
			slog.String("transfer_id", msg.TransferID.String()),
			slog.Any("error", err),
		)
		return err
	}

	if !session.Complete() {
		received := len(session.ReceivedParts)
		c.mu.Unlock()
		c.publish(transferDomain.StatusEvent{
			TransferID: msg.TransferID,
			Phase:      transferDomain.PhaseBuffering,
			Part:       msg.Part,
			TotalParts: msg.TotalParts,
			OK:         true,
			Progress:   float64(received) / float64(msg.TotalParts),
			Timestamp:  now,
		})
		return nil
	}

	c.removeLocked(ctx, msg.TransferID)
	c.mu.Unlock()

	return c.deliver(ctx, session, now)
}

// deliver combines and decrypts a complete session that is no longer in the map.
func (c *coordinator) deliver(ctx context.Context, session *transferDomain.Session, now time.Time) error {
	id, total := session.TransferID, session.ExpectedParts

	c.publishPhase(id, transferDomain.PhaseCombining, total, nil)
	blob := c.fragmenter.Combine(session.Parts())

	c.publishPhase(id, transferDomain.PhaseDecrypting, total, nil)
	plaintext, err := c.crypto.Decrypt(ctx, blob)
	if err != nil {
		c.publishPhase(id, transferDomain.PhaseFailed, total, err)
		c.logger.Error("transfer failed to decrypt",
			slog.String("transfer_id", id.String()),
			slog.Any("error", err),
		)
		return err
	}

	c.sink.Deliver(ctx, transferDomain.NewSecureMessage(id, plaintext, now))
	c.publishPhase(id, transferDomain.PhaseDelivered, total, nil)
	c.logger.Info("transfer delivered",
		slog.String("transfer_id", id.String()),
		slog.Int("bytes", len(plaintext)),
	)
	return nil
}

func (c *coordinator) Reset(transferID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[transferID]; !ok {
		return transferDomain.ErrSessionNotFound
	}
	c.removeLocked(context.Background(), transferID)
	return nil
}

func (c *coordinator) Sessions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func (c *coordinator) ExpireSessions(now time.Time) int {
	c.mu.Lock()
	var expired []*transferDomain.Session
	for id, s := range c.sessions {
		if s.Expired(now, c.opts.SessionTTL) {
			expired = append(expired, s)
			c.removeLocked(context.Background(), id)
		}
	}
	c.mu.Unlock()

	for _, s := range expired {
		c.logger.Warn("transfer session expired",
			slog.String("transfer_id", s.TransferID.String()),
			slog.Int("received", len(s.ReceivedParts)),
			slog.Int("expected", s.ExpectedParts),
		)
		c.publish(transferDomain.StatusEvent{
			TransferID: s.TransferID,
			Phase:      transferDomain.PhaseFailed,
			TotalParts: s.ExpectedParts,
			Error:      "session expired",
			Timestamp:  now,
		})
	}
	return len(expired)
}

func (c *coordinator) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.ExpireSessions(c.opts.Clock())
		}
	}
}

func (c *coordinator) Statuses(buffer int) (<-chan transferDomain.StatusEvent, func()) {
	return c.statuses.Subscribe(buffer)
}

// removeLocked deletes a session. Caller holds c.mu.
func (c *coordinator) removeLocked(ctx context.Context, transferID uuid.UUID) {
	if _, ok := c.sessions[transferID]; ok {
		delete(c.sessions, transferID)
		c.metrics.AddActiveSessions(ctx, -1)
	}
}

func (c *coordinator) publishPhase(transferID uuid.UUID, phase transferDomain.Phase, total int, err error) {
	event := transferDomain.StatusEvent{
		TransferID: transferID,
		Phase:      phase,
		TotalParts: total,
		OK:         err == nil,
		Timestamp:  c.opts.Clock(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	c.publish(event)
}

func (c *coordinator) publish(event transferDomain.StatusEvent) {
	if dropped := c.statuses.Publish(event); dropped > 0 {
		c.logger.Debug("status subscribers lagging, event dropped",
			slog.String("transfer_id", event.TransferID.String()),
			slog.Int("dropped", dropped),
		)
	}
}
