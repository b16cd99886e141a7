// Package usecase implements the trust monitor: a state holder that re-evaluates
// the verdict synchronously on every signal change and publishes it to subscribers.
package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/allisson/securetransfer/internal/broadcast"
	"github.com/allisson/securetransfer/internal/metrics"
	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
	trustService "github.com/allisson/securetransfer/internal/trust/service"
)

// Monitor implements TrustMonitor.
//
// Subscribers receive on buffered channels; a subscriber whose buffer is full
// misses that verdict instead of blocking the update.
type Monitor struct {
	clock   func() time.Time
	logger  *slog.Logger
	metrics metrics.BusinessMetrics

	hub *broadcast.Hub[trustDomain.Verdict]

	mu      sync.RWMutex
	signals trustDomain.Signals
	verdict trustDomain.Verdict
}

// NewMonitor creates a Monitor and evaluates the initial signals. The hour of
// initial is replaced by the clock's current hour.
func NewMonitor(
	initial trustDomain.Signals,
	clock func() time.Time,
	logger *slog.Logger,
	businessMetrics metrics.BusinessMetrics,
) *Monitor {
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	initial.Hour = now.Hour()

	m := &Monitor{
		clock:   clock,
		logger:  logger,
		metrics: businessMetrics,
		hub:     broadcast.NewHub[trustDomain.Verdict](),
		signals: initial,
	}
	m.verdict = trustService.Evaluate(initial, now)
	return m
}

// UpdateBattery sets the battery fraction; nil means unknown.
func (m *Monitor) UpdateBattery(level *float64) (trustDomain.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.signals
	if level != nil {
		v := *level
		level = &v
	}
	next.Battery = level
	return m.apply(next, m.clock())
}

// UpdateNetwork sets the active network class.
func (m *Monitor) UpdateNetwork(network trustDomain.NetworkClass) (trustDomain.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.signals
	next.Network = network
	return m.apply(next, m.clock())
}

// UpdateClock sets the hour from now.
func (m *Monitor) UpdateClock(now time.Time) trustDomain.Verdict {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.signals
	next.Hour = now.Hour()
	v, _ := m.apply(next, now)
	return v
}

// Update replaces every signal at once.
func (m *Monitor) Update(signals trustDomain.Signals) (trustDomain.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if signals.Battery != nil {
		v := *signals.Battery
		signals.Battery = &v
	}
	return m.apply(signals, m.clock())
}

// apply validates, evaluates and publishes. Caller holds m.mu.
func (m *Monitor) apply(next trustDomain.Signals, now time.Time) (trustDomain.Verdict, error) {
	if err := next.Validate(); err != nil {
		return copyVerdict(m.verdict), err
	}

	previous := m.verdict
	m.signals = next
	m.verdict = trustService.Evaluate(next, now)

	status := "safe"
	if !m.verdict.Safe {
		status = "unsafe"
	}
	m.metrics.RecordOperation(context.Background(), "trust", "evaluate", status)

	if previous.Safe != m.verdict.Safe {
		m.logger.Info("trust verdict changed",
			slog.Bool("safe", m.verdict.Safe),
			slog.Any("reasons", m.verdict.Reasons),
		)
	}

	if dropped := m.hub.Publish(copyVerdict(m.verdict)); dropped > 0 {
		m.logger.Debug("trust subscribers lagging, verdict dropped", slog.Int("dropped", dropped))
	}
	return copyVerdict(m.verdict), nil
}

// Current returns the latest verdict.
func (m *Monitor) Current() trustDomain.Verdict {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyVerdict(m.verdict)
}

// Signals returns the latest inputs.
func (m *Monitor) Signals() trustDomain.Signals {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.signals
	if s.Battery != nil {
		v := *s.Battery
		s.Battery = &v
	}
	return s
}

// Subscribe returns a channel receiving every subsequent verdict and an idempotent
// function that unsubscribes and closes it.
func (m *Monitor) Subscribe(buffer int) (<-chan trustDomain.Verdict, func()) {
	return m.hub.Subscribe(buffer)
}

// RunClock feeds an UpdateClock event at every hour boundary until ctx is done.
func (m *Monitor) RunClock(ctx context.Context) error {
	for {
		now := m.clock()
		next := time.Date(now.Year(), now.Month(), now.Day(), now.Hour()+1, 0, 0, 0, now.Location())
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			m.UpdateClock(next)
		}
	}
}

func copyVerdict(v trustDomain.Verdict) trustDomain.Verdict {
	v.Reasons = append([]string(nil), v.Reasons...)
	return v
}
