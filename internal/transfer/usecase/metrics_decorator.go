package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	"github.com/allisson/securetransfer/internal/metrics"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// coordinatorWithMetrics decorates Coordinator with metrics instrumentation.
type coordinatorWithMetrics struct {
	Coordinator
	metrics metrics.BusinessMetrics
}

// NewCoordinatorWithMetrics wraps a Coordinator with metrics recording on Send,
// OnPartReceived and Reset.
func NewCoordinatorWithMetrics(next Coordinator, m metrics.BusinessMetrics) Coordinator {
	return &coordinatorWithMetrics{Coordinator: next, metrics: m}
}

func (c *coordinatorWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "transfer", operation, status)
	c.metrics.RecordDuration(ctx, "transfer", operation, time.Since(start), status)
}

// Send records metrics for send operations.
func (c *coordinatorWithMetrics) Send(
	ctx context.Context,
	plaintext []byte,
	channels []channelDomain.Kind,
) (*transferDomain.SendResult, error) {
	start := time.Now()
	result, err := c.Coordinator.Send(ctx, plaintext, channels)
	c.record(ctx, "send", start, err)
	return result, err
}

// OnPartReceived records metrics for inbound parts.
func (c *coordinatorWithMetrics) OnPartReceived(ctx context.Context, msg transferDomain.WireMessage) error {
	start := time.Now()
	err := c.Coordinator.OnPartReceived(ctx, msg)
	c.record(ctx, "part_received", start, err)
	return err
}

// Reset records metrics for session resets.
func (c *coordinatorWithMetrics) Reset(transferID uuid.UUID) error {
	start := time.Now()
	err := c.Coordinator.Reset(transferID)
	c.record(context.Background(), "reset", start, err)
	return err
}
