package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// TransferMetrics records per-channel part deliveries and the number of open
// reassembly sessions.
type TransferMetrics interface {
	// RecordPartDelivery counts one dispatched part by channel and outcome.
	RecordPartDelivery(ctx context.Context, channel string, ok bool)

	// AddActiveSessions moves the open session gauge by delta.
	AddActiveSessions(ctx context.Context, delta int64)
}

type transferMetrics struct {
	deliveryCounter metric.Int64Counter
	sessionGauge    metric.Int64UpDownCounter
}

// NewTransferMetrics creates a TransferMetrics implementation backed by the meter provider.
func NewTransferMetrics(meterProvider metric.MeterProvider, namespace string) (TransferMetrics, error) {
	meter := meterProvider.Meter(namespace)

	deliveryCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_part_deliveries_total", namespace),
		metric.WithDescription("Total number of dispatched transfer parts"),
		metric.WithUnit("{part}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create part delivery counter: %w", err)
	}

	sessionGauge, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_active_sessions", namespace),
		metric.WithDescription("Number of reassembly sessions waiting for parts"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session gauge: %w", err)
	}

	return &transferMetrics{
		deliveryCounter: deliveryCounter,
		sessionGauge:    sessionGauge,
	}, nil
}

func (t *transferMetrics) RecordPartDelivery(ctx context.Context, channel string, ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	t.deliveryCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("status", status),
	))
}

func (t *transferMetrics) AddActiveSessions(ctx context.Context, delta int64) {
	t.sessionGauge.Add(ctx, delta)
}

// NoOpTransferMetrics is used when metrics are disabled.
type NoOpTransferMetrics struct{}

// NewNoOpTransferMetrics creates a no-op TransferMetrics implementation.
func NewNoOpTransferMetrics() TransferMetrics {
	return &NoOpTransferMetrics{}
}

func (n *NoOpTransferMetrics) RecordPartDelivery(ctx context.Context, channel string, ok bool) {}

func (n *NoOpTransferMetrics) AddActiveSessions(ctx context.Context, delta int64) {}
