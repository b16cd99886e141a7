package usecase

import (
	"context"
	"time"

	"github.com/allisson/securetransfer/internal/metrics"
)

// engineWithMetrics decorates Engine with metrics instrumentation.
type engineWithMetrics struct {
	next    Engine
	metrics metrics.BusinessMetrics
}

// NewEngineWithMetrics wraps an Engine with metrics recording.
func NewEngineWithMetrics(next Engine, m metrics.BusinessMetrics) Engine {
	return &engineWithMetrics{
		next:    next,
		metrics: m,
	}
}

func (e *engineWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "crypto", operation, status)
	e.metrics.RecordDuration(ctx, "crypto", operation, time.Since(start), status)
}

// LoadOrCreateKey records metrics for key loading.
func (e *engineWithMetrics) LoadOrCreateKey(ctx context.Context) error {
	start := time.Now()
	err := e.next.LoadOrCreateKey(ctx)
	e.record(ctx, "key_load", start, err)
	return err
}

// Encrypt records metrics for encryption.
func (e *engineWithMetrics) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	start := time.Now()
	blob, err := e.next.Encrypt(ctx, plaintext)
	e.record(ctx, "encrypt", start, err)
	return blob, err
}

// Decrypt records metrics for decryption.
func (e *engineWithMetrics) Decrypt(ctx context.Context, blob []byte) ([]byte, error) {
	start := time.Now()
	plaintext, err := e.next.Decrypt(ctx, blob)
	e.record(ctx, "decrypt", start, err)
	return plaintext, err
}
