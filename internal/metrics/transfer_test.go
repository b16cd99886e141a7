package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("transfer_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	tm, err := NewTransferMetrics(provider.MeterProvider(), "transfer_test")
	require.NoError(t, err)

	ctx := context.Background()
	tm.RecordPartDelivery(ctx, "local", true)
	tm.RecordPartDelivery(ctx, "local", true)
	tm.RecordPartDelivery(ctx, "cloud_relay", false)
	tm.AddActiveSessions(ctx, 3)
	tm.AddActiveSessions(ctx, -1)

	output := scrape(t, provider)

	assertMetricLine(t, output, `transfer_test_part_deliveries_total`, `channel="local".*status="success"`, `2`)
	assertMetricLine(t, output, `transfer_test_part_deliveries_total`, `channel="cloud_relay".*status="error"`, `1`)
	assert.Regexp(t, `transfer_test_active_sessions\{[^}]*\} 2`, output)
}

func TestNoOpTransferMetrics(t *testing.T) {
	noOp := NewNoOpTransferMetrics()
	assert.NotPanics(t, func() {
		noOp.RecordPartDelivery(context.Background(), "local", false)
		noOp.AddActiveSessions(context.Background(), 1)
	})
}
