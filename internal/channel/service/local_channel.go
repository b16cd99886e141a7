// Package service provides the delivery channel implementations and the registry the
// transfer coordinator dispatches through.
package service

import (
	"context"
	"log/slog"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// LocalChannel is the always-on reference channel. It is synchronous and reports
// success iff the transport is supported and Deliver returned nil.
type LocalChannel struct {
	transport channelDomain.Transport
	logger    *slog.Logger
}

// NewLocalChannel creates a LocalChannel over transport.
func NewLocalChannel(transport channelDomain.Transport, logger *slog.Logger) *LocalChannel {
	return &LocalChannel{transport: transport, logger: logger}
}

// Name returns channelDomain.Local.
func (c *LocalChannel) Name() channelDomain.Kind {
	return channelDomain.Local
}

// IsAvailable reports whether the transport is supported.
func (c *LocalChannel) IsAvailable() bool {
	return c.transport != nil && c.transport.Supported()
}

// Send delivers msg and reports the outcome. Transport panics are reported as failure.
func (c *LocalChannel) Send(ctx context.Context, msg transferDomain.WireMessage, onResult func(ok bool)) {
	if !c.IsAvailable() {
		onResult(false)
		return
	}

	ok := false
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("local transport panicked",
				slog.String("transfer_id", msg.TransferID.String()),
				slog.Int("part", msg.Part),
				slog.Any("panic", r),
			)
			ok = false
		}
		onResult(ok)
	}()

	if err := c.transport.Deliver(ctx, msg); err != nil {
		c.logger.Warn("local delivery failed",
			slog.String("transfer_id", msg.TransferID.String()),
			slog.Int("part", msg.Part),
			slog.Any("error", err),
		)
		return
	}
	ok = true
}
