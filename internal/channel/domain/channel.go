// Package domain defines delivery channel kinds and the channel capability interface.
package domain

import (
	"context"
	"fmt"

	"github.com/allisson/securetransfer/internal/errors"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// Kind names a delivery channel.
type Kind string

const (
	// Local is the always-available reference channel.
	Local Kind = "local"

	// CloudRelay is the peer-cloud relay channel (stub).
	CloudRelay Kind = "cloud_relay"

	// ShortRangeRadio is the short-range radio channel (stub).
	ShortRangeRadio Kind = "short_range_radio"
)

// Channel errors. Both are per-part failures; they never abort a transfer.
var (
	ErrChannelUnavailable = errors.Wrap(errors.ErrUnavailable, "channel unavailable")
	ErrUnknownChannel     = errors.Wrap(errors.ErrInvalidInput, "unknown channel")
)

// Channel delivers a single wire message.
//
// Send reports the outcome exactly once through onResult and never panics or
// returns an error; failures are reported as onResult(false).
type Channel interface {
	Name() Kind
	IsAvailable() bool
	Send(ctx context.Context, msg transferDomain.WireMessage, onResult func(ok bool))
}

// Transport is the underlying medium used by a concrete channel.
type Transport interface {
	Supported() bool
	Deliver(ctx context.Context, msg transferDomain.WireMessage) error
}

// ParseKind validates a channel name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Local, CloudRelay, ShortRangeRadio:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
	}
}

// ParseKinds validates a list of channel names, keeping order and duplicates.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
