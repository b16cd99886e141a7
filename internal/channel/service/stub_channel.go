package service

import (
	"context"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// StubChannel is a channel kind with no transport. It is never available and every
// send fails.
type StubChannel struct {
	kind channelDomain.Kind
}

// NewCloudRelayChannel returns the peer-cloud relay stub.
func NewCloudRelayChannel() *StubChannel {
	return &StubChannel{kind: channelDomain.CloudRelay}
}

// NewShortRangeRadioChannel returns the short-range radio stub.
func NewShortRangeRadioChannel() *StubChannel {
	return &StubChannel{kind: channelDomain.ShortRangeRadio}
}

func (s *StubChannel) Name() channelDomain.Kind { return s.kind }

func (s *StubChannel) IsAvailable() bool { return false }

func (s *StubChannel) Send(_ context.Context, _ transferDomain.WireMessage, onResult func(ok bool)) {
	onResult(false)
}
