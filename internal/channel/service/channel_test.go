package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Supported() bool {
	return m.Called().Bool(0)
}

func (m *mockTransport) Deliver(ctx context.Context, msg transferDomain.WireMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type panicTransport struct{}

func (panicTransport) Supported() bool { return true }

func (panicTransport) Deliver(context.Context, transferDomain.WireMessage) error {
	panic("transport exploded")
}

type recordingReceiver struct {
	msgs []transferDomain.WireMessage
	err  error
}

func (r *recordingReceiver) OnPartReceived(_ context.Context, msg transferDomain.WireMessage) error {
	r.msgs = append(r.msgs, msg)
	return r.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMessage() transferDomain.WireMessage {
	return transferDomain.WireMessage{
		TransferID: uuid.Must(uuid.NewV7()),
		Part:       0,
		TotalParts: 1,
		Data:       []byte("payload"),
	}
}

func collect(t *testing.T) (func(bool), func() []bool) {
	t.Helper()
	var results []bool
	return func(ok bool) { results = append(results, ok) }, func() []bool { return results }
}

func TestLocalChannel(t *testing.T) {
	ctx := context.Background()
	msg := testMessage()

	t.Run("supported transport delivers", func(t *testing.T) {
		transport := &mockTransport{}
		transport.On("Supported").Return(true)
		transport.On("Deliver", ctx, msg).Return(nil).Once()

		ch := NewLocalChannel(transport, newTestLogger())
		assert.Equal(t, channelDomain.Local, ch.Name())
		assert.True(t, ch.IsAvailable())

		onResult, results := collect(t)
		ch.Send(ctx, msg, onResult)
		assert.Equal(t, []bool{true}, results())
		transport.AssertExpectations(t)
	})

	t.Run("unsupported transport fails without delivering", func(t *testing.T) {
		transport := &mockTransport{}
		transport.On("Supported").Return(false)

		ch := NewLocalChannel(transport, newTestLogger())
		assert.False(t, ch.IsAvailable())

		onResult, results := collect(t)
		ch.Send(ctx, msg, onResult)
		assert.Equal(t, []bool{false}, results())
		transport.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
	})

	t.Run("delivery error reports failure", func(t *testing.T) {
		transport := &mockTransport{}
		transport.On("Supported").Return(true)
		transport.On("Deliver", ctx, msg).Return(errors.New("link down"))

		onResult, results := collect(t)
		NewLocalChannel(transport, newTestLogger()).Send(ctx, msg, onResult)
		assert.Equal(t, []bool{false}, results())
	})

	t.Run("transport panic reports failure", func(t *testing.T) {
		onResult, results := collect(t)
		assert.NotPanics(t, func() {
			NewLocalChannel(panicTransport{}, newTestLogger()).Send(ctx, msg, onResult)
		})
		assert.Equal(t, []bool{false}, results())
	})

	t.Run("nil transport is unavailable", func(t *testing.T) {
		assert.False(t, NewLocalChannel(nil, newTestLogger()).IsAvailable())
	})
}

func TestStubChannels(t *testing.T) {
	for _, ch := range []*StubChannel{NewCloudRelayChannel(), NewShortRangeRadioChannel()} {
		assert.False(t, ch.IsAvailable())
		onResult, results := collect(t)
		ch.Send(context.Background(), testMessage(), onResult)
		assert.Equal(t, []bool{false}, results())
	}
	assert.Equal(t, channelDomain.CloudRelay, NewCloudRelayChannel().Name())
	assert.Equal(t, channelDomain.ShortRangeRadio, NewShortRangeRadioChannel().Name())
}

func TestLoopbackTransport(t *testing.T) {
	ctx := context.Background()
	transport := NewLoopbackTransport()
	assert.False(t, transport.Supported())
	assert.Error(t, transport.Deliver(ctx, testMessage()))

	receiver := &recordingReceiver{}
	transport.Attach(receiver)
	assert.True(t, transport.Supported())

	msg := testMessage()
	require.NoError(t, transport.Deliver(ctx, msg))
	require.Len(t, receiver.msgs, 1)
	assert.Equal(t, msg.Data, receiver.msgs[0].Data)

	msg.Data[0] = 'X'
	assert.Equal(t, byte('p'), receiver.msgs[0].Data[0], "payload must be copied")

	receiver.err = errors.New("rejected")
	assert.EqualError(t, transport.Deliver(ctx, testMessage()), "rejected")
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	loopback := NewLoopbackTransport()
	receiver := &recordingReceiver{}
	loopback.Attach(receiver)

	registry := NewRegistry(
		newTestLogger(),
		NewLocalChannel(loopback, newTestLogger()),
		NewCloudRelayChannel(),
		NewShortRangeRadioChannel(),
	)

	assert.Equal(t,
		[]channelDomain.Kind{channelDomain.Local, channelDomain.CloudRelay, channelDomain.ShortRangeRadio},
		registry.Kinds(),
	)
	assert.Equal(t, []channelDomain.Kind{channelDomain.Local}, registry.Available())

	t.Run("available channel delivers", func(t *testing.T) {
		onResult, results := collect(t)
		registry.Send(ctx, channelDomain.Local, testMessage(), onResult)
		assert.Equal(t, []bool{true}, results())
	})

	t.Run("unavailable channel reports failure", func(t *testing.T) {
		onResult, results := collect(t)
		registry.Send(ctx, channelDomain.CloudRelay, testMessage(), onResult)
		assert.Equal(t, []bool{false}, results())
	})

	t.Run("unknown channel reports failure", func(t *testing.T) {
		onResult, results := collect(t)
		registry.Send(ctx, channelDomain.Kind("smoke_signal"), testMessage(), onResult)
		assert.Equal(t, []bool{false}, results())

		_, err := registry.Get("smoke_signal")
		assert.ErrorIs(t, err, channelDomain.ErrUnknownChannel)
	})

	t.Run("register replaces same kind", func(t *testing.T) {
		registry.Register(NewLocalChannel(nil, newTestLogger()))
		assert.Len(t, registry.Kinds(), 3)
		assert.Empty(t, registry.Available())
	})
}
