package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
	"github.com/allisson/securetransfer/internal/transfer/http/mocks"
)

func TestRunSend(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	transferID := uuid.Must(uuid.NewV7())
	result := &transferDomain.SendResult{
		TransferID: transferID,
		TotalParts: 2,
		Channels:   []string{"local", "cloud_relay"},
	}
	kinds := []channelDomain.Kind{channelDomain.Local, channelDomain.CloudRelay}

	t.Run("text-output", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		coordinator.On("Send", ctx, []byte("hello"), kinds).Return(result, nil)

		var out bytes.Buffer
		err := RunSend(ctx, coordinator, logger, &out, "hello", []string{"local", "cloud_relay"}, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Transfer "+transferID.String()+" dispatched in 2 part(s)")
		require.Contains(t, out.String(), "local, cloud_relay")
		coordinator.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		coordinator.On("Send", ctx, []byte("hello"), kinds).Return(result, nil)

		var out bytes.Buffer
		err := RunSend(ctx, coordinator, logger, &out, "hello", []string{"local", "cloud_relay"}, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"transfer_id": "`+transferID.String()+`"`)
		require.Contains(t, out.String(), `"total_parts": 2`)
		coordinator.AssertExpectations(t)
	})

	t.Run("unknown-channel", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		err := RunSend(ctx, coordinator, logger, &bytes.Buffer{}, "hello", []string{"pigeon"}, "text")

		require.ErrorIs(t, err, channelDomain.ErrUnknownChannel)
		coordinator.AssertNotCalled(t, "Send")
	})

	t.Run("empty-message", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		err := RunSend(ctx, coordinator, logger, &bytes.Buffer{}, "", []string{"local"}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "message must not be empty")
	})

	t.Run("untrusted", func(t *testing.T) {
		coordinator := &mocks.MockCoordinator{}
		coordinator.On("Send", ctx, []byte("hello"), []channelDomain.Kind{channelDomain.Local}).
			Return(nil, transferDomain.NewUntrustedError([]string{"low battery"}))

		err := RunSend(ctx, coordinator, logger, &bytes.Buffer{}, "hello", []string{"local"}, "text")

		var untrusted *transferDomain.UntrustedError
		require.True(t, errors.As(err, &untrusted))
		require.Equal(t, []string{"low battery"}, untrusted.Reasons)
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunSend(ctx, &mocks.MockCoordinator{}, logger, &bytes.Buffer{}, "hello", []string{"local"}, "xml")
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format")
	})
}
