package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// Sender starts a transfer.
type Sender interface {
	Send(ctx context.Context, plaintext []byte, channels []channelDomain.Kind) (*transferDomain.SendResult, error)
}

// RunSend encrypts message and dispatches one part per channel. With LOCAL_PEER_URL
// set the local channel streams to that node; otherwise it loops back into this process.
func RunSend(
	ctx context.Context,
	sender Sender,
	logger *slog.Logger,
	writer io.Writer,
	message string,
	channelNames []string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if message == "" {
		return fmt.Errorf("message must not be empty")
	}

	channels, err := channelDomain.ParseKinds(channelNames)
	if err != nil {
		return err
	}

	result, err := sender.Send(ctx, []byte(message), channels)
	if err != nil {
		return fmt.Errorf("failed to send transfer: %w", err)
	}

	logger.Info("transfer dispatched",
		slog.String("transfer_id", result.TransferID.String()),
		slog.Int("total_parts", result.TotalParts),
	)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"transfer_id": result.TransferID.String(),
			"total_parts": result.TotalParts,
			"channels":    result.Channels,
		})
	}

	_, err = fmt.Fprintf(writer, "Transfer %s dispatched in %d part(s) over: %s\n",
		result.TransferID, result.TotalParts, strings.Join(result.Channels, ", "))
	return err
}
