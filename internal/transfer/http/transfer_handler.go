// Package http provides HTTP handlers for sending transfers, receiving parts from
// peer nodes and reading delivered messages.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	"github.com/allisson/securetransfer/internal/httputil"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
	"github.com/allisson/securetransfer/internal/transfer/http/dto"
	transferUseCase "github.com/allisson/securetransfer/internal/transfer/usecase"
	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
	customValidation "github.com/allisson/securetransfer/internal/validation"
)

const (
	// maxMessagesPageSize bounds the limit query parameter of ListMessagesHandler.
	maxMessagesPageSize = 100

	// statusStreamBuffer is the per-client buffer of the status stream.
	statusStreamBuffer = 64

	// maxPartFrameSize bounds one frame read from the parts socket.
	maxPartFrameSize = 4 << 20
)

// MessageLister reads delivered messages.
type MessageLister interface {
	List(offset, limit int) []transferDomain.SecureMessage
	Len() int
}

// TransferHandler handles HTTP requests for the transfer coordinator.
type TransferHandler struct {
	coordinator     transferUseCase.Coordinator
	inbox           MessageLister
	defaultChannels []channelDomain.Kind
	upgrader        websocket.Upgrader
	logger          *slog.Logger

	// Per-connection frame limit of the parts socket; zero means unlimited.
	frameLimit rate.Limit
	frameBurst int

	streamsDone  chan struct{}
	closeStreams sync.Once
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(
	coordinator transferUseCase.Coordinator,
	inbox MessageLister,
	defaultChannels []channelDomain.Kind,
	logger *slog.Logger,
) *TransferHandler {
	return &TransferHandler{
		coordinator:     coordinator,
		inbox:           inbox,
		defaultChannels: defaultChannels,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		logger:      logger,
		streamsDone: make(chan struct{}),
	}
}

// SetFrameRateLimit limits each parts socket connection to requestsPerSec frames
// with the given burst. The middleware rate limit only sees the upgrade request.
func (h *TransferHandler) SetFrameRateLimit(requestsPerSec float64, burst int) {
	if burst < 1 {
		burst = 1
	}
	h.frameLimit = rate.Limit(requestsPerSec)
	h.frameBurst = burst
}

// CloseStreams ends every open status stream. It is idempotent and is registered
// as a server shutdown hook, since graceful shutdown waits for open streams.
func (h *TransferHandler) CloseStreams() {
	h.closeStreams.Do(func() {
		close(h.streamsDone)
	})
}

// SendHandler encrypts a message and dispatches one part per selected channel.
// POST /v1/transfers
// Returns 202 Accepted; per-part results are published on the status stream.
func (h *TransferHandler) SendHandler(c *gin.Context) {
	var req dto.SendTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	channels := h.defaultChannels
	if len(req.Channels) > 0 {
		kinds, err := channelDomain.ParseKinds(req.Channels)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		channels = kinds
	}

	result, err := h.coordinator.Send(c.Request.Context(), []byte(req.Message), channels)
	if err != nil {
		var untrusted *transferDomain.UntrustedError
		if errors.As(err, &untrusted) {
			h.logger.Warn("send blocked", slog.Any("reasons", untrusted.Reasons))
			verdict := trustDomain.Verdict{Safe: false, Reasons: untrusted.Reasons}
			c.JSON(http.StatusForbidden, dto.MapVerdictToUntrustedResponse(verdict))
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, dto.MapSendResultToResponse(result))
}

// ReceivePartHandler accepts one part from a peer node.
// POST /v1/transfers/parts
// Returns 200 OK with a PartAck once the part is buffered or its transfer delivered.
func (h *TransferHandler) ReceivePartHandler(c *gin.Context) {
	var req dto.ReceivePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	msg, err := req.ToWireMessage()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.coordinator.OnPartReceived(c.Request.Context(), msg); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, transferDomain.PartAck{TransferID: msg.TransferID, Part: msg.Part, OK: true})
}

// PartsSocketHandler upgrades to a websocket carrying one WireMessage per frame
// and answers every frame with a PartAck.
// GET /v1/transfers/ws
func (h *TransferHandler) PartsSocketHandler(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Warn("parts socket upgrade failed", slog.Any("error", err))
		return
	}
	defer func() {
		_ = conn.Close()
	}()
	conn.SetReadLimit(maxPartFrameSize)

	ctx := c.Request.Context()
	h.logger.Info("peer connected", slog.String("remote_addr", c.Request.RemoteAddr))

	var limiter *rate.Limiter
	if h.frameLimit > 0 {
		limiter = rate.NewLimiter(h.frameLimit, h.frameBurst)
	}

	for {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}

		var msg transferDomain.WireMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("parts socket closed", slog.Any("error", err))
			}
			return
		}

		ack := transferDomain.PartAck{TransferID: msg.TransferID, Part: msg.Part, OK: true}
		if err := h.coordinator.OnPartReceived(ctx, msg); err != nil {
			ack.OK = false
			ack.Error = err.Error()
		}

		if err := conn.WriteJSON(ack); err != nil {
			h.logger.Warn("failed to write part ack", slog.Any("error", err))
			return
		}
	}
}

// ResetSessionHandler discards the receive session of a transfer.
// DELETE /v1/sessions/:id
// Returns 204 No Content.
func (h *TransferHandler) ResetSessionHandler(c *gin.Context) {
	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid transfer id: %w", err), h.logger)
		return
	}

	if err := h.coordinator.Reset(transferID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// StatusStreamHandler streams status events as server-sent events until the
// client disconnects. The optional transfer_id query parameter filters events.
// GET /v1/transfers/events?transfer_id=...
func (h *TransferHandler) StatusStreamHandler(c *gin.Context) {
	var filter uuid.UUID
	if raw := c.Query("transfer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, fmt.Errorf("invalid transfer_id: %w", err), h.logger)
			return
		}
		filter = id
	}

	events, unsubscribe := h.coordinator.Statuses(statusStreamBuffer)
	defer unsubscribe()

	// The stream outlives the server write timeout.
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.streamsDone:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if filter != uuid.Nil && event.TransferID != filter {
				continue
			}
			c.SSEvent("status", event)
			c.Writer.Flush()
		}
	}
}

// ListMessagesHandler lists delivered messages, newest first.
// GET /v1/messages?offset=0&limit=20
func (h *TransferHandler) ListMessagesHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c, maxMessagesPageSize)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	messages := h.inbox.List(offset, limit)
	c.JSON(http.StatusOK, dto.MapMessagesToListResponse(messages, h.inbox.Len()))
}
