package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

const (
	// Time allowed to write a part and read its acknowledgement.
	wsRoundTripWait = 10 * time.Second
)

var errNoReceiver = errors.New("no receiver attached")

// WebSocketTransport streams parts to a peer node's parts socket and waits for a
// PartAck per part. The connection is dialed lazily and redialed after any failure.
type WebSocketTransport struct {
	url    string
	dialer *websocket.Dialer
	logger *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebSocketTransport creates a transport for peerURL (ws:// or wss://).
// An empty peerURL yields an unsupported transport.
func NewWebSocketTransport(peerURL string, logger *slog.Logger) *WebSocketTransport {
	return &WebSocketTransport{
		url:    peerURL,
		dialer: &websocket.Dialer{HandshakeTimeout: wsRoundTripWait},
		logger: logger,
	}
}

func (t *WebSocketTransport) Supported() bool {
	return t.url != ""
}

// Deliver writes msg and blocks until the peer acknowledges it.
func (t *WebSocketTransport) Deliver(ctx context.Context, msg transferDomain.WireMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	conn, err := t.connect(ctx)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(wsRoundTripWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := conn.SetWriteDeadline(deadline); err != nil {
		t.reset()
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.reset()
		return fmt.Errorf("failed to write part: %w", err)
	}

	var ack transferDomain.PartAck
	if err := conn.SetReadDeadline(deadline); err != nil {
		t.reset()
		return fmt.Errorf("failed to set read deadline: %w", err)
	}
	if err := conn.ReadJSON(&ack); err != nil {
		t.reset()
		return fmt.Errorf("failed to read ack: %w", err)
	}

	if !ack.OK {
		return fmt.Errorf("peer rejected part %d: %s", msg.Part, ack.Error)
	}
	return nil
}

// Close closes the current connection, if any.
func (t *WebSocketTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	_ = t.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	err := t.conn.Close()
	t.conn = nil
	return err
}

func (t *WebSocketTransport) connect(ctx context.Context) (*websocket.Conn, error) {
	if t.conn != nil {
		return t.conn, nil
	}

	conn, resp, err := t.dialer.DialContext(ctx, t.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to dial peer: %w", err)
	}

	t.logger.Info("connected to peer", slog.String("url", t.url))
	t.conn = conn
	return conn, nil
}

func (t *WebSocketTransport) reset() {
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
}
