package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// newPeer starts a parts socket that acknowledges every message with ok.
func newPeer(t *testing.T, ok bool) (*httptest.Server, func() []transferDomain.WireMessage) {
	t.Helper()
	var (
		mu       sync.Mutex
		received []transferDomain.WireMessage
	)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var msg transferDomain.WireMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			mu.Lock()
			received = append(received, msg)
			mu.Unlock()
			ack := transferDomain.PartAck{TransferID: msg.TransferID, Part: msg.Part, OK: ok}
			if !ok {
				ack.Error = "rejected"
			}
			if err := conn.WriteJSON(ack); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []transferDomain.WireMessage {
		mu.Lock()
		defer mu.Unlock()
		return append([]transferDomain.WireMessage(nil), received...)
	}
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketTransport(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported without url", func(t *testing.T) {
		assert.False(t, NewWebSocketTransport("", newTestLogger()).Supported())
	})

	t.Run("delivers and reuses connection", func(t *testing.T) {
		srv, received := newPeer(t, true)
		transport := NewWebSocketTransport(wsURL(srv), newTestLogger())
		defer func() { _ = transport.Close() }()

		require.True(t, transport.Supported())
		first := testMessage()
		second := testMessage()
		require.NoError(t, transport.Deliver(ctx, first))
		require.NoError(t, transport.Deliver(ctx, second))

		got := received()
		require.Len(t, got, 2)
		assert.Equal(t, first.TransferID, got[0].TransferID)
		assert.Equal(t, first.Data, got[0].Data)
		assert.Equal(t, second.TransferID, got[1].TransferID)
	})

	t.Run("rejected ack is an error", func(t *testing.T) {
		srv, _ := newPeer(t, false)
		transport := NewWebSocketTransport(wsURL(srv), newTestLogger())
		defer func() { _ = transport.Close() }()

		err := transport.Deliver(ctx, testMessage())
		assert.ErrorContains(t, err, "rejected")
	})

	t.Run("unreachable peer is an error", func(t *testing.T) {
		srv, _ := newPeer(t, true)
		url := wsURL(srv)
		srv.Close()

		err := NewWebSocketTransport(url, newTestLogger()).Deliver(ctx, testMessage())
		assert.Error(t, err)
	})
}
