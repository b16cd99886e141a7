package domain

import (
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireMessage_Validate(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	tests := []struct {
		name    string
		msg     WireMessage
		wantErr bool
	}{
		{"valid first part", WireMessage{TransferID: id, Part: 0, TotalParts: 3}, false},
		{"valid last part", WireMessage{TransferID: id, Part: 2, TotalParts: 3}, false},
		{"missing transfer id", WireMessage{Part: 0, TotalParts: 1}, true},
		{"zero total", WireMessage{TransferID: id, Part: 0, TotalParts: 0}, true},
		{"negative index", WireMessage{TransferID: id, Part: -1, TotalParts: 2}, true},
		{"index equals total", WireMessage{TransferID: id, Part: 2, TotalParts: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPart)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSession(t *testing.T) {
	id := uuid.Must(uuid.NewV7())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("completes only when every part arrived", func(t *testing.T) {
		s := NewSession(id, 3, now)
		require.NoError(t, s.Add(WireMessage{TransferID: id, Part: 2, TotalParts: 3, Data: []byte("c")}, now))
		assert.False(t, s.Complete())
		require.NoError(t, s.Add(WireMessage{TransferID: id, Part: 0, TotalParts: 3, Data: []byte("a")}, now))
		assert.False(t, s.Complete())
		require.NoError(t, s.Add(WireMessage{TransferID: id, Part: 1, TotalParts: 3, Data: []byte("b")}, now))
		assert.True(t, s.Complete())

		parts := s.Parts()
		require.Len(t, parts, 3)
		for i, p := range parts {
			assert.Equal(t, i, p.Index)
		}
	})

	t.Run("duplicate index overwrites without growing", func(t *testing.T) {
		s := NewSession(id, 2, now)
		require.NoError(t, s.Add(WireMessage{TransferID: id, Part: 0, TotalParts: 2, Data: []byte("old")}, now))
		require.NoError(t, s.Add(WireMessage{TransferID: id, Part: 0, TotalParts: 2, Data: []byte("new")}, now))
		assert.Len(t, s.ReceivedParts, 1)
		assert.Equal(t, []byte("new"), s.ReceivedParts[0])
		assert.False(t, s.Complete())
	})

	t.Run("disagreeing total is rejected", func(t *testing.T) {
		s := NewSession(id, 2, now)
		err := s.Add(WireMessage{TransferID: id, Part: 0, TotalParts: 1}, now)
		assert.ErrorIs(t, err, ErrPartCountMismatch)
		assert.Empty(t, s.ReceivedParts)
	})

	t.Run("declared total does not size the buffer", func(t *testing.T) {
		var before, after runtime.MemStats
		runtime.GC()
		runtime.ReadMemStats(&before)

		s := NewSession(id, 1<<25, now)
		require.NoError(t, s.Add(WireMessage{TransferID: id, Part: 0, TotalParts: 1 << 25, Data: []byte("x")}, now))

		runtime.ReadMemStats(&after)
		assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
		assert.Len(t, s.ReceivedParts, 1)
	})

	t.Run("expiry", func(t *testing.T) {
		s := NewSession(id, 2, now)
		assert.False(t, s.Expired(now.Add(time.Minute), 5*time.Minute))
		assert.True(t, s.Expired(now.Add(6*time.Minute), 5*time.Minute))
	})
}
