package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
)

func TestMapSendResultToResponse(t *testing.T) {
	id := uuid.Must(uuid.NewV7())
	resp := MapSendResultToResponse(&transferDomain.SendResult{
		TransferID: id,
		TotalParts: 2,
		Channels:   []string{"local", "cloud_relay"},
	})

	assert.Equal(t, id.String(), resp.TransferID)
	assert.Equal(t, 2, resp.TotalParts)
	assert.Equal(t, []string{"local", "cloud_relay"}, resp.Channels)
}

func TestMapVerdictToUntrustedResponse(t *testing.T) {
	resp := MapVerdictToUntrustedResponse(trustDomain.Verdict{
		Reasons: []string{trustDomain.ReasonLowBattery, trustDomain.ReasonNightTime},
	})

	assert.Equal(t, "forbidden", resp.Error)
	assert.Equal(t, []string{"low battery", "night time"}, resp.Reasons)
	assert.Equal(t, "Untrusted environment: Low battery. Night time.", resp.Description)
}

func TestMapMessagesToListResponse(t *testing.T) {
	now := time.Now().UTC()
	transferID := uuid.Must(uuid.NewV7())
	withTransfer := transferDomain.NewSecureMessage(transferID, []byte("hi"), now)
	bare := transferDomain.SecureMessage{ID: uuid.Must(uuid.NewV7()), Content: "local note", Timestamp: now}

	resp := MapMessagesToListResponse([]transferDomain.SecureMessage{withTransfer, bare}, 7)

	require.Len(t, resp.Data, 2)
	assert.Equal(t, 7, resp.Total)
	assert.Equal(t, "hi", resp.Data[0].Content)
	assert.Equal(t, transferID.String(), resp.Data[0].TransferID)
	assert.Empty(t, resp.Data[1].TransferID)

	binary := transferDomain.NewSecureMessage(transferID, []byte{0xff, 0x00, 0xfe}, now)
	resp = MapMessagesToListResponse([]transferDomain.SecureMessage{binary}, 1)
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].IsBinary)
	assert.Empty(t, resp.Data[0].Content)
	assert.Equal(t, []byte{0xff, 0x00, 0xfe}, resp.Data[0].Data)

	empty := MapMessagesToListResponse(nil, 0)
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)
}
