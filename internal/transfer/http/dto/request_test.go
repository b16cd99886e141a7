package dto

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

func TestSendTransferRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request SendTransferRequest
		wantErr bool
	}{
		{
			name:    "valid with channels",
			request: SendTransferRequest{Message: "hello", Channels: []string{"local", "cloud_relay"}},
		},
		{
			name:    "valid without channels",
			request: SendTransferRequest{Message: "hello"},
		},
		{
			name:    "duplicate channels are allowed",
			request: SendTransferRequest{Message: "hello", Channels: []string{"local", "local"}},
		},
		{
			name:    "empty message",
			request: SendTransferRequest{Channels: []string{"local"}},
			wantErr: true,
		},
		{
			name:    "message too large",
			request: SendTransferRequest{Message: strings.Repeat("a", MaxMessageSize+1)},
			wantErr: true,
		},
		{
			name:    "unknown channel",
			request: SendTransferRequest{Message: "hello", Channels: []string{"carrier_pigeon"}},
			wantErr: true,
		},
		{
			name:    "blank channel",
			request: SendTransferRequest{Message: "hello", Channels: []string{""}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReceivePartRequest_Validate(t *testing.T) {
	id := uuid.Must(uuid.NewV7()).String()

	assert.NoError(t, (&ReceivePartRequest{TransferID: id, Part: 0, TotalParts: 1}).Validate())
	assert.NoError(t, (&ReceivePartRequest{TransferID: id, Part: 2, TotalParts: 3, Data: []byte("x")}).Validate())
	assert.Error(t, (&ReceivePartRequest{Part: 0, TotalParts: 1}).Validate())
	assert.Error(t, (&ReceivePartRequest{TransferID: id, Part: -1, TotalParts: 1}).Validate())
	assert.Error(t, (&ReceivePartRequest{TransferID: id, Part: 0, TotalParts: 0}).Validate())
	assert.Error(t, (&ReceivePartRequest{TransferID: " " + id, Part: 0, TotalParts: 1}).Validate())
}

func TestReceivePartRequest_ToWireMessage(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	t.Run("valid id", func(t *testing.T) {
		req := ReceivePartRequest{TransferID: id.String(), Part: 1, TotalParts: 2, Data: []byte{1, 2}}
		msg, err := req.ToWireMessage()
		require.NoError(t, err)
		assert.Equal(t, transferDomain.WireMessage{TransferID: id, Part: 1, TotalParts: 2, Data: []byte{1, 2}}, msg)
	})

	t.Run("malformed id", func(t *testing.T) {
		req := ReceivePartRequest{TransferID: "not-a-uuid", Part: 0, TotalParts: 1}
		_, err := req.ToWireMessage()
		assert.ErrorIs(t, err, transferDomain.ErrInvalidPart)
	})
}

func TestPortableRequests_Validate(t *testing.T) {
	assert.NoError(t, (&PortableExportRequest{}).Validate())
	assert.NoError(t, (&PortableExportRequest{Data: []byte{0xff, 0x00, 0xfe}}).Validate())
	assert.Error(t, (&PortableExportRequest{Data: make([]byte, MaxMessageSize+1)}).Validate())
	assert.NoError(t, (&PortableImportRequest{Portable: "aGVsbG8="}).Validate())
	assert.Error(t, (&PortableImportRequest{Portable: ""}).Validate())
	assert.Error(t, (&PortableImportRequest{Portable: "   "}).Validate())
	assert.NoError(t, (&PortableImportRequest{Portable: " aGVsbG8=\n"}).Validate())
	assert.Error(t, (&PortableImportRequest{Portable: "not base64!"}).Validate())
}
