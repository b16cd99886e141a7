// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"fmt"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	channelDomain "github.com/allisson/securetransfer/internal/channel/domain"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
	customValidation "github.com/allisson/securetransfer/internal/validation"
)

// MaxMessageSize bounds the plaintext accepted by a single send.
const MaxMessageSize = 1 << 20

// SendTransferRequest contains the parameters for sending a message.
// When Channels is empty the server's default channels are used.
type SendTransferRequest struct {
	Message  string   `json:"message"`
	Channels []string `json:"channels"`
}

// Validate checks if the send request is valid.
func (r *SendTransferRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Message,
			validation.Required,
			validation.Length(1, MaxMessageSize),
		),
		validation.Field(&r.Channels,
			validation.Each(
				validation.Required,
				validation.In(
					string(channelDomain.Local),
					string(channelDomain.CloudRelay),
					string(channelDomain.ShortRangeRadio),
				),
			),
		),
	)
}

// ReceivePartRequest is one inbound part as produced by a peer's channel.
type ReceivePartRequest struct {
	TransferID string `json:"transfer_id"`
	Part       int    `json:"part"`
	TotalParts int    `json:"totalParts"`
	Data       []byte `json:"data"`
}

// Validate checks if the part request is valid.
func (r *ReceivePartRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TransferID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
		validation.Field(&r.Part, validation.Min(0)),
		validation.Field(&r.TotalParts, validation.Required, validation.Min(1)),
	)
}

// PortableExportRequest carries the bytes to encode. Data travels as base64 in
// JSON so arbitrary bytes survive the request.
type PortableExportRequest struct {
	Data []byte `json:"data"`
}

// Validate checks if the export request is valid.
func (r *PortableExportRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Data, validation.Length(0, MaxMessageSize)),
	)
}

// PortableImportRequest carries portable text to decode.
type PortableImportRequest struct {
	Portable string `json:"portable"`
}

// Validate checks if the import request is valid.
func (r *PortableImportRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Portable,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
	)
}

// ToWireMessage converts the request into a domain wire message.
func (r *ReceivePartRequest) ToWireMessage() (transferDomain.WireMessage, error) {
	transferID, err := uuid.Parse(r.TransferID)
	if err != nil {
		return transferDomain.WireMessage{}, fmt.Errorf("%w: invalid transfer id", transferDomain.ErrInvalidPart)
	}
	return transferDomain.WireMessage{
		TransferID: transferID,
		Part:       r.Part,
		TotalParts: r.TotalParts,
		Data:       r.Data,
	}, nil
}
