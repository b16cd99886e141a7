package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Part is one contiguous slice of a split blob.
type Part struct {
	Index int
	Data  []byte
}

// WireMessage is the payload carried by a channel for a single part.
//
// Data is serialized as standard base64 by encoding/json.
type WireMessage struct {
	TransferID uuid.UUID `json:"transfer_id"`
	Part       int       `json:"part"`
	TotalParts int       `json:"totalParts"`
	Data       []byte    `json:"data"`
}

// Validate checks the transfer id and the part range.
func (m WireMessage) Validate() error {
	if m.TransferID == uuid.Nil {
		return fmt.Errorf("%w: missing transfer id", ErrInvalidPart)
	}
	if m.TotalParts <= 0 {
		return fmt.Errorf("%w: totalParts must be positive, got %d", ErrInvalidPart, m.TotalParts)
	}
	if m.Part < 0 || m.Part >= m.TotalParts {
		return fmt.Errorf("%w: part %d outside [0, %d)", ErrInvalidPart, m.Part, m.TotalParts)
	}
	return nil
}

// PartAck is the peer's reply to a WireMessage on a streaming transport.
type PartAck struct {
	TransferID uuid.UUID `json:"transfer_id"`
	Part       int       `json:"part"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
}
