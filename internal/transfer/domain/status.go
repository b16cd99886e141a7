package domain

import (
	"time"

	"github.com/google/uuid"
)

// Phase is a state of the send or receive state machine.
type Phase string

// Send side: Idle → Encrypting → Splitting → Dispatching → Idle|Failed.
// Receive side: Idle → Buffering → Combining → Decrypting → Delivered|Failed.
const (
	PhaseIdle        Phase = "idle"
	PhaseEncrypting  Phase = "encrypting"
	PhaseSplitting   Phase = "splitting"
	PhaseDispatching Phase = "dispatching"
	PhaseBuffering   Phase = "buffering"
	PhaseCombining   Phase = "combining"
	PhaseDecrypting  Phase = "decrypting"
	PhaseDelivered   Phase = "delivered"
	PhaseFailed      Phase = "failed"
)

// StatusEvent reports a state transition or a per-part delivery result.
//
// Channel, Part, OK and Progress are only meaningful for dispatching events.
type StatusEvent struct {
	TransferID uuid.UUID `json:"transfer_id"`
	Phase      Phase     `json:"phase"`
	Channel    string    `json:"channel,omitempty"`
	Part       int       `json:"part"`
	TotalParts int       `json:"total_parts"`
	OK         bool      `json:"ok"`
	Progress   float64   `json:"progress"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// SendResult is returned once encryption and splitting succeeded.
// Delivery outcomes arrive later as StatusEvents.
type SendResult struct {
	TransferID uuid.UUID
	TotalParts int
	Channels   []string
}
