package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// SecureMessage is the record handed to a Sink when a transfer is delivered.
// It carries no transfer-control state.
//
// Data always holds the exact plaintext bytes. Content repeats them as text only
// when they are valid UTF-8; otherwise Content is empty and IsBinary is set.
type SecureMessage struct {
	ID               uuid.UUID  `json:"id"`
	Content          string     `json:"content"`
	Data             []byte     `json:"data"`
	IsBinary         bool       `json:"is_binary"`
	Timestamp        time.Time  `json:"timestamp"`
	IsEncrypted      bool       `json:"is_encrypted"`
	TokenizedContent *string    `json:"tokenized_content,omitempty"`
	TransferID       *uuid.UUID `json:"transfer_id,omitempty"`
}

// NewSecureMessage builds a delivered message from decrypted plaintext.
func NewSecureMessage(transferID uuid.UUID, plaintext []byte, now time.Time) SecureMessage {
	tid := transferID
	msg := SecureMessage{
		ID:          uuid.Must(uuid.NewV7()),
		Data:        plaintext,
		Timestamp:   now,
		IsEncrypted: false,
		TransferID:  &tid,
	}
	if utf8.Valid(plaintext) {
		msg.Content = string(plaintext)
	} else {
		msg.IsBinary = true
	}
	return msg
}
