package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Session buffers the parts of one inbound transfer until all of them arrived.
//
// It never holds more than ExpectedParts entries because every index is checked
// against [0, ExpectedParts). Session is not safe for concurrent use; the
// coordinator guards it.
type Session struct {
	TransferID    uuid.UUID
	ExpectedParts int
	ReceivedParts map[int][]byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSession creates an empty session for a transfer. expectedParts comes off the
// wire, so it never sizes an allocation; the map grows with the parts that arrive.
func NewSession(transferID uuid.UUID, expectedParts int, now time.Time) *Session {
	return &Session{
		TransferID:    transferID,
		ExpectedParts: expectedParts,
		ReceivedParts: make(map[int][]byte),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Add stores a part. A duplicate index overwrites the earlier bytes.
func (s *Session) Add(msg WireMessage, now time.Time) error {
	if msg.TotalParts != s.ExpectedParts {
		return fmt.Errorf(
			"%w: transfer %s expects %d parts, part %d declares %d",
			ErrPartCountMismatch, s.TransferID, s.ExpectedParts, msg.Part, msg.TotalParts,
		)
	}
	if msg.Part < 0 || msg.Part >= s.ExpectedParts {
		return fmt.Errorf("%w: part %d outside [0, %d)", ErrInvalidPart, msg.Part, s.ExpectedParts)
	}

	s.ReceivedParts[msg.Part] = msg.Data
	s.UpdatedAt = now
	return nil
}

// Complete reports whether every expected part has arrived.
func (s *Session) Complete() bool {
	return len(s.ReceivedParts) == s.ExpectedParts
}

// Parts returns the buffered parts sorted by index.
func (s *Session) Parts() []Part {
	parts := make([]Part, 0, len(s.ReceivedParts))
	for idx, data := range s.ReceivedParts {
		parts = append(parts, Part{Index: idx, Data: data})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].Index < parts[j].Index })
	return parts
}

// Expired reports whether the session was created more than ttl before now.
func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}
