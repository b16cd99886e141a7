// Package domain defines transfer parts, wire messages, reassembly sessions, status
// events and the portable text encoding.
package domain

import (
	"strings"

	"github.com/allisson/securetransfer/internal/errors"
)

// Transfer error definitions.
var (
	// ErrInvalidPartCount indicates a split or send requested zero or fewer parts.
	ErrInvalidPartCount = errors.Wrap(errors.ErrInvalidInput, "invalid part count")

	// ErrInvalidPart indicates a wire message whose index or total is out of range.
	ErrInvalidPart = errors.Wrap(errors.ErrInvalidInput, "invalid part")

	// ErrPartCountMismatch indicates a part declared a different total than earlier
	// parts of the same transfer. The session is discarded.
	ErrPartCountMismatch = errors.Wrap(errors.ErrInvalidInput, "part count mismatch")

	// ErrInvalidFormat indicates portable text that does not decode.
	ErrInvalidFormat = errors.Wrap(errors.ErrInvalidInput, "invalid format")

	// ErrUntrustedEnvironment indicates the trust gate blocked a send.
	ErrUntrustedEnvironment = errors.Wrap(errors.ErrForbidden, "untrusted environment")

	// ErrTooManySessions indicates the receiver already buffers the maximum number
	// of incomplete transfers.
	ErrTooManySessions = errors.Wrap(errors.ErrUnavailable, "too many open sessions")

	// ErrSessionNotFound indicates no reassembly session exists for the transfer id.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")
)

// UntrustedError is returned when the trust gate blocks a send. It unwraps to
// ErrUntrustedEnvironment and carries the verdict reasons.
type UntrustedError struct {
	Reasons []string
}

// NewUntrustedError copies reasons into an UntrustedError.
func NewUntrustedError(reasons []string) *UntrustedError {
	return &UntrustedError{Reasons: append([]string(nil), reasons...)}
}

func (e *UntrustedError) Error() string {
	return ErrUntrustedEnvironment.Error() + ": " + strings.Join(e.Reasons, ", ")
}

func (e *UntrustedError) Unwrap() error {
	return ErrUntrustedEnvironment
}

// ErrorReasons returns the reasons shown to the caller.
func (e *UntrustedError) ErrorReasons() []string {
	return e.Reasons
}
