package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/securetransfer/internal/errors"
)

func TestUntrustedError(t *testing.T) {
	reasons := []string{"low battery", "cellular network"}
	err := NewUntrustedError(reasons)
	reasons[0] = "changed"

	assert.ErrorIs(t, err, ErrUntrustedEnvironment)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, []string{"low battery", "cellular network"}, err.ErrorReasons())
	assert.Equal(t, "untrusted environment: forbidden: low battery, cellular network", err.Error())
}
