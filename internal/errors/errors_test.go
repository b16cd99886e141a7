package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("test error")
	require.Error(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		require.Error(t, wrapped)
		assert.Equal(t, "wrapped: base error", wrapped.Error())
		assert.True(t, errors.Is(wrapped, baseErr))
	})

	t.Run("wrap nil error", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "wrapped"))
	})
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrapf non-nil error", func(t *testing.T) {
		wrapped := Wrapf(baseErr, "wrapped %d", 123)
		require.Error(t, wrapped)
		assert.Equal(t, "wrapped 123: base error", wrapped.Error())
		assert.True(t, Is(wrapped, baseErr))
	})

	t.Run("wrapf nil error", func(t *testing.T) {
		assert.Nil(t, Wrapf(nil, "wrapped %d", 1))
	})
}

func TestIsAndAs(t *testing.T) {
	err := Wrap(customError{Msg: "custom"}, "context")

	var target customError
	assert.True(t, As(err, &target))
	assert.Equal(t, "custom", target.Msg)

	assert.True(t, Is(Wrap(ErrUnavailable, "vault down"), ErrUnavailable))
	assert.False(t, Is(Wrap(ErrUnavailable, "vault down"), ErrNotFound))
}

func TestJoin(t *testing.T) {
	err := Join(ErrNotFound, ErrConflict)
	assert.True(t, Is(err, ErrNotFound))
	assert.True(t, Is(err, ErrConflict))
}
