package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

func TestRunExportPortable(t *testing.T) {
	t.Run("from-argument", func(t *testing.T) {
		var out bytes.Buffer
		err := RunExportPortable(IOTuple{Reader: strings.NewReader(""), Writer: &out}, "hello")

		require.NoError(t, err)
		require.Equal(t, "aGVsbG8=\n", out.String())
	})

	t.Run("from-reader", func(t *testing.T) {
		var out bytes.Buffer
		err := RunExportPortable(IOTuple{Reader: strings.NewReader("hello"), Writer: &out}, "")

		require.NoError(t, err)
		require.Equal(t, "aGVsbG8=\n", out.String())
	})
}

func TestRunImportPortable(t *testing.T) {
	t.Run("from-argument", func(t *testing.T) {
		var out bytes.Buffer
		err := RunImportPortable(IOTuple{Reader: strings.NewReader(""), Writer: &out}, "aGVsbG8=")

		require.NoError(t, err)
		require.Equal(t, "hello", out.String())
	})

	t.Run("from-reader-with-newline", func(t *testing.T) {
		var out bytes.Buffer
		err := RunImportPortable(IOTuple{Reader: strings.NewReader("aGVsbG8=\n"), Writer: &out}, "")

		require.NoError(t, err)
		require.Equal(t, "hello", out.String())
	})

	t.Run("invalid", func(t *testing.T) {
		err := RunImportPortable(IOTuple{Reader: strings.NewReader(""), Writer: &bytes.Buffer{}}, "not base64!")
		require.ErrorIs(t, err, transferDomain.ErrInvalidFormat)
	})
}
