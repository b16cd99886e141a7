package domain

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortable_RoundTrip(t *testing.T) {
	random := make([]byte, 10*1024)
	_, err := rand.Read(random)
	require.NoError(t, err)

	inputs := map[string][]byte{
		"empty":       {},
		"single":      {0x00},
		"all bytes":   allBytes(),
		"10KB random": random,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			text := ExportPortable(input)
			decoded, err := ImportPortable(text)
			require.NoError(t, err)
			assert.Equal(t, input, decoded)
		})
	}
}

func TestImportPortable_InvalidFormat(t *testing.T) {
	for _, text := range []string{"not-valid-encoding!!", "abc", "====", "a b c d"} {
		_, err := ImportPortable(text)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", text)
	}
}

func TestImportPortable_TrimsWhitespace(t *testing.T) {
	decoded, err := ImportPortable("  aGVsbG8=\n")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded)
}

func allBytes() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
