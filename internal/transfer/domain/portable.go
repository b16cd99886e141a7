package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ExportPortable encodes arbitrary bytes as standard base64 text.
func ExportPortable(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ImportPortable decodes text produced by ExportPortable.
// Surrounding whitespace is ignored; anything else that is not valid base64 fails
// with ErrInvalidFormat.
func ImportPortable(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return data, nil
}
