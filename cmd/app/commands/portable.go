package commands

import (
	"fmt"
	"io"

	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
)

// RunExportPortable writes the portable (base64) form of text. When text is empty
// the input is read from tuple.Reader until EOF.
func RunExportPortable(tuple IOTuple, text string) error {
	data := []byte(text)
	if text == "" {
		var err error
		if data, err = readAll(tuple); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(tuple.Writer, transferDomain.ExportPortable(data))
	return err
}

// RunImportPortable decodes portable text and writes the original bytes. When
// portable is empty the input is read from tuple.Reader until EOF.
func RunImportPortable(tuple IOTuple, portable string) error {
	if portable == "" {
		data, err := readAll(tuple)
		if err != nil {
			return err
		}
		portable = string(data)
	}

	data, err := transferDomain.ImportPortable(portable)
	if err != nil {
		return err
	}

	_, err = tuple.Writer.Write(data)
	return err
}

func readAll(tuple IOTuple) ([]byte, error) {
	data, err := io.ReadAll(tuple.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
