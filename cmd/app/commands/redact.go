package commands

import (
	"fmt"
	"io"
	"strings"

	redactionDomain "github.com/allisson/securetransfer/internal/redaction/domain"
)

// TextRedactor redacts PII from free text.
type TextRedactor interface {
	Redact(text string) redactionDomain.Result
	RedactEmails(text string) redactionDomain.Result
	RedactPhones(text string) redactionDomain.Result
}

// RunRedact redacts text with the selected mode ("all", "emails" or "phones").
func RunRedact(redactor TextRedactor, writer io.Writer, text, mode, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var result redactionDomain.Result
	switch mode {
	case "all":
		result = redactor.Redact(text)
	case "emails":
		result = redactor.RedactEmails(text)
	case "phones":
		result = redactor.RedactPhones(text)
	default:
		return fmt.Errorf("invalid mode: %s (valid options: all, emails, phones)", mode)
	}

	if format == "json" {
		return writeJSON(writer, result)
	}

	if _, err := fmt.Fprintln(writer, result.RedactedText); err != nil {
		return err
	}
	if len(result.FoundSpans) > 0 {
		_, err := fmt.Fprintf(writer, "# Found: %s\n", strings.Join(result.FoundSpans, ", "))
		return err
	}
	return nil
}
