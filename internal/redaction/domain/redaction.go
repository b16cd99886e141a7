// Package domain defines redaction results and sentinel tokens.
package domain

// Sentinel tokens substituted for each category. They contain no lowercase
// letters, so the capitalized-name pass never matches them.
const (
	SentinelEmail = "[REDACTED_EMAIL]"
	SentinelPhone = "[REDACTED_PHONE]"
	SentinelName  = "[REDACTED_NAME]"
)

// Result is the output of redacting one text.
type Result struct {
	RedactedText string   `json:"redacted_text"`
	FoundSpans   []string `json:"found_spans"`
}

// FieldsResult is the output of redacting a structured payload.
type FieldsResult struct {
	Fields     map[string]any `json:"fields"`
	FoundSpans []string       `json:"found_spans"`
}
