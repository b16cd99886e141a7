// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// Redaction modes.
const (
	ModeAll    = "all"
	ModeEmails = "emails"
	ModePhones = "phones"
)

// RedactRequest carries either free text or a flat map of fields. Mode applies
// to text only; fields always go through every pass.
type RedactRequest struct {
	Text   *string        `json:"text,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
	Mode   string         `json:"mode,omitempty"`
}

// Validate checks if the redact request is valid.
func (r *RedactRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text,
			validation.When(r.Fields == nil, validation.NotNil.Error("text or fields is required")),
			validation.When(r.Fields != nil, validation.Nil.Error("cannot be combined with fields")),
		),
		validation.Field(&r.Mode,
			validation.In(ModeAll, ModeEmails, ModePhones),
			validation.When(r.Fields != nil, validation.In(ModeAll).Error("only all is supported for fields")),
		),
	)
}
