// Package http provides the HTTP handler for PII redaction.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/securetransfer/internal/httputil"
	redactionDomain "github.com/allisson/securetransfer/internal/redaction/domain"
	"github.com/allisson/securetransfer/internal/redaction/http/dto"
	customValidation "github.com/allisson/securetransfer/internal/validation"
)

// Redactor replaces PII in text and structured payloads.
type Redactor interface {
	Redact(text string) redactionDomain.Result
	RedactEmails(text string) redactionDomain.Result
	RedactPhones(text string) redactionDomain.Result
	RedactFields(fields map[string]any) redactionDomain.FieldsResult
}

// RedactionHandler handles HTTP requests for PII redaction.
type RedactionHandler struct {
	redactor Redactor
	logger   *slog.Logger
}

// NewRedactionHandler creates a new redaction handler.
func NewRedactionHandler(redactor Redactor, logger *slog.Logger) *RedactionHandler {
	return &RedactionHandler{redactor: redactor, logger: logger}
}

// RedactHandler redacts text or fields. Redaction itself never fails.
// POST /v1/redact
func (h *RedactionHandler) RedactHandler(c *gin.Context) {
	var req dto.RedactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if req.Fields != nil {
		c.JSON(http.StatusOK, h.redactor.RedactFields(req.Fields))
		return
	}

	var result redactionDomain.Result
	switch req.Mode {
	case dto.ModeEmails:
		result = h.redactor.RedactEmails(*req.Text)
	case dto.ModePhones:
		result = h.redactor.RedactPhones(*req.Text)
	default:
		result = h.redactor.Redact(*req.Text)
	}
	c.JSON(http.StatusOK, result)
}
