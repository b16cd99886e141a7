package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/securetransfer/internal/httputil"
	transferDomain "github.com/allisson/securetransfer/internal/transfer/domain"
	"github.com/allisson/securetransfer/internal/transfer/http/dto"
	customValidation "github.com/allisson/securetransfer/internal/validation"
)

// PortableHandler converts bytes to and from the portable base64 encoding.
type PortableHandler struct {
	logger *slog.Logger
}

// NewPortableHandler creates a new portable handler.
func NewPortableHandler(logger *slog.Logger) *PortableHandler {
	return &PortableHandler{logger: logger}
}

// ExportHandler encodes bytes as portable text.
// POST /v1/portable/export
func (h *PortableHandler) ExportHandler(c *gin.Context) {
	var req dto.PortableExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PortableExportResponse{
		Portable: transferDomain.ExportPortable(req.Data),
	})
}

// ImportHandler decodes portable text back into the original bytes.
// POST /v1/portable/import
// Returns 422 when the input is not valid base64.
func (h *PortableHandler) ImportHandler(c *gin.Context) {
	var req dto.PortableImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	data, err := transferDomain.ImportPortable(req.Portable)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PortableImportResponse{Data: data})
}
