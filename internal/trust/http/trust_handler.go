// Package http provides HTTP handlers for reading the trust verdict and feeding
// environment signals to the trust monitor.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/securetransfer/internal/httputil"
	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
	"github.com/allisson/securetransfer/internal/trust/http/dto"
	trustUseCase "github.com/allisson/securetransfer/internal/trust/usecase"
	customValidation "github.com/allisson/securetransfer/internal/validation"
)

// TrustHandler handles HTTP requests for the trust monitor.
type TrustHandler struct {
	monitor trustUseCase.TrustMonitor
	logger  *slog.Logger
}

// NewTrustHandler creates a new trust handler.
func NewTrustHandler(monitor trustUseCase.TrustMonitor, logger *slog.Logger) *TrustHandler {
	return &TrustHandler{monitor: monitor, logger: logger}
}

// GetHandler returns the current verdict.
// GET /v1/trust
func (h *TrustHandler) GetHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapVerdictToResponse(h.monitor.Current(), h.monitor.Signals()))
}

// UpdateSignalsHandler applies a partial signal update and returns the new verdict.
// PUT /v1/trust/signals
func (h *TrustHandler) UpdateSignalsHandler(c *gin.Context) {
	var req dto.UpdateSignalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	verdict := h.monitor.Current()
	var err error
	switch {
	case req.BatteryUnknown:
		verdict, err = h.monitor.UpdateBattery(nil)
	case req.Battery != nil:
		verdict, err = h.monitor.UpdateBattery(req.Battery)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if req.Network != nil {
		verdict, err = h.monitor.UpdateNetwork(trustDomain.NetworkClass(*req.Network))
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
	}

	c.JSON(http.StatusOK, dto.MapVerdictToResponse(verdict, h.monitor.Signals()))
}
