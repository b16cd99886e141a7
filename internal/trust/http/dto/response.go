package dto

import (
	"time"

	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
)

// SignalsResponse is the current set of environment signals.
type SignalsResponse struct {
	Battery *float64 `json:"battery"`
	Network string   `json:"network"`
	Hour    int      `json:"hour"`
}

// TrustResponse is the current verdict and the signals it was computed from.
type TrustResponse struct {
	Safe        bool            `json:"safe"`
	Reasons     []string        `json:"reasons"`
	Description string          `json:"description"`
	EvaluatedAt time.Time       `json:"evaluated_at"`
	Signals     SignalsResponse `json:"signals"`
}

// MapVerdictToResponse converts a verdict and its signals to an API response.
func MapVerdictToResponse(verdict trustDomain.Verdict, signals trustDomain.Signals) TrustResponse {
	reasons := verdict.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return TrustResponse{
		Safe:        verdict.Safe,
		Reasons:     reasons,
		Description: verdict.Description(),
		EvaluatedAt: verdict.EvaluatedAt,
		Signals: SignalsResponse{
			Battery: signals.Battery,
			Network: string(signals.Network),
			Hour:    signals.Hour,
		},
	}
}
