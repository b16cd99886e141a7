// Package service implements the trust policy.
package service

import (
	"time"

	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
)

// Policy thresholds.
const (
	LowBatteryThreshold = 0.20
	DayStartHour        = 7
	DayEndHour          = 22
)

// Evaluate classifies the environment. It is pure and accumulates every failing
// rule instead of stopping at the first one:
//   - battery known and below LowBatteryThreshold
//   - cellular network
//   - hour < DayStartHour || hour > DayEndHour
func Evaluate(signals trustDomain.Signals, now time.Time) trustDomain.Verdict {
	var reasons []string

	if signals.Battery != nil && *signals.Battery < LowBatteryThreshold {
		reasons = append(reasons, trustDomain.ReasonLowBattery)
	}
	if signals.Network == trustDomain.NetworkCellular {
		reasons = append(reasons, trustDomain.ReasonCellularNetwork)
	}
	if signals.Hour < DayStartHour || signals.Hour > DayEndHour {
		reasons = append(reasons, trustDomain.ReasonNightTime)
	}

	if len(reasons) > 0 {
		return trustDomain.Verdict{Safe: false, Reasons: reasons, EvaluatedAt: now}
	}
	return trustDomain.Verdict{
		Safe:        true,
		Reasons:     []string{trustDomain.ReasonTrusted},
		EvaluatedAt: now,
	}
}
