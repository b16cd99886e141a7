package usecase

import (
	"context"
	"time"

	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
)

// TrustMonitor holds the latest environment signals and the verdict computed from them.
type TrustMonitor interface {
	UpdateBattery(level *float64) (trustDomain.Verdict, error)
	UpdateNetwork(network trustDomain.NetworkClass) (trustDomain.Verdict, error)
	UpdateClock(now time.Time) trustDomain.Verdict
	Update(signals trustDomain.Signals) (trustDomain.Verdict, error)
	Current() trustDomain.Verdict
	Signals() trustDomain.Signals
	Subscribe(buffer int) (<-chan trustDomain.Verdict, func())
	RunClock(ctx context.Context) error
}
