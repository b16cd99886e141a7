// Package domain defines environment signals and the trust verdict computed from them.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/allisson/securetransfer/internal/errors"
)

// NetworkClass is the class of the active network.
type NetworkClass string

const (
	// NetworkWiFi covers wired and Wi-Fi-equivalent networks.
	NetworkWiFi     NetworkClass = "wifi"
	NetworkCellular NetworkClass = "cellular"
	NetworkNone     NetworkClass = "none"
)

// Verdict reasons, in evaluation order.
const (
	ReasonLowBattery      = "low battery"
	ReasonCellularNetwork = "cellular network"
	ReasonNightTime       = "night time"
	ReasonTrusted         = "trusted environment: wi-fi, normal battery, daytime"
)

// ErrInvalidSignal indicates a signal value outside its domain.
var ErrInvalidSignal = errors.Wrap(errors.ErrInvalidInput, "invalid signal")

// Signals are the inputs of a trust evaluation. A nil Battery means unknown.
type Signals struct {
	Battery *float64
	Network NetworkClass
	Hour    int
}

// Validate checks every signal is in range.
func (s Signals) Validate() error {
	if s.Battery != nil && (*s.Battery < 0 || *s.Battery > 1) {
		return fmt.Errorf("%w: battery %v outside [0, 1]", ErrInvalidSignal, *s.Battery)
	}
	if _, err := ParseNetworkClass(string(s.Network)); err != nil {
		return err
	}
	if s.Hour < 0 || s.Hour > 23 {
		return fmt.Errorf("%w: hour %d outside [0, 23]", ErrInvalidSignal, s.Hour)
	}
	return nil
}

// ParseNetworkClass validates a network class name.
func ParseNetworkClass(s string) (NetworkClass, error) {
	switch n := NetworkClass(s); n {
	case NetworkWiFi, NetworkCellular, NetworkNone:
		return n, nil
	default:
		return "", fmt.Errorf("%w: unknown network class %q", ErrInvalidSignal, s)
	}
}

// Verdict is a value snapshot of one evaluation.
type Verdict struct {
	Safe        bool      `json:"safe"`
	Reasons     []string  `json:"reasons"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Description renders the verdict as a single human-readable sentence.
func (v Verdict) Description() string {
	if v.Safe {
		return "Trusted environment: Wi-Fi, normal battery, daytime."
	}

	parts := make([]string, 0, len(v.Reasons))
	for _, r := range v.Reasons {
		if r == "" {
			continue
		}
		parts = append(parts, strings.ToUpper(r[:1])+r[1:]+".")
	}
	return "Untrusted environment: " + strings.Join(parts, " ")
}
