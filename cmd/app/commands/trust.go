package commands

import (
	"fmt"
	"io"
	"time"

	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
	trustService "github.com/allisson/securetransfer/internal/trust/service"
)

// RunEvaluateTrust evaluates the trust policy for the given signals without
// starting a node. A nil battery means unknown; hour defaults to the hour of now
// when negative.
func RunEvaluateTrust(
	writer io.Writer,
	battery *float64,
	network string,
	hour int,
	now time.Time,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	networkClass, err := trustDomain.ParseNetworkClass(network)
	if err != nil {
		return err
	}
	if hour < 0 {
		hour = now.Hour()
	}

	signals := trustDomain.Signals{Battery: battery, Network: networkClass, Hour: hour}
	if err := signals.Validate(); err != nil {
		return err
	}

	verdict := trustService.Evaluate(signals, now)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"safe":        verdict.Safe,
			"reasons":     verdict.Reasons,
			"description": verdict.Description(),
		})
	}

	_, err = fmt.Fprintln(writer, verdict.Description())
	return err
}
