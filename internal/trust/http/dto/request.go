// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	trustDomain "github.com/allisson/securetransfer/internal/trust/domain"
)

// UpdateSignalsRequest is a partial signal update. Omitted fields keep their
// current value; BatteryUnknown clears the battery level.
type UpdateSignalsRequest struct {
	Battery        *float64 `json:"battery,omitempty"`
	BatteryUnknown bool     `json:"battery_unknown,omitempty"`
	Network        *string  `json:"network,omitempty"`
}

// Validate checks if the update request is valid.
func (r *UpdateSignalsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Battery,
			validation.Min(0.0),
			validation.Max(1.0),
			validation.When(r.BatteryUnknown, validation.Nil.Error("must be omitted when battery_unknown is set")),
		),
		validation.Field(&r.Network,
			validation.NilOrNotEmpty,
			validation.In(
				string(trustDomain.NetworkWiFi),
				string(trustDomain.NetworkCellular),
				string(trustDomain.NetworkNone),
			),
		),
	)
}
