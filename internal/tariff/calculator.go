// Package tariff computes per-trip costs from banded pricing rules.
package tariff

import (
	"bicingwrapped/pkg/contracts/domain"
)

// Band boundaries in minutes.
const (
	baseBandMinutes = 30
	midBandMinutes  = 120
)

// Cost computes the cost of a trip under the given tariff.
//
// The base amount for the vehicle type is charged unconditionally and
// covers the first 30 minutes flat. Minutes 30-120 are billed per started
// 30-minute block at the type-specific mid rate. Minutes beyond 120 are
// billed per started hour at MaxPrice, which does not depend on the
// vehicle type. A zero-duration trip costs only the base amount.
func Cost(durationMinutes int, vehicleType domain.VehicleType, rules domain.TariffRules) float64 {
	if durationMinutes < 0 {
		durationMinutes = 0
	}

	total := rules.Base(vehicleType)

	if excess := min(durationMinutes, midBandMinutes) - baseBandMinutes; excess > 0 {
		blocks := (excess + 29) / 30
		total += float64(blocks) * rules.MidRate(vehicleType)
	}

	if durationMinutes > midBandMinutes {
		excess := durationMinutes - midBandMinutes
		blocks := (excess + 59) / 60
		total += float64(blocks) * rules.MaxPrice
	}

	return total
}
