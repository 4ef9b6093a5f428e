// Package classify decides the vehicle type of a trip under uncertainty.
// Confirmed plate lists always win; heuristics only fill the gaps.
package classify

import (
	"bicingwrapped/pkg/contracts/domain"
)

// ReferenceSets holds the externally maintained lists of confirmed bike
// plates, keyed by the cleaned (digits-only) id.
type ReferenceSets struct {
	Mechanical map[string]struct{}
	Electric   map[string]struct{}
}

// NewReferenceSets builds lookup sets from plain id slices.
func NewReferenceSets(mechanical, electric []string) ReferenceSets {
	refs := ReferenceSets{
		Mechanical: make(map[string]struct{}, len(mechanical)),
		Electric:   make(map[string]struct{}, len(electric)),
	}
	for _, id := range mechanical {
		refs.Mechanical[id] = struct{}{}
	}
	for _, id := range electric {
		refs.Electric[id] = struct{}{}
	}
	return refs
}

// Classify returns the vehicle type of a trip. It is total and
// deterministic: the same trip and reference sets always yield the same
// answer and there is no failure mode.
//
// The tie-break order is load-bearing:
//  1. reference-set membership of the cleaned id, electric checked first;
//  2. a paid trip of at most 30 minutes is assumed electric, since the
//     base mechanical tier is usually free;
//  3. ids in [3000,4000) or at 8000 and above belong to the electric
//     fleets;
//  4. everything else is mechanical.
func Classify(trip domain.TripRecord, refs ReferenceSets) domain.VehicleType {
	clean := trip.CleanBikeID()
	if clean != "" {
		if _, ok := refs.Electric[clean]; ok {
			return domain.Electric
		}
		if _, ok := refs.Mechanical[clean]; ok {
			return domain.Mechanical
		}
	}

	if trip.Cost > 0 && trip.DurationMinutes <= 30 {
		return domain.Electric
	}

	idNum := trip.NumericBikeID()
	if (idNum >= 3000 && idNum < 4000) || idNum >= 8000 {
		return domain.Electric
	}

	return domain.Mechanical
}
