package domain

import "fmt"

// VehicleType classifies a bike as mechanical or electric.
type VehicleType string

const (
	Mechanical VehicleType = "mecanica"
	Electric   VehicleType = "electrica"
)

// String implements fmt.Stringer.
func (v VehicleType) String() string {
	return string(v)
}

// TypeFilter restricts an aggregation run to one vehicle type.
type TypeFilter string

const (
	AllTypes       TypeFilter = "all"
	OnlyMechanical TypeFilter = "mecanica"
	OnlyElectric   TypeFilter = "electrica"
)

// Matches reports whether a trip of the given vehicle type passes the filter.
func (f TypeFilter) Matches(v VehicleType) bool {
	switch f {
	case OnlyMechanical:
		return v == Mechanical
	case OnlyElectric:
		return v == Electric
	default:
		return true
	}
}

// ParseTypeFilter converts a user-supplied filter string to a TypeFilter.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch TypeFilter(s) {
	case AllTypes, OnlyMechanical, OnlyElectric:
		return TypeFilter(s), nil
	case "":
		return AllTypes, nil
	default:
		return "", fmt.Errorf("unknown type filter %q (want all, mecanica or electrica)", s)
	}
}
