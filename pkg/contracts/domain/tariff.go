package domain

// TariffRules describes one named Bicing pricing plan: a flat periodic fee
// plus banded per-trip charges. The bands are: a flat base amount for the
// first 30 minutes, a per-30-minute rate between minute 30 and minute 120,
// and a per-hour rate beyond minute 120 that does not depend on the vehicle
// type.
type TariffRules struct {
	ID       string  `json:"id" yaml:"id" validate:"required"`
	Name     string  `json:"name" yaml:"name" validate:"required"`
	Price    float64 `json:"price" yaml:"price" validate:"gte=0"`
	BaseMec  float64 `json:"base_mec" yaml:"base_mec" validate:"gte=0"`
	BaseElec float64 `json:"base_elec" yaml:"base_elec" validate:"gte=0"`
	MidMec   float64 `json:"mid_mec" yaml:"mid_mec" validate:"gte=0"`
	MidElec  float64 `json:"mid_elec" yaml:"mid_elec" validate:"gte=0"`
	MaxPrice float64 `json:"max_price" yaml:"max_price" validate:"gte=0"`
}

// Base returns the first-30-minutes amount for the given vehicle type.
func (t TariffRules) Base(v VehicleType) float64 {
	if v == Electric {
		return t.BaseElec
	}
	return t.BaseMec
}

// MidRate returns the per-30-minute-block rate for the 30-120 minute band.
func (t TariffRules) MidRate(v VehicleType) float64 {
	if v == Electric {
		return t.MidElec
	}
	return t.MidMec
}
