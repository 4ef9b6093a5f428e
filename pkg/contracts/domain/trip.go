package domain

import (
	"strconv"
	"strings"
	"time"
)

// PlaceholderIDPrefix marks synthetic trip ids derived from row position.
// Placeholder ids are only stable across re-parses of the same file, so
// consumers must not treat them as unique across exports.
const PlaceholderIDPrefix = "row-"

// TripRecord represents one completed Bicing rental as normalized from a
// Smou activity export. Instances are created by the parser/merger and are
// immutable afterwards.
type TripRecord struct {
	ID              string    `json:"id" csv:"ID"`
	StartDate       time.Time `json:"start_date" csv:"StartDate"`
	EndDate         time.Time `json:"end_date" csv:"EndDate"`
	BikeID          string    `json:"bike_id" csv:"BikeID"`
	DurationMinutes int       `json:"duration_minutes" csv:"DurationMinutes" validate:"gte=0"`
	Cost            float64   `json:"cost" csv:"Cost" validate:"gte=0"`
	Service         string    `json:"service" csv:"Service"`
}

// HasSettlementID reports whether the trip carries a provider-issued
// settlement id usable as an authoritative deduplication key.
func (t TripRecord) HasSettlementID() bool {
	return t.ID != "" && !strings.HasPrefix(t.ID, PlaceholderIDPrefix)
}

// CleanBikeID returns the bike id with every non-digit character removed.
// Exports pad or prefix the numeric plate ("B-3412", " 3412 ").
func (t TripRecord) CleanBikeID() string {
	var b strings.Builder
	for _, r := range t.BikeID {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NumericBikeID returns the numeric core of the bike id, or 0 when the id
// has no digits at all. Zero is never a valid plate, so callers use it as
// the "unknown" marker.
func (t TripRecord) NumericBikeID() int {
	n, err := strconv.Atoi(t.CleanBikeID())
	if err != nil {
		return 0
	}
	return n
}
