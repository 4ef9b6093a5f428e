package ingest

import (
	"fmt"

	"bicingwrapped/pkg/contracts/domain"
)

// Merge concatenates trip batches from multiple exports and removes
// duplicates. The dedup key is the settlement id when the record carries an
// authoritative one; otherwise it is the (start timestamp, bike id) pair,
// since placeholder ids are only stable within a single file. The first
// occurrence of a key wins. Returns the merged trips and the number of
// duplicates dropped so callers can surface that count.
//
// Precondition for placeholder-id records: composite keys are the only
// reliable dedup path, so two genuinely distinct trips sharing start minute
// and bike would collapse; exports do not produce such rows.
func Merge(batches ...[]domain.TripRecord) ([]domain.TripRecord, int) {
	total := 0
	for _, b := range batches {
		total += len(b)
	}

	merged := make([]domain.TripRecord, 0, total)
	seen := make(map[string]struct{}, total)
	dropped := 0

	for _, batch := range batches {
		for _, trip := range batch {
			key := trip.ID
			if !trip.HasSettlementID() {
				key = fmt.Sprintf("%d-%s", trip.StartDate.UnixMilli(), trip.BikeID)
			}
			if _, ok := seen[key]; ok {
				dropped++
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, trip)
		}
	}

	return merged, dropped
}
