package stats

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"bicingwrapped/pkg/contracts/domain"
)

// numericID extracts the numeric core of a raw bike id, 0 when digitless.
func numericID(id string) int {
	var b strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// bikeRange buckets a numeric id into its fleet era.
func bikeRange(idNum int) domain.BikeRange {
	switch {
	case idNum >= 8000:
		return domain.BikeRangeNew
	case idNum < 3000:
		return domain.BikeRangeOld
	default:
		return domain.BikeRangeMid
	}
}

// analyzeBikes turns the per-bike accumulators into the usage list
// (first-encountered order preserved) and detects destiny bikes: bikes
// with at least two uses whose largest gap between consecutive uses
// exceeds 30 days.
func analyzeBikes(bikes map[string]*bikeAccumulator, order []string) ([]domain.BikeUsage, []domain.DestinyBike) {
	usage := make([]domain.BikeUsage, 0, len(order))
	var destiny []domain.DestinyBike

	for _, id := range order {
		acc := bikes[id]

		dates := acc.usageDates
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		trips := acc.trips
		sort.SliceStable(trips, func(i, j int) bool { return trips[i].StartDate.After(trips[j].StartDate) })

		usage = append(usage, domain.BikeUsage{
			ID:         id,
			Count:      acc.count,
			Minutes:    acc.minutes,
			UsageDates: dates,
			Trips:      trips,
			FirstUsed:  dates[0],
			LastUsed:   dates[len(dates)-1],
			Range:      bikeRange(numericID(id)),
		})

		if len(dates) > 1 {
			maxGap := 0.0
			dateA, dateB := dates[0], dates[1]
			for i := 0; i < len(dates)-1; i++ {
				gap := dates[i+1].Sub(dates[i]).Hours() / 24
				if gap > maxGap {
					maxGap = gap
					dateA, dateB = dates[i], dates[i+1]
				}
			}
			if maxGap > destinyGapDays {
				destiny = append(destiny, domain.DestinyBike{
					ID:        id,
					GapDays:   int(math.Round(maxGap)),
					DateA:     dateA,
					DateB:     dateB,
					TotalUses: acc.count,
				})
			}
		}
	}

	return usage, destiny
}

// topBikesByCount ranks bikes by usage count descending, ties broken by
// first-encountered order.
func topBikesByCount(usage []domain.BikeUsage, limit int) []domain.BikeUsage {
	ranked := make([]domain.BikeUsage, len(usage))
	copy(ranked, usage)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// allBikesByID sorts the full fleet ascending by numeric id.
func allBikesByID(usage []domain.BikeUsage) []domain.BikeUsage {
	ranked := make([]domain.BikeUsage, len(usage))
	copy(ranked, usage)
	sort.SliceStable(ranked, func(i, j int) bool { return numericID(ranked[i].ID) < numericID(ranked[j].ID) })
	return ranked
}

// topDestiny ranks destiny bikes by gap size descending.
func topDestiny(destiny []domain.DestinyBike, limit int) []domain.DestinyBike {
	ranked := make([]domain.DestinyBike, len(destiny))
	copy(ranked, destiny)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].GapDays > ranked[j].GapDays })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// topDays ranks calendar days by trip count descending; equal counts order
// by date ascending so the ranking is deterministic.
func topDays(dailyCounts map[string]int, limit int) []domain.DayStat {
	keys := make([]string, 0, len(dailyCounts))
	for k := range dailyCounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]domain.DayStat, 0, len(keys))
	for _, k := range keys {
		d, err := time.ParseInLocation("2006-01-02", k, time.Local)
		if err != nil {
			continue
		}
		days = append(days, domain.DayStat{
			Date:          k,
			FormattedDate: longDateCA(d),
			Count:         dailyCounts[k],
		})
	}

	sort.SliceStable(days, func(i, j int) bool { return days[i].Count > days[j].Count })
	if len(days) > limit {
		days = days[:limit]
	}
	return days
}

// longestTrips ranks retained trips by duration descending.
func longestTrips(retained []domain.TripRecord, limit int) []domain.TripRecord {
	ranked := make([]domain.TripRecord, len(retained))
	copy(ranked, retained)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].DurationMinutes > ranked[j].DurationMinutes })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// longestStreak computes the longest run of consecutive calendar days each
// containing at least one trip: a single scan over the sorted distinct
// active dates, resetting whenever the gap to the previous date is not
// exactly one day.
func longestStreak(dailyCounts map[string]int) int {
	keys := make([]string, 0, len(dailyCounts))
	for k := range dailyCounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	maxStreak := 0
	current := 0
	var prev time.Time

	for _, k := range keys {
		d, err := time.ParseInLocation("2006-01-02", k, time.Local)
		if err != nil {
			continue
		}
		if current == 0 || !d.Equal(prev.AddDate(0, 0, 1)) {
			current = 1
		} else {
			current++
		}
		if current > maxStreak {
			maxStreak = current
		}
		prev = d
	}

	return maxStreak
}
