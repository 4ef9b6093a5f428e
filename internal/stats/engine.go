package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"bicingwrapped/internal/classify"
	"bicingwrapped/internal/tariff"
	"bicingwrapped/pkg/contracts/domain"
)

const (
	histogramBinSize = 500
	topBikesLimit    = 50
	topDaysLimit     = 50
	topTripsLimit    = 50
	destinyLimit     = 20
	destinyGapDays   = 30.0
	minutesPerKm     = 5.0
	co2KgPerKm       = 0.12
)

// minBikeIDSentinel marks "no numeric bike id seen yet".
const minBikeIDSentinel = 999999

// Engine derives statistics snapshots. It carries only the reference id
// sets and a logger, no mutable state, so a single instance can serve
// every recomputation.
type Engine struct {
	refs   classify.ReferenceSets
	logger *slog.Logger
}

// NewEngine creates a stats engine. A nil logger falls back to
// slog.Default().
func NewEngine(refs classify.ReferenceSets, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{refs: refs, logger: logger}
}

// bikeAccumulator collects per-bike state during the main pass.
type bikeAccumulator struct {
	count      int
	minutes    int
	usageDates []time.Time
	trips      []domain.TripRecord
}

// Aggregate computes the full snapshot for the given trips, inclusive date
// range, tariff and type filter. Identical inputs always produce an
// identical snapshot.
//
// Range filtering uses the trip start timestamp only, from rangeStart at
// 00:00:00 through rangeEnd at 23:59:59.999. Trips excluded by the type
// filter contribute to nothing, totals included.
func (e *Engine) Aggregate(
	ctx context.Context,
	trips []domain.TripRecord,
	rangeStart, rangeEnd time.Time,
	rules domain.TariffRules,
	filter domain.TypeFilter,
) *domain.StatsSnapshot {
	begin := time.Now()

	start := time.Date(rangeStart.Year(), rangeStart.Month(), rangeStart.Day(), 0, 0, 0, 0, time.Local)
	end := time.Date(rangeEnd.Year(), rangeEnd.Month(), rangeEnd.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)

	e.logger.InfoContext(ctx, "starting aggregation",
		slog.Int("trips", len(trips)),
		slog.String("range_start", dateKey(start)),
		slog.String("range_end", dateKey(end)),
		slog.String("tariff", rules.ID),
		slog.String("type_filter", string(filter)))

	var (
		totalTrips   int
		totalMinutes int
		totalCost    float64

		electricCount   int
		mechanicalCount int

		genMec     int
		genElecOld int
		genElecNew int

		maxBikeID = 0
		minBikeID = minBikeIDSentinel

		hourCounts    [24]int
		dayNameCounts [7]int
		monthCounts   [12]int
		heatmap       [7][24]int

		dailyCounts   = map[string]int{}
		weeklyCounts  = map[string]int{}
		monthlyCounts = map[string]int{}
		yearlyCounts  = map[int]int{}
		uniqueYears   = map[int]struct{}{}
		histogram     = map[int]int{}

		monthlyIDSums   = map[string]*struct{ sum, count int }{}
		bikes           = map[string]*bikeAccumulator{}
		bikeOrder       []string
		retained        []domain.TripRecord
	)

	for _, t := range trips {
		if t.StartDate.Before(start) || t.StartDate.After(end) {
			continue
		}

		vehicleType := classify.Classify(t, e.refs)
		if !filter.Matches(vehicleType) {
			continue
		}

		computedCost := tariff.Cost(t.DurationMinutes, vehicleType, rules)

		totalTrips++
		retained = append(retained, t)
		totalMinutes += t.DurationMinutes
		totalCost += computedCost

		if vehicleType == domain.Electric {
			electricCount++
		} else {
			mechanicalCount++
		}

		year := t.StartDate.Year()
		uniqueYears[year] = struct{}{}
		yearlyCounts[year]++
		monthCounts[t.StartDate.Month()-1]++

		idNum := t.NumericBikeID()
		if idNum > 0 {
			if idNum > maxBikeID {
				maxBikeID = idNum
			}
			if idNum < minBikeID {
				minBikeID = idNum
			}

			histogram[(idNum/histogramBinSize)*histogramBinSize]++

			if vehicleType == domain.Electric {
				if idNum < 8000 {
					genElecOld++
				} else {
					genElecNew++
				}
			} else {
				genMec++
			}
		}

		acc, ok := bikes[t.BikeID]
		if !ok {
			acc = &bikeAccumulator{}
			bikes[t.BikeID] = acc
			bikeOrder = append(bikeOrder, t.BikeID)
		}
		acc.count++
		acc.minutes += t.DurationMinutes
		acc.usageDates = append(acc.usageDates, t.StartDate)
		bikeTrip := t
		bikeTrip.Cost = computedCost
		acc.trips = append(acc.trips, bikeTrip)

		hour := t.StartDate.Hour()
		weekday := int(t.StartDate.Weekday())

		hourCounts[hour]++
		dayNameCounts[weekday]++
		heatmap[(weekday+6)%7][hour]++

		dailyCounts[dateKey(t.StartDate)]++
		monthlyCounts[monthKey(t.StartDate)]++
		weeklyCounts[weekKey(t.StartDate)]++

		if idNum > 0 {
			key := monthKey(t.StartDate)
			sums, ok := monthlyIDSums[key]
			if !ok {
				sums = &struct{ sum, count int }{}
				monthlyIDSums[key] = sums
			}
			sums.sum += idNum
			sums.count++
		}
	}

	if minBikeID == minBikeIDSentinel {
		minBikeID = 0
	}

	snapshot := &domain.StatsSnapshot{
		TotalTrips:      totalTrips,
		TotalMinutes:    totalMinutes,
		TotalCost:       totalCost,
		ElectricCount:   electricCount,
		MechanicalCount: mechanicalCount,
		MaxBikeID:       maxBikeID,
		MinBikeID:       minBikeID,
		Heatmap:         heatmap,
	}

	// Zero-filled daily series: a tripless day must appear with count 0,
	// not as a gap in the chart.
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := dateKey(day)
		snapshot.TripsByDate = append(snapshot.TripsByDate, domain.DateCount{
			Date:      shortDate(day),
			ISODate:   key,
			Timestamp: day.UnixMilli(),
			Count:     dailyCounts[key],
		})
	}

	// Monthly series, equally zero-filled; the average-id series instead
	// skips months without a single numeric observation.
	endMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.Local)
	for month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.Local); !month.After(endMonth); month = month.AddDate(0, 1, 0) {
		key := monthKey(month)
		label := monthLabel(month)
		snapshot.TripsByMonth = append(snapshot.TripsByMonth, domain.MonthCount{
			Month: key,
			Label: label,
			Count: monthlyCounts[key],
		})
		if sums, ok := monthlyIDSums[key]; ok && sums.count > 0 {
			snapshot.AvgIDByMonth = append(snapshot.AvgIDByMonth, domain.MonthlyAvgID{
				Month: key,
				Label: label,
				AvgID: int(math.Round(float64(sums.sum) / float64(sums.count))),
				Count: sums.count,
			})
		}
	}

	weekKeys := make([]string, 0, len(weeklyCounts))
	for k := range weeklyCounts {
		weekKeys = append(weekKeys, k)
	}
	sort.Strings(weekKeys)
	for _, k := range weekKeys {
		snapshot.TripsByWeek = append(snapshot.TripsByWeek, domain.WeekCount{
			Week: k, Label: k, Count: weeklyCounts[k],
		})
	}

	years := make([]int, 0, len(yearlyCounts))
	for y := range yearlyCounts {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		snapshot.TripsByYear = append(snapshot.TripsByYear, domain.YearCount{
			Year: fmt.Sprintf("%d", y), Count: yearlyCounts[y],
		})
	}

	for i, name := range monthShortNames {
		snapshot.TripsByMonthName = append(snapshot.TripsByMonthName, domain.MonthNameCount{
			Month: name, Count: monthCounts[i],
		})
	}

	for hour := 0; hour < 24; hour++ {
		snapshot.TripsByHour = append(snapshot.TripsByHour, domain.HourCount{
			Hour: hourLabel(hour), Count: hourCounts[hour],
		})
	}

	for _, fullDay := range weekdayOrderMondayFirst {
		idx := sundayFirstIndex(fullDay)
		snapshot.TripsByDay = append(snapshot.TripsByDay, domain.WeekdayCount{
			Day:     fullDay[:3],
			FullDay: fullDay,
			Count:   dayNameCounts[idx],
		})
	}

	snapshot.BusiestHour = busiestHour(hourCounts)
	snapshot.BusiestWeekday = busiestWeekday(dayNameCounts)

	bikeList, destiny := analyzeBikes(bikes, bikeOrder)
	snapshot.UniqueBikes = len(bikeList)
	for _, b := range bikeList {
		if b.Count > 1 {
			snapshot.RepeatedBikes++
		}
	}
	snapshot.TopBikes = topBikesByCount(bikeList, topBikesLimit)
	snapshot.AllBikes = allBikesByID(bikeList)
	snapshot.DestinyBikes = topDestiny(destiny, destinyLimit)

	snapshot.TopDays = topDays(dailyCounts, topDaysLimit)
	snapshot.LongestTrips = longestTrips(retained, topTripsLimit)
	snapshot.LongestStreak = longestStreak(dailyCounts)

	binStarts := make([]int, 0, len(histogram))
	for bin := range histogram {
		binStarts = append(binStarts, bin)
	}
	sort.Ints(binStarts)
	for _, bin := range binStarts {
		snapshot.IDHistogram = append(snapshot.IDHistogram, domain.IDHistogramBin{
			Range:     fmt.Sprintf("%.1fk", float64(bin)/1000),
			FullRange: fmt.Sprintf("%d - %d", bin, bin+histogramBinSize-1),
			BinStart:  bin,
			Count:     histogram[bin],
		})
	}

	snapshot.GenerationStats = []domain.GenerationCount{
		{Name: "Mecàniques (Originals)", Count: genMec, Color: "#991b1b"},
		{Name: "Elèctriques (Clàssiques)", Count: genElecOld, Color: "#ca8a04"},
		{Name: "Elèctriques (Nova Flota)", Count: genElecNew, Color: "#16a34a"},
	}

	if totalTrips > 0 {
		snapshot.AverageTime = int(math.Round(float64(totalMinutes) / float64(totalTrips)))
	}
	snapshot.EstimatedDistanceKm = float64(totalMinutes) / minutesPerKm
	snapshot.CO2SavedKg = snapshot.EstimatedDistanceKm * co2KgPerKm

	yearsPaid := len(uniqueYears)
	if yearsPaid == 0 {
		yearsPaid = 1
	}
	if totalTrips > 0 {
		snapshot.AvgCostPerTripIncludingSub = (totalCost + rules.Price*float64(yearsPaid)) / float64(totalTrips)
	}

	snapshot.Achievements = buildAchievements(snapshot, genElecNew, hourCounts)

	e.logger.InfoContext(ctx, "aggregation completed",
		slog.Int("retained_trips", totalTrips),
		slog.Int("unique_bikes", snapshot.UniqueBikes),
		slog.Duration("duration", time.Since(begin)))

	return snapshot
}

// hourLabel formats an hour bucket as "08h".
func hourLabel(hour int) string {
	return fmt.Sprintf("%02dh", hour)
}

// sundayFirstIndex maps a Catalan weekday name to its Sunday-first index.
func sundayFirstIndex(fullDay string) int {
	for i, name := range weekdayNamesSundayFirst {
		if name == fullDay {
			return i
		}
	}
	return 0
}

// busiestHour returns the hour label with the strictly highest count, or
// "-" when every bucket is empty. Earlier hours win ties.
func busiestHour(hourCounts [24]int) string {
	best := "-"
	bestCount := 0
	for hour, count := range hourCounts {
		if count > bestCount {
			bestCount = count
			best = hourLabel(hour)
		}
	}
	return best
}

// busiestWeekday returns the weekday name with the strictly highest count,
// or "-" when every bucket is empty.
func busiestWeekday(dayNameCounts [7]int) string {
	best := "-"
	bestCount := 0
	for idx, count := range dayNameCounts {
		if count > bestCount {
			bestCount = count
			best = weekdayNamesSundayFirst[idx]
		}
	}
	return best
}
