package domain

import "time"

// BikeRange is a coarse fleet-era bucket derived from the numeric bike id.
type BikeRange string

const (
	BikeRangeOld BikeRange = "old" // ids below 3000
	BikeRangeMid BikeRange = "mid"
	BikeRangeNew BikeRange = "new" // ids of 8000 and above
)

// BikeUsage aggregates every retained trip of a single bike.
// UsageDates is sorted ascending; Trips is sorted by start date descending
// and carries the tariff-computed cost instead of the reported one.
type BikeUsage struct {
	ID         string       `json:"id"`
	Count      int          `json:"count"`
	Minutes    int          `json:"minutes"`
	UsageDates []time.Time  `json:"usage_dates"`
	Trips      []TripRecord `json:"trips"`
	FirstUsed  time.Time    `json:"first_used"`
	LastUsed   time.Time    `json:"last_used"`
	Range      BikeRange    `json:"range"`
}

// DayStat is one calendar day ranked by trip count.
type DayStat struct {
	Date          string `json:"date"`
	FormattedDate string `json:"formatted_date"`
	Count         int    `json:"count"`
}

// DestinyBike is a bike the rider came back to after an unusually long gap.
type DestinyBike struct {
	ID        string    `json:"id"`
	GapDays   int       `json:"gap_days"`
	DateA     time.Time `json:"date_a"`
	DateB     time.Time `json:"date_b"`
	TotalUses int       `json:"total_uses"`
}

// HourCount is the trip count for one hour-of-day bucket ("08h").
type HourCount struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// WeekdayCount is the trip count for one weekday, Monday first.
type WeekdayCount struct {
	Day     string `json:"day"`
	FullDay string `json:"full_day"`
	Count   int    `json:"count"`
}

// DateCount is the trip count for one calendar date. The daily series is
// zero-filled: every day of the requested range appears even with count 0.
type DateCount struct {
	Date      string `json:"date"`
	ISODate   string `json:"iso_date"`
	Timestamp int64  `json:"timestamp"`
	Count     int    `json:"count"`
}

// WeekCount is the trip count for one ISO-like week ("2024-W07").
type WeekCount struct {
	Week  string `json:"week"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthCount is the trip count for one calendar month ("2024-02").
type MonthCount struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthNameCount folds every year together per month name ("Gen".."Des").
type MonthNameCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// YearCount is the trip count for one calendar year.
type YearCount struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// MonthlyAvgID is the average numeric bike id observed in one month.
// Months without a single numeric id are omitted from the series.
type MonthlyAvgID struct {
	Month string `json:"month"`
	Label string `json:"label"`
	AvgID int    `json:"avg_id"`
	Count int    `json:"count"`
}

// GenerationCount counts trips per vehicle-fleet generation.
type GenerationCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// IDHistogramBin is one fixed-width (500) bucket of the bike-id histogram.
type IDHistogramBin struct {
	Range     string `json:"range"`
	FullRange string `json:"full_range"`
	BinStart  int    `json:"bin_start"`
	Count     int    `json:"count"`
}

// Achievement is one threshold-based flag with a human-readable progress
// indicator toward its threshold.
type Achievement struct {
	ID       string `json:"id"`
	Icon     string `json:"icon"`
	Title    string `json:"title"`
	Desc     string `json:"desc"`
	Unlocked bool   `json:"unlocked"`
	Progress string `json:"progress"`
}

// StatsSnapshot is the full aggregation output consumed by the presentation
// layer. A new snapshot is derived from scratch on every input change; trip
// slices inside it are shared by reference across ranked lists and must be
// treated as read-only.
type StatsSnapshot struct {
	TotalTrips                 int     `json:"total_trips"`
	TotalMinutes               int     `json:"total_minutes"`
	TotalCost                  float64 `json:"total_cost"`
	UniqueBikes                int     `json:"unique_bikes"`
	RepeatedBikes              int     `json:"repeated_bikes"`
	AverageTime                int     `json:"average_time"`
	EstimatedDistanceKm        float64 `json:"estimated_distance_km"`
	CO2SavedKg                 float64 `json:"co2_saved_kg"`
	ElectricCount              int     `json:"electric_count"`
	MechanicalCount            int     `json:"mechanical_count"`
	AvgCostPerTripIncludingSub float64 `json:"avg_cost_per_trip_including_sub"`

	LongestStreak int            `json:"longest_streak"`
	TopDays       []DayStat      `json:"top_days"`
	LongestTrips  []TripRecord   `json:"longest_trips"`
	TopBikes      []BikeUsage    `json:"top_bikes"`
	AllBikes      []BikeUsage    `json:"all_bikes"`
	DestinyBikes  []DestinyBike  `json:"destiny_bikes"`
	AvgIDByMonth  []MonthlyAvgID `json:"avg_id_by_month"`
	MaxBikeID     int            `json:"max_bike_id"`
	MinBikeID     int            `json:"min_bike_id"`

	BusiestWeekday string `json:"busiest_weekday"`
	BusiestHour    string `json:"busiest_hour"`

	TripsByHour      []HourCount      `json:"trips_by_hour"`
	TripsByDay       []WeekdayCount   `json:"trips_by_day"`
	TripsByMonthName []MonthNameCount `json:"trips_by_month_name"`
	TripsByDate      []DateCount      `json:"trips_by_date"`
	TripsByWeek      []WeekCount      `json:"trips_by_week"`
	TripsByMonth     []MonthCount     `json:"trips_by_month"`
	TripsByYear      []YearCount      `json:"trips_by_year"`

	// Heatmap rows are weekdays with Monday first; columns are hours 0-23.
	Heatmap [7][24]int `json:"heatmap"`

	IDHistogram     []IDHistogramBin  `json:"id_histogram"`
	GenerationStats []GenerationCount `json:"generation_stats"`
	Achievements    []Achievement     `json:"achievements"`
}
