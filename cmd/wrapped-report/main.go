package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"bicingwrapped/internal/acquire"
	"bicingwrapped/internal/classify"
	"bicingwrapped/internal/config"
	apperrors "bicingwrapped/internal/errors"
	"bicingwrapped/internal/exporter"
	"bicingwrapped/internal/files"
	"bicingwrapped/internal/infrastructure"
	"bicingwrapped/internal/ingest"
	"bicingwrapped/internal/stats"
	"bicingwrapped/pkg/contracts/domain"
)

const flagDateLayout = "2006-01-02"

func main() {
	configFile := flag.String("config", "", "path to YAML config file")
	exportsDir := flag.String("exports", "", "directory with trip export files (defaults to config paths.exports_dir)")
	fromFlag := flag.String("from", "", "range start as YYYY-MM-DD (defaults to the earliest trip)")
	toFlag := flag.String("to", "", "range end as YYYY-MM-DD (defaults to the latest trip)")
	tariffFlag := flag.String("tariff", "", "tariff id to price trips with (defaults to config report.default_tariff)")
	typeFlag := flag.String("type", "", "vehicle type filter: mecanica, electrica or empty for all")
	outFlag := flag.String("out", "", "output path for the JSON report (defaults to reports/wrapped_<date>.json)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	filter, err := domain.ParseTypeFilter(*typeFlag)
	if err != nil {
		logger.Error("Invalid type filter", "value", *typeFlag, "error", err)
		os.Exit(1)
	}

	tariffID := *tariffFlag
	if tariffID == "" {
		tariffID = cfg.Report.DefaultTariff
	}
	rules, err := cfg.TariffByID(tariffID)
	if err != nil {
		logger.Error("Unknown tariff", "tariff", tariffID, "error", err)
		os.Exit(1)
	}

	dir := *exportsDir
	if dir == "" {
		dir = cfg.Paths.ExportsDir
	}

	discovery := files.NewDiscovery(".")
	exports, err := discovery.FindExports(dir)
	if err != nil {
		logger.Error("Failed to discover exports", "dir", dir, "error", err)
		os.Exit(1)
	}
	if len(exports) == 0 {
		logger.Error("No export files found",
			"dir", dir,
			"hint", "expected .xlsx, .csv, .tsv or .txt exports")
		os.Exit(1)
	}
	logger.Info("Discovered export files", "count", len(exports), "dir", dir)

	ctx := context.Background()
	batches, sources := parseExports(ctx, logger, exports)
	if len(batches) == 0 {
		logger.Error("No export file could be parsed",
			"hint", "check that the files are Smou trip exports with a header row")
		os.Exit(1)
	}

	trips, dropped := ingest.Merge(batches...)
	if dropped > 0 {
		logger.Info("Dropped duplicate trips across exports", "count", dropped)
	}
	if len(trips) == 0 {
		logger.Error("Exports parsed but contained no Bicing trips", "error", apperrors.ErrNoTrips)
		os.Exit(1)
	}

	refs, err := classify.LoadReferenceSets(cfg.Paths.ReferenceIDs)
	if err != nil {
		logger.Error("Failed to load reference id sets", "path", cfg.Paths.ReferenceIDs, "error", err)
		os.Exit(1)
	}

	rangeStart, rangeEnd, err := resolveRange(*fromFlag, *toFlag, trips)
	if err != nil {
		logger.Error("Invalid date range", "error", err)
		os.Exit(1)
	}

	engine := stats.NewEngine(refs, logger)
	snapshot := engine.Aggregate(ctx, trips, rangeStart, rangeEnd, rules, filter)

	outPath := *outFlag
	if outPath == "" {
		name := fmt.Sprintf("wrapped_%s.json", time.Now().Format("20060102"))
		outPath = filepath.Join(cfg.Paths.ReportsDir, name)
	}

	report := exporter.NewReport(snapshot, rangeStart, rangeEnd, rules.ID, filter, sources, dropped)
	if err := report.WriteJSON(outPath); err != nil {
		logger.Error("Failed to write report", "path", outPath, "error", err)
		os.Exit(1)
	}

	logger.Info("Report generated",
		"path", outPath,
		"trips", snapshot.TotalTrips,
		"unique_bikes", snapshot.UniqueBikes,
		"range_start", report.RangeStart,
		"range_end", report.RangeEnd)
}

// parseExports reads and parses every export concurrently. Files without a
// recognizable header and unsupported formats are skipped with a warning;
// any other failure aborts the run. Batch order follows the discovery
// order, so merging stays deterministic.
func parseExports(ctx context.Context, logger *slog.Logger, exports []files.FileInfo) ([][]domain.TripRecord, []string) {
	parser := ingest.NewParser(logger)
	batches := make([][]domain.TripRecord, len(exports))

	var mu sync.Mutex
	var skipped []string

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, export := range exports {
		g.Go(func() error {
			text, err := acquire.ReadText(export.Path)
			if err != nil {
				if errors.Is(err, apperrors.ErrUnsupportedFormat) {
					logger.Warn("Skipping unsupported export", "file", export.Name, "error", err)
					mu.Lock()
					skipped = append(skipped, export.Name)
					mu.Unlock()
					return nil
				}
				return fmt.Errorf("read %s: %w", export.Name, err)
			}

			trips, err := parser.Parse(text)
			if err != nil {
				if errors.Is(err, apperrors.ErrHeaderNotFound) {
					logger.Warn("Skipping export without a header row", "file", export.Name)
					mu.Lock()
					skipped = append(skipped, export.Name)
					mu.Unlock()
					return nil
				}
				return fmt.Errorf("parse %s: %w", export.Name, err)
			}

			logger.Info("Parsed export", "file", export.Name, "trips", len(trips))
			batches[i] = trips
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Failed to process exports", "error", err)
		os.Exit(1)
	}

	var kept [][]domain.TripRecord
	var sources []string
	for i, batch := range batches {
		if batch == nil {
			continue
		}
		kept = append(kept, batch)
		sources = append(sources, exports[i].Name)
	}
	if len(skipped) > 0 {
		logger.Warn("Some exports were skipped", "count", len(skipped))
	}
	return kept, sources
}

// resolveRange parses the from/to flags, falling back to the span of the
// loaded trips for whichever bound is missing.
func resolveRange(fromFlag, toFlag string, trips []domain.TripRecord) (time.Time, time.Time, error) {
	minDate := trips[0].StartDate
	maxDate := trips[0].StartDate
	for _, t := range trips[1:] {
		if t.StartDate.Before(minDate) {
			minDate = t.StartDate
		}
		if t.StartDate.After(maxDate) {
			maxDate = t.StartDate
		}
	}

	rangeStart := minDate
	if fromFlag != "" {
		parsed, err := time.ParseInLocation(flagDateLayout, fromFlag, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -from date %q: %w", fromFlag, err)
		}
		rangeStart = parsed
	}

	rangeEnd := maxDate
	if toFlag != "" {
		parsed, err := time.ParseInLocation(flagDateLayout, toFlag, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -to date %q: %w", toFlag, err)
		}
		rangeEnd = parsed
	}

	if rangeEnd.Before(rangeStart) {
		return time.Time{}, time.Time{}, fmt.Errorf("range end %s precedes range start %s",
			rangeEnd.Format(flagDateLayout), rangeStart.Format(flagDateLayout))
	}
	return rangeStart, rangeEnd, nil
}
