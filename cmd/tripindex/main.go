package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"bicingwrapped/internal/acquire"
	"bicingwrapped/internal/config"
	apperrors "bicingwrapped/internal/errors"
	"bicingwrapped/internal/exporter"
	"bicingwrapped/internal/files"
	"bicingwrapped/internal/infrastructure"
	"bicingwrapped/internal/ingest"
	"bicingwrapped/pkg/contracts/domain"
)

// tripindex merges every trip export in a directory into one deduplicated
// canonical CSV, ordered by start date. The output file uses the same
// columns as the exports, so it can be re-ingested later.
func main() {
	configFile := flag.String("config", "", "path to YAML config file")
	dir := flag.String("dir", "", "directory containing trip exports (defaults to config paths.exports_dir)")
	out := flag.String("out", "", "output csv file path (defaults to reports/trips.csv)")
	bom := flag.Bool("bom", true, "prefix the output with a UTF-8 BOM for Excel")
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

	if *dir == "" {
		*dir = cfg.Paths.ExportsDir
	}
	if *out == "" {
		*out = filepath.Join(cfg.Paths.ReportsDir, "trips.csv")
	}

	discovery := files.NewDiscovery(".")
	exports, err := discovery.FindExports(*dir)
	if err != nil {
		logger.Error("Failed to discover exports", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(exports) == 0 {
		logger.Error("No export files found", "dir", *dir)
		os.Exit(1)
	}

	parser := ingest.NewParser(logger)
	var batches [][]domain.TripRecord

	for _, export := range exports {
		text, err := acquire.ReadText(export.Path)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnsupportedFormat) {
				logger.Warn("Skipping unsupported export", "file", export.Name)
				continue
			}
			logger.Error("Failed to read export", "file", export.Name, "error", err)
			os.Exit(1)
		}

		trips, err := parser.Parse(text)
		if err != nil {
			if errors.Is(err, apperrors.ErrHeaderNotFound) {
				logger.Warn("Skipping export without a header row", "file", export.Name)
				continue
			}
			logger.Error("Failed to parse export", "file", export.Name, "error", err)
			os.Exit(1)
		}

		logger.Info("Parsed export", "file", export.Name, "trips", len(trips))
		batches = append(batches, trips)
	}

	merged, dropped := ingest.Merge(batches...)
	if len(merged) == 0 {
		logger.Error("Exports parsed but contained no Bicing trips", "error", apperrors.ErrNoTrips)
		os.Exit(1)
	}
	if dropped > 0 {
		logger.Info("Dropped duplicate trips across exports", "count", dropped)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartDate.Before(merged[j].StartDate)
	})

	if err := exporter.WriteTripsCSV(*out, merged, exporter.WriteOptions{BOMPrefix: *bom}); err != nil {
		logger.Error("Failed to write trips CSV", "path", *out, "error", err)
		os.Exit(1)
	}

	logger.Info("Trip index written",
		"path", *out,
		"trips", len(merged),
		"dropped_duplicates", dropped,
		"source_files", len(exports))
}
