package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bicingwrapped/pkg/contracts/domain"
)

// tripHeaders is the canonical column set, matching what the parser's
// header detection expects.
var tripHeaders = []string{
	"Data d'inici",
	"Data de fi",
	"Servei",
	"Matrícula",
	"Unitats",
	"Import",
	"Número liquidació",
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	BOMPrefix bool // add a UTF-8 BOM so Excel opens the file correctly
}

// WriteTripsCSV writes the merged trips to a canonical CSV file. Rows keep
// the trip order given by the caller.
func WriteTripsCSV(filePath string, trips []domain.TripRecord, options WriteOptions) error {
	slog.Info("writing trips CSV",
		slog.String("path", filePath),
		slog.Int("trips", len(trips)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(tripHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, trip := range trips {
		settlement := trip.ID
		if !trip.HasSettlementID() {
			settlement = ""
		}
		record := []string{
			formatDate(trip.StartDate),
			formatDate(trip.EndDate),
			trip.Service,
			trip.BikeID,
			formatInt(trip.DurationMinutes),
			formatFloat(trip.Cost),
			settlement,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}
