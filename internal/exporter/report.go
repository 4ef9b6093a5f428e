package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bicingwrapped/internal/files"
	"bicingwrapped/pkg/contracts/domain"
)

// Report is the JSON document written for one aggregation run. The id is
// fresh per run so consecutive reports over the same inputs can be told
// apart.
type Report struct {
	ID          string                `json:"id"`
	GeneratedAt time.Time             `json:"generated_at"`
	RangeStart  string                `json:"range_start"`
	RangeEnd    string                `json:"range_end"`
	TariffID    string                `json:"tariff_id"`
	TypeFilter  domain.TypeFilter     `json:"type_filter"`
	SourceFiles []string              `json:"source_files"`
	DroppedDups int                   `json:"dropped_duplicates"`
	Stats       *domain.StatsSnapshot `json:"stats"`
}

// NewReport assembles a report envelope around a snapshot.
func NewReport(stats *domain.StatsSnapshot, rangeStart, rangeEnd time.Time, tariffID string, filter domain.TypeFilter, sources []string, droppedDups int) *Report {
	return &Report{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now(),
		RangeStart:  rangeStart.Format("2006-01-02"),
		RangeEnd:    rangeEnd.Format("2006-01-02"),
		TariffID:    tariffID,
		TypeFilter:  filter,
		SourceFiles: sources,
		DroppedDups: droppedDups,
		Stats:       stats,
	}
}

// WriteJSON writes the report to filePath, creating parent directories as
// needed.
func (r *Report) WriteJSON(filePath string) error {
	slog.Info("writing report",
		slog.String("path", filePath),
		slog.String("report_id", r.ID))

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return files.WriteFile(filePath, data)
}
