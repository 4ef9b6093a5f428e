package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bicingwrapped/pkg/contracts/domain"
)

func TestReportWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "wrapped.json")

	stats := &domain.StatsSnapshot{TotalTrips: 3, BusiestHour: "08h", BusiestWeekday: "dilluns"}
	report := NewReport(stats,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local),
		"plana", domain.AllTypes,
		[]string{"exports/2024.csv"}, 2)

	_, err := uuid.Parse(report.ID)
	require.NoError(t, err, "report id must be a valid UUID")
	assert.False(t, report.GeneratedAt.IsZero())

	require.NoError(t, report.WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.ID, decoded.ID)
	assert.Equal(t, "2024-01-01", decoded.RangeStart)
	assert.Equal(t, "2024-12-31", decoded.RangeEnd)
	assert.Equal(t, "plana", decoded.TariffID)
	assert.Equal(t, 2, decoded.DroppedDups)
	assert.Equal(t, 3, decoded.Stats.TotalTrips)
}

func TestReportIDsDiffer(t *testing.T) {
	a := NewReport(&domain.StatsSnapshot{}, time.Now(), time.Now(), "plana", domain.AllTypes, nil, 0)
	b := NewReport(&domain.StatsSnapshot{}, time.Now(), time.Now(), "plana", domain.AllTypes, nil, 0)
	assert.NotEqual(t, a.ID, b.ID)
}
