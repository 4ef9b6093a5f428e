package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bicingwrapped/internal/ingest"
	"bicingwrapped/pkg/contracts/domain"
)

func sampleTrips() []domain.TripRecord {
	start := time.Date(2024, 3, 15, 8, 30, 0, 0, time.Local)
	return []domain.TripRecord{
		{
			ID:              "900123",
			StartDate:       start,
			EndDate:         start.Add(12 * time.Minute),
			BikeID:          "1234",
			DurationMinutes: 12,
			Cost:            0.35,
			Service:         "Bicing",
		},
		{
			ID:              "row-7",
			StartDate:       start.Add(24 * time.Hour),
			EndDate:         start.Add(24*time.Hour + 8*time.Minute),
			BikeID:          "8456",
			DurationMinutes: 8,
			Cost:            0,
			Service:         "Bicing",
		},
	}
}

func TestWriteTripsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trips.csv")

	require.NoError(t, WriteTripsCSV(path, sampleTrips(), WriteOptions{BOMPrefix: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "\xef\xbb\xbf"), "BOM expected")

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(content, "\xef\xbb\xbf")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Data d'inici,Data de fi,Servei,Matrícula,Unitats,Import,Número liquidació", lines[0])
	assert.Equal(t, "15/03/2024 08:30:00,15/03/2024 08:42:00,Bicing,1234,12,0.35,900123", lines[1])
	// Placeholder ids must not leak into the settlement column.
	assert.Equal(t, "16/03/2024 08:30:00,16/03/2024 08:38:00,Bicing,8456,8,0.00,", lines[2])
}

// A canonical CSV must survive a round trip through the parser.
func TestWriteTripsCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.csv")
	trips := sampleTrips()

	require.NoError(t, WriteTripsCSV(path, trips, WriteOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	parsed, err := ingest.NewParser(nil).Parse(string(data))
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.Equal(t, trips[0].ID, parsed[0].ID)
	assert.Equal(t, trips[0].StartDate, parsed[0].StartDate)
	assert.Equal(t, trips[0].BikeID, parsed[0].BikeID)
	assert.Equal(t, trips[0].DurationMinutes, parsed[0].DurationMinutes)
	assert.InDelta(t, trips[0].Cost, parsed[0].Cost, 1e-9)

	// The second trip had a placeholder id, which the parser re-derives.
	assert.True(t, strings.HasPrefix(parsed[1].ID, domain.PlaceholderIDPrefix))
	assert.Equal(t, "8456", parsed[1].BikeID)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.35", formatFloat(0.35))
	assert.Equal(t, "5.00", formatFloat(5))
	assert.Equal(t, "13.40", formatFloat(13.4))
}
