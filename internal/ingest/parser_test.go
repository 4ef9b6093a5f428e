package ingest

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bicingwrapped/internal/errors"
)

const semicolonExport = `Consum de serveis Smou
Usuari: 12345

Data d'inici;Data de fi;Servei;Matrícula;Unitats;Import;Número liquidació
01/03/2024 08:15;01/03/2024 08:35;Bicing;B-3412;20 min;0,35 €;LIQ-001
01/03/2024 18:02;01/03/2024 18:40;Bicing;8123;38 min;0,90 €;LIQ-002
02/03/2024 09:00;02/03/2024 09:10;Taxi;;10 min;7,50 €;LIQ-003
03/03/2024;03/03/2024;Bicing;451;12 min;0,00 €;LIQ-004
`

func TestParseSemicolonExport(t *testing.T) {
	p := NewParser(nil)

	trips, err := p.Parse(semicolonExport)
	require.NoError(t, err)
	require.Len(t, trips, 3, "the Taxi row must be filtered out")

	first := trips[0]
	assert.Equal(t, "LIQ-001", first.ID)
	assert.True(t, first.HasSettlementID())
	assert.Equal(t, time.Date(2024, 3, 1, 8, 15, 0, 0, time.Local), first.StartDate)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 35, 0, 0, time.Local), first.EndDate)
	assert.Equal(t, "B-3412", first.BikeID)
	assert.Equal(t, 20, first.DurationMinutes)
	assert.Equal(t, 0.35, first.Cost)
	assert.Equal(t, "Bicing", first.Service)

	// Time-less dates default to midnight.
	last := trips[2]
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local), last.StartDate)
	assert.Equal(t, 0.0, last.Cost)
}

func TestParseCommaExport(t *testing.T) {
	raw := strings.Join([]string{
		`"Data d'inici","Matrícula","Unitats","Import"`,
		`"05/06/2023 07:45","3512","25 min","0,35"`,
	}, "\n")

	p := NewParser(nil)
	trips, err := p.Parse(raw)
	require.NoError(t, err)
	require.Len(t, trips, 1)

	assert.Equal(t, "3512", trips[0].BikeID)
	assert.Equal(t, 25, trips[0].DurationMinutes)
	assert.Equal(t, 0.35, trips[0].Cost)
	// No settlement column; ids fall back to the row position.
	assert.False(t, trips[0].HasSettlementID())
	assert.Equal(t, "row-1", trips[0].ID)
	// End date column absent; end falls back to start.
	assert.Equal(t, trips[0].StartDate, trips[0].EndDate)
}

func TestParseTabExport(t *testing.T) {
	raw := "Data d'inici\tMatrícula\tUnitats\tImport\n" +
		"10/01/2024 12:00\t2044\t15 min\t0\n"

	p := NewParser(nil)
	trips, err := p.Parse(raw)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "2044", trips[0].BikeID)
}

func TestParseHeaderNotFound(t *testing.T) {
	p := NewParser(nil)

	_, err := p.Parse("just some text\nwithout any known columns\n1,2,3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrHeaderNotFound))
}

func TestParseHeaderBeyondScanWindow(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxHeaderScanLines; i++ {
		b.WriteString(fmt.Sprintf("preamble line %d\n", i))
	}
	b.WriteString("Data d'inici;Matrícula\n")
	b.WriteString("01/01/2024;100\n")

	p := NewParser(nil)
	_, err := p.Parse(b.String())
	assert.True(t, errors.Is(err, apperrors.ErrHeaderNotFound))
}

func TestParseEmptyInput(t *testing.T) {
	p := NewParser(nil)

	trips, err := p.Parse("")
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestParseIdempotence(t *testing.T) {
	p := NewParser(nil)

	a, err := p.Parse(semicolonExport)
	require.NoError(t, err)
	b, err := p.Parse(semicolonExport)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestParseSkipsMalformedRows(t *testing.T) {
	raw := strings.Join([]string{
		"Data d'inici;Matrícula;Unitats",
		"not-a-date;900;10 min",
		";901;10 min",
		"",
		"04/05/2024 10:00;902;10 min",
	}, "\n")

	p := NewParser(nil)
	trips, err := p.Parse(raw)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "902", trips[0].BikeID)
}

func TestInferDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected rune
	}{
		{"semicolons win", "a;b;c,d", ';'},
		{"tabs win", "a\tb\tc;d", '\t'},
		{"commas win", "a,b,c;d", ','},
		{"tie defaults to comma", "a;b,c", ','},
		{"three-way tie defaults to comma", "a", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, inferDelimiter(tt.line))
		})
	}
}

func TestParseCost(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"0,35 €", 0.35},
		{"1.234,56 €", 1234.56},
		{"12.5", 12.5},
		{"€ 2,00", 2.0},
		{"0", 0},
		{"", 0},
		{"n/a", 0},
		{"-1,00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCost(tt.input))
		})
	}
}

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"13 min", 13},
		{" 45", 45},
		{"1h 30", 1},
		{"min", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseDurationMinutes(tt.input))
		})
	}
}

func TestParseExportDate(t *testing.T) {
	t.Run("full timestamp", func(t *testing.T) {
		d, err := parseExportDate("24/12/2023 23:59:58")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 12, 24, 23, 59, 58, 0, time.Local), d)
	})

	t.Run("date only defaults to midnight", func(t *testing.T) {
		d, err := parseExportDate("01/02/2024")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), d)
	})

	t.Run("garbage time degrades to zero", func(t *testing.T) {
		d, err := parseExportDate("01/02/2024 xx:yy")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), d)
	})

	t.Run("invalid dates fail", func(t *testing.T) {
		for _, s := range []string{"", "2024-02-01", "1/2", "a/b/c"} {
			_, err := parseExportDate(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "matricula", normalizeText("  Matrícula "))
	assert.Equal(t, "numero liquidacio", normalizeText("Número liquidació"))
	assert.Equal(t, "data d'inici", normalizeText("Data d'inici"))
}
