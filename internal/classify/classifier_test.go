package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bicingwrapped/pkg/contracts/domain"
)

func trip(bikeID string, cost float64, minutes int) domain.TripRecord {
	return domain.TripRecord{BikeID: bikeID, Cost: cost, DurationMinutes: minutes}
}

func TestClassifyReferenceSetsOverrideHeuristics(t *testing.T) {
	refs := NewReferenceSets([]string{"8500"}, []string{"500"})

	// 8500 is in the new-electric id range but confirmed mechanical.
	assert.Equal(t, domain.Mechanical, Classify(trip("8500", 0, 20), refs))
	// 500 is in the mechanical range but confirmed electric.
	assert.Equal(t, domain.Electric, Classify(trip("500", 0, 20), refs))
	// Reference sets also beat the paid-short-trip heuristic.
	assert.Equal(t, domain.Mechanical, Classify(trip("8500", 0.35, 15), refs))
	// Membership is checked on the cleaned id.
	assert.Equal(t, domain.Electric, Classify(trip("B-500 ", 0, 20), refs))
}

func TestClassifyPaidShortTripHeuristic(t *testing.T) {
	refs := NewReferenceSets(nil, nil)

	// Short paid trips are assumed electric.
	assert.Equal(t, domain.Electric, Classify(trip("1500", 0.35, 20), refs))
	assert.Equal(t, domain.Electric, Classify(trip("1500", 0.35, 30), refs))
	// Over 30 minutes the heuristic no longer applies and the id range
	// decides.
	assert.Equal(t, domain.Mechanical, Classify(trip("1500", 0.70, 31), refs))
	assert.Equal(t, domain.Electric, Classify(trip("3500", 0.90, 45), refs))
}

func TestClassifyIDRanges(t *testing.T) {
	refs := NewReferenceSets(nil, nil)

	tests := []struct {
		bikeID   string
		expected domain.VehicleType
	}{
		{"2999", domain.Mechanical},
		{"3000", domain.Electric},
		{"3999", domain.Electric},
		{"4000", domain.Mechanical},
		{"7999", domain.Mechanical},
		{"8000", domain.Electric},
		{"12000", domain.Electric},
		{"1", domain.Mechanical},
	}

	for _, tt := range tests {
		t.Run(tt.bikeID, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(trip(tt.bikeID, 0, 40), refs))
		})
	}
}

func TestClassifyIsTotalAndDeterministic(t *testing.T) {
	refs := NewReferenceSets([]string{"10"}, []string{"20"})

	inputs := []domain.TripRecord{
		trip("", 0, 0),
		trip("?", 0, 0),
		trip("no digits at all", 1.50, 10),
		trip("0", 0, 0),
		trip("3000", 2, 300),
	}

	for _, in := range inputs {
		first := Classify(in, refs)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Classify(in, refs))
		}
	}

	// A digitless id never panics and defaults to mechanical when unpaid.
	assert.Equal(t, domain.Mechanical, Classify(trip("?", 0, 60), refs))
}

func TestLoadReferenceSets(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bicing_ids.json")
		content := `{"mecaniques": ["100", "200"], "electriques": ["8100"]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		refs, err := LoadReferenceSets(path)
		require.NoError(t, err)
		assert.Len(t, refs.Mechanical, 2)
		assert.Len(t, refs.Electric, 1)
		assert.Equal(t, domain.Mechanical, Classify(trip("100", 0.5, 10), refs))
	})

	t.Run("missing file yields empty sets", func(t *testing.T) {
		refs, err := LoadReferenceSets(filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)
		assert.Empty(t, refs.Mechanical)
		assert.Empty(t, refs.Electric)
	})

	t.Run("malformed file fails", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

		_, err := LoadReferenceSets(path)
		assert.Error(t, err)
	})
}
