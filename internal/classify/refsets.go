package classify

import (
	"encoding/json"
	"fmt"
	"os"
)

// referenceFile mirrors the JSON layout of the maintained id lists.
type referenceFile struct {
	Mecaniques  []string `json:"mecaniques"`
	Electriques []string `json:"electriques"`
}

// LoadReferenceSets reads the confirmed plate lists from a JSON file.
// A missing file is not an error: classification then runs on heuristics
// alone with empty sets.
func LoadReferenceSets(path string) (ReferenceSets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewReferenceSets(nil, nil), nil
		}
		return ReferenceSets{}, fmt.Errorf("failed to read reference ids: %w", err)
	}

	var file referenceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return ReferenceSets{}, fmt.Errorf("failed to parse reference ids: %w", err)
	}

	return NewReferenceSets(file.Mecaniques, file.Electriques), nil
}
