package catalog

import (
	"encoding/json"
	"os"

	"github.com/fernway/kobold/internal/errors"
)

// LoadMemory builds an in-memory catalog from the three JSON data
// files. Species and move files hold arrays; the location file maps
// region to location to population rows.
func LoadMemory(speciesPath, movesPath, locationsPath string) (*Memory, error) {
	m := NewMemory()

	var species []*Species
	if err := readJSON(speciesPath, &species); err != nil {
		return nil, errors.Wrapf(err, "failed to load species data from %s", speciesPath)
	}
	for _, s := range species {
		m.AddSpecies(s)
	}

	var moves []*Move
	if err := readJSON(movesPath, &moves); err != nil {
		return nil, errors.Wrapf(err, "failed to load move data from %s", movesPath)
	}
	for _, mv := range moves {
		m.AddMove(mv)
	}

	var regions map[string]map[string][]PopulationEntry
	if err := readJSON(locationsPath, &regions); err != nil {
		return nil, errors.Wrapf(err, "failed to load location data from %s", locationsPath)
	}
	for region, locations := range regions {
		for location, entries := range locations {
			m.AddPopulation(region, location, entries)
		}
	}

	return m, nil
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
