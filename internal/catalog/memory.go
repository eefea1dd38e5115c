package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/fernway/kobold/internal/errors"
)

// Memory is an in-memory catalog implementation. The production
// deployment loads it from the game-data dump at boot; tests load it
// from fixtures. Lookups are case-insensitive on species/move names.
type Memory struct {
	mu        sync.RWMutex
	species   map[string]*Species
	moves     map[string]*Move
	locations map[string][]PopulationEntry
}

// NewMemory creates an empty in-memory catalog
func NewMemory() *Memory {
	return &Memory{
		species:   make(map[string]*Species),
		moves:     make(map[string]*Move),
		locations: make(map[string][]PopulationEntry),
	}
}

// Ensure Memory implements every catalog contract
var (
	_ SpeciesCatalog  = (*Memory)(nil)
	_ MoveCatalog     = (*Memory)(nil)
	_ LocationCatalog = (*Memory)(nil)
)

// AddSpecies registers a species definition
func (m *Memory) AddSpecies(s *Species) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.species[strings.ToLower(s.Name)] = s
}

// AddMove registers a move definition
func (m *Memory) AddMove(mv *Move) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves[strings.ToLower(mv.Name)] = mv
}

// AddPopulation registers a location's population table
func (m *Memory) AddPopulation(region, location string, entries []PopulationEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[locationKey(region, location)] = entries
}

// Species looks up a species definition by name
func (m *Memory) Species(_ context.Context, name string) (*Species, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.species[strings.ToLower(name)]
	if !ok {
		return nil, errors.NotFoundf("species %q not found", name)
	}
	return s, nil
}

// Move looks up a move definition by name
func (m *Memory) Move(_ context.Context, name string) (*Move, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mv, ok := m.moves[strings.ToLower(name)]
	if !ok {
		return nil, errors.NotFoundf("move %q not found", name)
	}
	return mv, nil
}

// Population returns the population table for a location. An unknown
// location is an empty table, not an error: the encounter generator
// treats both as "nothing to encounter here".
func (m *Memory) Population(_ context.Context, region, location string) ([]PopulationEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.locations[locationKey(region, location)], nil
}

func locationKey(region, location string) string {
	return strings.ToLower(region) + ":" + strings.ToLower(location)
}
