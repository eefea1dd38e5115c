// Package catalog defines the access contracts for the static game
// data this core consumes but does not own: species definitions, move
// definitions, experience curves, and per-location population tables.
// Lookup misses return NotFound; callers degrade gracefully.
package catalog

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_catalog.go -package=catalogmock -source=interface.go

// SpeciesCatalog looks up species definitions by name
type SpeciesCatalog interface {
	Species(ctx context.Context, name string) (*Species, error)
}

// MoveCatalog looks up move definitions by name
type MoveCatalog interface {
	Move(ctx context.Context, name string) (*Move, error)
}

// ExperienceTable exposes the named growth curves as ordered arrays of
// cumulative experience indexed by level 1..100.
type ExperienceTable interface {
	Cumulative(rate string) ([]int, error)
}

// LocationCatalog returns the population table for a location
type LocationCatalog interface {
	Population(ctx context.Context, region, location string) ([]PopulationEntry, error)
}
