// Package rng provides the uniform randomness source used by the
// encounter generator, capture resolver, and wild-creature rolls.
// Production code uses the process-wide source; tests inject a seeded
// one so every draw sequence is reproducible.
package rng

import (
	"math/rand/v2"
)

// Source provides uniform random draws
type Source interface {
	// Float64 returns a draw in [0, 1)
	Float64() float64

	// IntN returns a draw in [0, n); n must be > 0
	IntN(n int) int

	// Shuffle permutes n elements via the swap callback
	Shuffle(n int, swap func(i, j int))
}

type realSource struct{}

// New returns the process-wide random source
func New() Source {
	return &realSource{}
}

func (s *realSource) Float64() float64 {
	return rand.Float64()
}

func (s *realSource) IntN(n int) int {
	return rand.IntN(n)
}

func (s *realSource) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

type seededSource struct {
	r *rand.Rand
}

// NewSeeded returns a deterministic source for tests
func NewSeeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Float64() float64 {
	return s.r.Float64()
}

func (s *seededSource) IntN(n int) int {
	return s.r.IntN(n)
}

func (s *seededSource) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}
