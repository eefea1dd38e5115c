// Package growth holds the five named experience curves and the
// xp-to-next-level lookup. Tables are generated from the curves'
// closed forms at init; each is an ordered array of cumulative
// experience indexed by level 1..100.
package growth

import (
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
)

// Growth rate names
const (
	RateFast       = "fast"
	RateMediumFast = "medium-fast"
	RateMediumSlow = "medium-slow"
	RateSlow       = "slow"
	RateErratic    = "erratic"
)

// NoNextLevel is the sentinel returned at the level cap
const NoNextLevel = -1

var tables = map[string][]int{}

func init() {
	curves := map[string]func(n int) int{
		RateFast:       func(n int) int { return 4 * n * n * n / 5 },
		RateMediumFast: func(n int) int { return n * n * n },
		RateMediumSlow: func(n int) int { return 6*n*n*n/5 - 15*n*n + 100*n - 140 },
		RateSlow:       func(n int) int { return 5 * n * n * n / 4 },
		RateErratic:    erratic,
	}

	for rate, f := range curves {
		table := make([]int, entities.MaxLevel+1)
		for n := 2; n <= entities.MaxLevel; n++ {
			v := f(n)
			if v < 0 {
				v = 0
			}
			table[n] = v
		}
		tables[rate] = table
	}
}

func erratic(n int) int {
	switch {
	case n < 50:
		return n * n * n * (100 - n) / 50
	case n < 68:
		return n * n * n * (150 - n) / 100
	case n < 98:
		return n * n * n * ((1911 - 10*n) / 3) / 500
	default:
		return n * n * n * (160 - n) / 100
	}
}

// Tables implements the experience-table contract over the generated
// curves.
type Tables struct{}

// NewTables returns the experience table collaborator
func NewTables() *Tables {
	return &Tables{}
}

// Cumulative returns a curve's cumulative-xp array, indexed by level.
// Index 0 is unused; index 1 is 0.
func (t *Tables) Cumulative(rate string) ([]int, error) {
	table, ok := tables[rate]
	if !ok {
		return nil, errors.NotFoundf("growth rate %q not found", rate)
	}
	return table, nil
}

// XPToNext returns the experience remaining until the next level for a
// creature with the given cumulative table. The result is negative or
// zero when a level-up is already pending. At the level cap it returns
// NoNextLevel.
func XPToNext(table []int, totalXP, level int) int {
	if level >= entities.MaxLevel {
		return NoNextLevel
	}
	return table[level+1] - totalXP
}
