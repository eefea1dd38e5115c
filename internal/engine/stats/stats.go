// Package stats computes a creature's six battle stats. The engine is
// pure: same inputs, same 6-vector, no error paths.
package stats

import (
	"math"

	"github.com/fernway/kobold/internal/entities"
)

// HP computes the hit-point stat:
// floor(((2*base + iv + floor(ev/4)) * level) / 100) + level + 10
func HP(base, iv, ev, level int) int {
	return (2*base+iv+ev/4)*level/100 + level + 10
}

// Other computes a non-HP stat:
// floor((floor(((2*base + iv + floor(ev/4)) * level) / 100) + 5) * natureMultiplier)
func Other(base, iv, ev, level int, mult float64) int {
	core := (2*base+iv+ev/4)*level/100 + 5
	return int(math.Floor(float64(core) * mult))
}

// Input carries everything the stat formula depends on
type Input struct {
	Base   entities.StatVector
	IVs    entities.StatVector
	EVs    entities.StatVector
	Level  int
	Nature entities.Nature

	// Fragile pins HP at 1 regardless of the formula
	Fragile bool
}

// Compute derives all six stats
func Compute(in Input) entities.StatVector {
	var out entities.StatVector

	if in.Fragile {
		out[entities.StatHP] = 1
	} else {
		out[entities.StatHP] = HP(in.Base[entities.StatHP], in.IVs[entities.StatHP], in.EVs[entities.StatHP], in.Level)
	}

	for stat := entities.StatAttack; stat <= entities.StatSpeed; stat++ {
		out[stat] = Other(in.Base[stat], in.IVs[stat], in.EVs[stat], in.Level, in.Nature.Multiplier(stat))
	}

	return out
}
