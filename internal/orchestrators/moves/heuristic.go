package moves

import (
	"slices"

	"github.com/fernway/kobold/internal/catalog"
	"github.com/fernway/kobold/internal/entities"
)

// Scoring weights for automatic move replacement. The algorithm is
// acknowledged experimental; these constants are fixed game data and
// tests pin them, so tune only with the pins.
const (
	weightPriority = 6.0
	weightHighCrit = 4.0
	weightCategory = 10.0
	weightSameType = 12.0
	weightDamaging = 30.0
	weightPower    = 0.5
	weightPP       = 0.25
	weightAccuracy = 0.3

	// A candidate of the same type with equal-or-better power and at
	// least this much more accuracy strictly dominates the known move.
	dominationAccuracyMargin = 20

	// Dominant-offense detection: one attacking stat must exceed the
	// other by 25% to bias category alignment.
	offenseRatioThreshold = 1.25

	scoreFloor = -1e9
)

// dominates reports whether the candidate strictly obsoletes a known
// move, forcing an overwrite of that slot.
func dominates(candidate, known *catalog.Move) bool {
	return candidate.Type == known.Type &&
		candidate.Damaging() && known.Damaging() &&
		candidate.Power >= known.Power &&
		candidate.Accuracy >= known.Accuracy+dominationAccuracyMargin
}

// dominantCategory returns the move category matching the creature's
// stronger attacking stat, or "" when neither side clears the ratio
// threshold.
func dominantCategory(c *entities.Creature) entities.MoveCategory {
	physical := float64(c.Stats[entities.StatAttack])
	special := float64(c.Stats[entities.StatSpAttack])

	switch {
	case physical > special*offenseRatioThreshold:
		return entities.CategoryPhysical
	case special > physical*offenseRatioThreshold:
		return entities.CategorySpecial
	default:
		return ""
	}
}

// replacementScore rates how much the candidate improves on one known
// move. The highest-scoring slot is the one replaced.
func replacementScore(candidate, known *catalog.Move, c *entities.Creature, types []string) float64 {
	score := 0.0

	if candidate.Priority > known.Priority {
		score += weightPriority
	}
	if candidate.HighCrit && !known.HighCrit {
		score += weightHighCrit
	}

	if dominant := dominantCategory(c); dominant != "" {
		if candidate.Category == dominant && known.Category != dominant {
			score += weightCategory
		}
		if known.Category == dominant && candidate.Category != dominant {
			score -= weightCategory
		}
	}

	if slices.Contains(types, candidate.Type) && !slices.Contains(types, known.Type) {
		score += weightSameType
	}

	if candidate.Damaging() && !known.Damaging() {
		score += weightDamaging
	}
	if !candidate.Damaging() && known.Damaging() {
		score -= weightDamaging
	}

	score += float64(candidate.Power-known.Power) * weightPower
	score += float64(candidate.PP-known.PP) * weightPP
	score += float64(candidate.Accuracy-known.Accuracy) * weightAccuracy

	return score
}
