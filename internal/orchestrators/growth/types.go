package growth

import (
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/orchestrators/evolution"
	"github.com/fernway/kobold/internal/orchestrators/moves"
)

// AwardInput grants experience to a creature
type AwardInput struct {
	CreatureID string
	XP         int

	// MoveMode settles four-move conflicts for moves learned while
	// leveling; defaults to interactive
	MoveMode moves.Mode
}

// AwardOutput reports everything the award changed
type AwardOutput struct {
	Creature *entities.Creature

	// LevelsGained is how many level-ups the award crossed
	LevelsGained int

	// Learned lists moves picked up across all levels gained
	Learned []string

	// EvolutionTarget is set when a level-up trigger fired; the
	// pending session is already open and awaits Accept or Cancel
	EvolutionTarget *evolution.Target
}

// ToNextInput asks how much experience remains before the next level
type ToNextInput struct {
	CreatureID string
}

// ToNextOutput carries the remaining experience, or the level-cap
// sentinel
type ToNextOutput struct {
	Remaining int
}
