package evolution

import (
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/orchestrators/moves"
)

// Trigger is the event class that prompted a trigger check
type Trigger string

// Triggers
const (
	TriggerLevelUp Trigger = "level-up"
	TriggerItemUse Trigger = "item-use"
	TriggerTrade   Trigger = "trade"
)

// Target is the species/form a creature would evolve into
type Target struct {
	Species string
	Form    string
}

// CheckInput asks whether a trigger condition holds for a creature
type CheckInput struct {
	Creature *entities.Creature
	Trigger  Trigger

	// UsedItem names the consumed item for TriggerItemUse checks
	UsedItem string
}

// CheckOutput carries the detected target; nil means no rule fired
type CheckOutput struct {
	Target *Target
}

// BeginInput opens a pending-evolution session for a creature whose
// trigger already fired.
type BeginInput struct {
	Creature *entities.Creature
	Target   *Target

	// UsedItem names the consumable behind an item trigger; it is
	// spent when the session is accepted
	UsedItem string
}

// BeginOutput carries the created session
type BeginOutput struct {
	Session *entities.EvolutionSession
}

// UseItemInput applies an evolution item to a creature
type UseItemInput struct {
	OwnerID    string
	CreatureID string
	Item       string
}

// UseItemOutput carries the session the item opened
type UseItemOutput struct {
	Session *entities.EvolutionSession
}

// AcceptInput applies the owner's pending evolution
type AcceptInput struct {
	OwnerID string

	// MoveMode settles four-move conflicts during the post-evolution
	// learn check; defaults to interactive
	MoveMode moves.Mode
}

// AcceptOutput reports the applied mutation
type AcceptOutput struct {
	Creature *entities.Creature

	// Spawned is the linked creature added by the one species pair
	// that splits on evolution, if that side effect fired
	Spawned *entities.Creature
}

// CancelInput abandons the owner's pending evolution
type CancelInput struct {
	OwnerID string
}

// CancelOutput is the result of a cancellation
type CancelOutput struct{}

// RebuildInput has no parameters; the scan is store-wide
type RebuildInput struct{}

// RebuildOutput reports the sessions reconstructed at process start
type RebuildOutput struct {
	Sessions []*entities.EvolutionSession
}
