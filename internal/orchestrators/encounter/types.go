package encounter

import (
	"github.com/fernway/kobold/internal/entities"
)

// GenerateInput asks for a wild encounter at the trainer's current
// region, location, and field.
type GenerateInput struct {
	TrainerID string
}

// GenerateOutput carries the opened encounter; a nil Session means no
// encounter is possible at this field/location/level combination.
type GenerateOutput struct {
	Session *entities.EncounterSession
}

// Outcome is the result of a single ball throw
type Outcome string

// Throw outcomes
const (
	OutcomeCaught    Outcome = "caught"
	OutcomeBrokeFree Outcome = "broke-free"
	OutcomeNearMiss  Outcome = "near-miss"
)

// ThrowInput attempts a capture with one ball
type ThrowInput struct {
	TrainerID string
	Ball      entities.Ball
}

// ThrowOutput reports the throw's resolution
type ThrowOutput struct {
	Outcome Outcome

	// Shakes is how many of the four draws succeeded
	Shakes int

	// Caught is the promoted creature when Outcome is caught
	Caught *entities.Creature

	// EVsApplied is the yield granted to the lead this turn, after
	// caps; zero when the turn's award had already been applied
	EVsApplied entities.StatVector
}

// FleeInput abandons the trainer's active encounter
type FleeInput struct {
	TrainerID string
}

// FleeOutput is the result of fleeing
type FleeOutput struct{}
