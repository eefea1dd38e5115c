package moves

import (
	"github.com/fernway/kobold/internal/entities"
)

// Mode selects how a full move list is resolved
type Mode string

// Resolution modes
const (
	// ModeInteractive suspends awaiting the owner's slot choice
	ModeInteractive Mode = "interactive"

	// ModeHeuristic scores the known moves and replaces the best
	// candidate slot without consulting the owner; used when no owner
	// response is possible, e.g. day-care growth
	ModeHeuristic Mode = "heuristic"
)

// ResolveInput asks for the learnable moves at an exact level to be
// applied to a creature. The creature's move slots are mutated in
// place; the caller persists.
type ResolveInput struct {
	Creature *entities.Creature
	Level    int
	Mode     Mode

	// OnlySpecies restricts resolution to learnset rows of this
	// species name; the post-evolution check uses it to pick up moves
	// gated specifically on the destination species.
	OnlySpecies string
}

// ResolveOutput reports what changed
type ResolveOutput struct {
	// Learned lists moves now known that were not known before
	Learned []string

	// Passed lists candidate moves that were not learned (timeout,
	// cancel, or the owner declining)
	Passed []string
}
