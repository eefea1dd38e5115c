package trade

import (
	"github.com/fernway/kobold/internal/entities"
)

// InitiateInput starts a trade between two trainers
type InitiateInput struct {
	InitiatorID string
	PartnerID   string
}

// InitiateOutput reports how the protocol resolved. Completed is
// false on every aborted path; nothing was mutated in that case.
type InitiateOutput struct {
	Completed bool

	// InitiatorReceived and PartnerReceived are the creatures each
	// side ended up with, set only when Completed
	InitiatorReceived *entities.Creature
	PartnerReceived   *entities.Creature

	// EvolutionSessions lists the trade-triggered pending evolutions
	// opened after the swap, zero to two entries
	EvolutionSessions []*entities.EvolutionSession
}
