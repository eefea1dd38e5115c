package entities

import "time"

// TransactionLock marks an owner as mid-flow. At most one exists per
// owner at any time; most other commands are rejected while it holds.
type TransactionLock struct {
	OwnerID  string
	Activity Activity
	TakenAt  time.Time
}

// EvolutionSession is a pending evolution. The durable marker is the
// creature's Evolving flag; ToSpecies/ToForm are re-derived from the
// owner's current state whenever the session must be rebuilt.
type EvolutionSession struct {
	OwnerID     string
	CreatureID  string
	FromSpecies string
	FromForm    string
	ToSpecies   string
	ToForm      string

	// UsedItem names the consumable powering an item evolution. It
	// stays in the bag until the session is accepted.
	UsedItem string

	StartedAt time.Time
}

// TradeSession is one participant's half of a trade. Two linked
// records exist per trade, each naming the counterpart and, once
// chosen, the creatures both sides put up.
type TradeSession struct {
	OwnerID        string
	PartnerID      string
	OfferedName    string
	PartnerOffered string
	StartedAt      time.Time
}

// EncounterSession is an active wild encounter: the generated
// creature, the turn count, and whether this turn's EV award to the
// lead has already been applied.
type EncounterSession struct {
	OwnerID   string
	Wild      *WildCreature
	Turn      int
	EVAwarded bool
	StartedAt time.Time
}
