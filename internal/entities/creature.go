package entities

import (
	"time"

	"github.com/fernway/kobold/internal/errors"
)

// MoveSlot is one of up to four order-significant move slots. An empty
// Name means the slot is free.
type MoveSlot struct {
	Name  string `json:"name"`
	PP    int    `json:"pp"`
	MaxPP int    `json:"max_pp"`
}

// Empty reports whether the slot holds no move
func (m MoveSlot) Empty() bool {
	return m.Name == ""
}

// Origin records how a creature entered its trainer's possession
type Origin struct {
	Trainer  string    `json:"trainer"`
	CaughtAt time.Time `json:"caught_at"`
	Location string    `json:"location"`
	Ball     Ball      `json:"ball"`
	LevelMet int       `json:"level_met"`
}

// Creature is an owned, persisted game entity. Derived Stats are
// always a pure function of (species/form, level, IVs, EVs, nature)
// and are recomputed on every mutation that touches an input.
type Creature struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id"`
	Species     string             `json:"species"`
	Form        string             `json:"form,omitempty"`
	Level       int                `json:"level"`
	Exp         int                `json:"exp"`
	IVs         StatVector         `json:"ivs"`
	EVs         StatVector         `json:"evs"`
	Stats       StatVector         `json:"stats"`
	Nature      Nature             `json:"nature"`
	Ability     string             `json:"ability"`
	AbilitySlot int                `json:"ability_slot"`
	Gender      Gender             `json:"gender"`
	Shiny       bool               `json:"shiny"`
	HeldItem    string             `json:"held_item,omitempty"`
	Friendship  int                `json:"friendship"`
	Moves       [MaxMoves]MoveSlot `json:"moves"`
	Origin      Origin             `json:"origin"`
	Lead        bool               `json:"lead"`
	Evolving    bool               `json:"evolving"`
	StorageTag  string             `json:"storage_tag,omitempty"`
}

// Validate enforces the field-level invariants from the data model
func (c *Creature) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ID == "" {
		vb.RequiredField("ID")
	}
	if c.OwnerID == "" {
		vb.RequiredField("OwnerID")
	}
	if c.Species == "" {
		vb.RequiredField("Species")
	}
	if c.Level < 1 || c.Level > MaxLevel {
		vb.Field("Level", "must be between 1 and 100")
	}
	if c.Friendship < 0 || c.Friendship > MaxFriendship {
		vb.Field("Friendship", "must be between 0 and 255")
	}
	for stat := StatHP; stat <= StatSpeed; stat++ {
		if c.IVs[stat] < 0 || c.IVs[stat] > MaxIV {
			vb.Field("IVs", "each IV must be between 0 and 31")
			break
		}
	}
	for stat := StatHP; stat <= StatSpeed; stat++ {
		if c.EVs[stat] < 0 || c.EVs[stat] > MaxEVPerStat {
			vb.Field("EVs", "each EV must be between 0 and 252")
			break
		}
	}
	if c.EVs.Sum() > MaxEVTotal {
		vb.Field("EVs", "total must not exceed 510")
	}

	return vb.Build()
}

// KnownMoves counts the non-empty move slots
func (c *Creature) KnownMoves() int {
	n := 0
	for _, m := range c.Moves {
		if !m.Empty() {
			n++
		}
	}
	return n
}

// Knows reports whether any slot holds the named move
func (c *Creature) Knows(move string) bool {
	for _, m := range c.Moves {
		if m.Name == move {
			return true
		}
	}
	return false
}

// FirstEmptySlot returns the index of the first free move slot, or -1
func (c *Creature) FirstEmptySlot() int {
	for i, m := range c.Moves {
		if m.Empty() {
			return i
		}
	}
	return -1
}

// AddFriendship adjusts friendship, clamped to [0, 255]
func (c *Creature) AddFriendship(delta int) {
	c.Friendship += delta
	if c.Friendship > MaxFriendship {
		c.Friendship = MaxFriendship
	}
	if c.Friendship < 0 {
		c.Friendship = 0
	}
}

// AddEVs applies a per-stat EV award honoring both caps. Returns the
// vector actually applied after clamping.
func (c *Creature) AddEVs(award StatVector) StatVector {
	var applied StatVector
	for stat := StatHP; stat <= StatSpeed; stat++ {
		gain := award[stat]
		if gain <= 0 {
			continue
		}
		if room := MaxEVPerStat - c.EVs[stat]; gain > room {
			gain = room
		}
		if room := MaxEVTotal - c.EVs.Sum(); gain > room {
			gain = room
		}
		if gain <= 0 {
			continue
		}
		c.EVs[stat] += gain
		applied[stat] = gain
	}
	return applied
}

// WildCreature is a transient encounter candidate. It carries no
// ownership metadata; capture promotes it into a Creature.
type WildCreature struct {
	Species     string
	Form        string
	Level       int
	Rarity      int
	IVs         StatVector
	Stats       StatVector
	Nature      Nature
	Ability     string
	AbilitySlot int
	Gender      Gender
	Shiny       bool
	Moves       [MaxMoves]MoveSlot
}
