package testutils

import (
	"time"

	"github.com/fernway/kobold/internal/entities"
)

// CreateTestTrainer creates a trainer with sensible defaults
func CreateTestTrainer(id string) *entities.Trainer {
	return &entities.Trainer{
		ID:       id,
		Name:     TestTrainerName,
		Region:   entities.RegionKanto,
		Location: TestLocation,
		Field:    entities.FieldWalk,
		Level:    10,
		Money:    3000,
	}
}

// CreatureBuilder assembles creatures for tests
type CreatureBuilder struct {
	c entities.Creature
}

// NewCreature starts a builder with a plain level-5 bulbasaur
func NewCreature(id, ownerID string) *CreatureBuilder {
	return &CreatureBuilder{c: entities.Creature{
		ID:         id,
		OwnerID:    ownerID,
		Species:    "bulbasaur",
		Level:      5,
		IVs:        entities.StatVector{15, 15, 15, 15, 15, 15},
		Nature:     "hardy",
		Ability:    "overgrow",
		Gender:     entities.GenderMale,
		Friendship: 70,
		Origin: entities.Origin{
			Trainer:  TestTrainerName,
			CaughtAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Location: TestLocation,
			Ball:     entities.BallPoke,
			LevelMet: 5,
		},
	}}
}

// Species sets the species and clears the form
func (b *CreatureBuilder) Species(name string) *CreatureBuilder {
	b.c.Species = name
	b.c.Form = ""
	return b
}

// Level sets the level
func (b *CreatureBuilder) Level(level int) *CreatureBuilder {
	b.c.Level = level
	return b
}

// Exp sets the accumulated experience
func (b *CreatureBuilder) Exp(exp int) *CreatureBuilder {
	b.c.Exp = exp
	return b
}

// IVs sets all six IVs
func (b *CreatureBuilder) IVs(ivs entities.StatVector) *CreatureBuilder {
	b.c.IVs = ivs
	return b
}

// EVs sets all six EVs
func (b *CreatureBuilder) EVs(evs entities.StatVector) *CreatureBuilder {
	b.c.EVs = evs
	return b
}

// Stats sets the derived stats directly
func (b *CreatureBuilder) Stats(stats entities.StatVector) *CreatureBuilder {
	b.c.Stats = stats
	return b
}

// Nature sets the nature
func (b *CreatureBuilder) Nature(n entities.Nature) *CreatureBuilder {
	b.c.Nature = n
	return b
}

// Friendship sets the friendship value
func (b *CreatureBuilder) Friendship(v int) *CreatureBuilder {
	b.c.Friendship = v
	return b
}

// HeldItem sets the held item
func (b *CreatureBuilder) HeldItem(item string) *CreatureBuilder {
	b.c.HeldItem = item
	return b
}

// Lead marks the creature as its trainer's lead
func (b *CreatureBuilder) Lead() *CreatureBuilder {
	b.c.Lead = true
	return b
}

// Evolving flags a pending evolution
func (b *CreatureBuilder) Evolving() *CreatureBuilder {
	b.c.Evolving = true
	return b
}

// Moves fills the move slots in order
func (b *CreatureBuilder) Moves(names ...string) *CreatureBuilder {
	b.c.Moves = [entities.MaxMoves]entities.MoveSlot{}
	for i, name := range names {
		if i >= entities.MaxMoves {
			break
		}
		b.c.Moves[i] = entities.MoveSlot{Name: name, PP: 20, MaxPP: 20}
	}
	return b
}

// Build returns the assembled creature
func (b *CreatureBuilder) Build() *entities.Creature {
	out := b.c
	return &out
}
