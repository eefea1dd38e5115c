package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernway/kobold/internal/entities"
)

func validCreature() *entities.Creature {
	return &entities.Creature{
		ID:      "creature-1",
		OwnerID: "trainer-1",
		Species: "bulbasaur",
		Level:   5,
		Nature:  entities.NatureHardy,
	}
}

func TestCreatureValidate(t *testing.T) {
	assert.NoError(t, validCreature().Validate())

	missing := validCreature()
	missing.OwnerID = ""
	assert.Error(t, missing.Validate())

	overleveled := validCreature()
	overleveled.Level = 101
	assert.Error(t, overleveled.Validate())

	badIV := validCreature()
	badIV.IVs[entities.StatSpeed] = 32
	assert.Error(t, badIV.Validate())

	overEV := validCreature()
	overEV.EVs = entities.StatVector{252, 252, 252, 0, 0, 0}
	assert.Error(t, overEV.Validate())
}

func TestAddEVsPerStatCap(t *testing.T) {
	c := validCreature()
	c.EVs[entities.StatAttack] = 250

	applied := c.AddEVs(entities.StatVector{0, 10, 0, 0, 0, 0})

	assert.Equal(t, 2, applied[entities.StatAttack])
	assert.Equal(t, entities.MaxEVPerStat, c.EVs[entities.StatAttack])
}

func TestAddEVsTotalCap(t *testing.T) {
	c := validCreature()
	c.EVs = entities.StatVector{252, 252, 0, 0, 0, 0}

	applied := c.AddEVs(entities.StatVector{0, 0, 10, 0, 0, 0})

	assert.Equal(t, 6, applied[entities.StatDefense])
	assert.Equal(t, entities.MaxEVTotal, c.EVs.Sum())
}

func TestAddEVsRepeatedAwardsStayCapped(t *testing.T) {
	c := validCreature()

	for i := 0; i < 300; i++ {
		c.AddEVs(entities.StatVector{2, 1, 0, 3, 0, 1})

		for stat := entities.StatHP; stat <= entities.StatSpeed; stat++ {
			assert.LessOrEqual(t, c.EVs[stat], entities.MaxEVPerStat)
		}
		assert.LessOrEqual(t, c.EVs.Sum(), entities.MaxEVTotal)
	}
}

func TestAddFriendshipClamps(t *testing.T) {
	c := validCreature()
	c.Friendship = 254

	c.AddFriendship(10)
	assert.Equal(t, entities.MaxFriendship, c.Friendship)

	c.AddFriendship(-300)
	assert.Equal(t, 0, c.Friendship)
}

func TestMoveSlots(t *testing.T) {
	c := validCreature()
	assert.Equal(t, 0, c.KnownMoves())
	assert.Equal(t, 0, c.FirstEmptySlot())

	c.Moves[0] = entities.MoveSlot{Name: "tackle", PP: 35, MaxPP: 35}
	c.Moves[1] = entities.MoveSlot{Name: "growl", PP: 40, MaxPP: 40}

	assert.Equal(t, 2, c.KnownMoves())
	assert.Equal(t, 2, c.FirstEmptySlot())
	assert.True(t, c.Knows("tackle"))
	assert.False(t, c.Knows("vine whip"))

	c.Moves[2] = entities.MoveSlot{Name: "vine whip", PP: 25, MaxPP: 25}
	c.Moves[3] = entities.MoveSlot{Name: "leech seed", PP: 10, MaxPP: 10}
	assert.Equal(t, -1, c.FirstEmptySlot())
}
