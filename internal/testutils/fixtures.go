package testutils

import (
	"github.com/fernway/kobold/internal/catalog"
	"github.com/fernway/kobold/internal/entities"
)

// Default identifiers for test fixtures
const (
	TestTrainerID   = "trainer-test-001"
	TestTrainerName = "Red"
	TestLocation    = "viridian forest"
)

func vec(hp, atk, def, spa, spd, spe int) entities.StatVector {
	return entities.StatVector{hp, atk, def, spa, spd, spe}
}

// CreateTestCatalog builds an in-memory catalog with enough species,
// moves, and population rows to exercise every flow.
func CreateTestCatalog() *catalog.Memory {
	m := catalog.NewMemory()

	m.AddSpecies(&catalog.Species{
		Name:       "bulbasaur",
		NationalID: 1,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(45, 49, 49, 65, 65, 45)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "overgrow"},
			{Name: "chlorophyll", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"grass", "poison"}}},
		GenderRatio:    0.875,
		BaseFriendship: 70,
		CatchRate:      45,
		Weight:         6.9,
		EVYield:        vec(0, 0, 0, 1, 0, 0),
		GrowthRate:     "medium-slow",
		Evolutions: []catalog.EvolutionRule{
			{Target: "ivysaur", Level: 16},
		},
		Learnset: []catalog.LearnsetEntry{
			{Move: "tackle", Level: 1},
			{Move: "growl", Level: 3},
			{Move: "vine whip", Level: 7},
			{Move: "leech seed", Level: 9},
			{Move: "poison powder", Level: 13},
			{Move: "razor leaf", Level: 16},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "ivysaur",
		NationalID: 2,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(60, 62, 63, 80, 80, 60)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "overgrow"},
			{Name: "chlorophyll", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"grass", "poison"}}},
		GenderRatio:    0.875,
		BaseFriendship: 70,
		CatchRate:      45,
		Weight:         13.0,
		EVYield:        vec(0, 0, 0, 1, 1, 0),
		GrowthRate:     "medium-slow",
		Evolutions: []catalog.EvolutionRule{
			{Target: "venusaur", Level: 32},
		},
		Learnset: []catalog.LearnsetEntry{
			{Move: "razor leaf", Level: 16},
			{Move: "sweet scent", Level: 20},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "caterpie",
		NationalID: 10,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(45, 30, 35, 20, 20, 45)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "shield dust"},
			{Name: "run away", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"bug"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      255,
		Weight:         2.9,
		EVYield:        vec(1, 0, 0, 0, 0, 0),
		GrowthRate:     "medium-fast",
		Learnset: []catalog.LearnsetEntry{
			{Move: "tackle", Level: 1},
			{Move: "string shot", Level: 1},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "haunter",
		NationalID: 93,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(45, 50, 45, 115, 55, 95)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "levitate"},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"ghost", "poison"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      90,
		Weight:         0.1,
		EVYield:        vec(0, 0, 0, 2, 0, 0),
		GrowthRate:     "medium-slow",
		Evolutions: []catalog.EvolutionRule{
			{Target: "gengar", Trade: true},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "gengar",
		NationalID: 94,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(60, 65, 60, 130, 75, 110)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "cursed body"},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"ghost", "poison"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      45,
		Weight:         40.5,
		EVYield:        vec(0, 0, 0, 3, 0, 0),
		GrowthRate:     "medium-slow",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "onix",
		NationalID: 95,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(35, 45, 160, 30, 45, 70)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "rock head"},
			{Name: "weak armor", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"rock", "ground"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      45,
		Weight:         210.0,
		EVYield:        vec(0, 0, 1, 0, 0, 0),
		GrowthRate:     "medium-fast",
		Evolutions: []catalog.EvolutionRule{
			{Target: "steelix", Trade: true, HeldItem: "metal coat"},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "steelix",
		NationalID: 208,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(75, 85, 200, 55, 65, 30)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "rock head"},
			{Name: "sheer force", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"steel", "ground"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      25,
		Weight:         400.0,
		EVYield:        vec(0, 0, 2, 0, 0, 0),
		GrowthRate:     "medium-fast",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "eevee",
		NationalID: 133,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(55, 55, 50, 45, 65, 55)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "run away"},
			{Name: "adaptability"},
			{Name: "anticipation", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"normal"}}},
		GenderRatio:    0.875,
		BaseFriendship: 70,
		CatchRate:      45,
		Weight:         6.5,
		EVYield:        vec(0, 0, 0, 0, 1, 0),
		GrowthRate:     "medium-fast",
		Evolutions: []catalog.EvolutionRule{
			{Target: "vaporeon", UseItem: "water stone"},
			{Target: "jolteon", UseItem: "thunder stone"},
			{Target: "flareon", UseItem: "fire stone"},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "vaporeon",
		NationalID: 134,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(130, 65, 60, 110, 95, 65)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "water absorb"},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"water"}}},
		GenderRatio:    0.875,
		BaseFriendship: 70,
		CatchRate:      45,
		Weight:         29.0,
		EVYield:        vec(2, 0, 0, 0, 0, 0),
		GrowthRate:     "medium-fast",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "shelmet",
		NationalID: 616,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(50, 40, 85, 40, 65, 25)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "hydration"},
			{Name: "overcoat", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"bug"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      200,
		Weight:         7.7,
		EVYield:        vec(0, 0, 1, 0, 0, 0),
		GrowthRate:     "medium-fast",
		Evolutions: []catalog.EvolutionRule{
			{Target: "accelgor", Trade: true, TradeFor: "karrablast"},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "accelgor",
		NationalID: 617,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(80, 70, 40, 100, 60, 145)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "hydration"},
			{Name: "unburden", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"bug"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      75,
		Weight:         25.3,
		EVYield:        vec(0, 0, 0, 0, 0, 2),
		GrowthRate:     "medium-fast",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "karrablast",
		NationalID: 588,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(50, 75, 45, 40, 45, 60)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "swarm"},
			{Name: "no guard", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"bug"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      200,
		Weight:         5.9,
		EVYield:        vec(0, 1, 0, 0, 0, 0),
		GrowthRate:     "medium-fast",
		Evolutions: []catalog.EvolutionRule{
			{Target: "escavalier", Trade: true, TradeFor: "shelmet"},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "escavalier",
		NationalID: 589,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(70, 135, 105, 60, 105, 20)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "swarm"},
			{Name: "overcoat", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"bug", "steel"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      75,
		Weight:         33.0,
		EVYield:        vec(0, 2, 0, 0, 0, 0),
		GrowthRate:     "medium-fast",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "espeon",
		NationalID: 196,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(65, 65, 60, 130, 95, 110)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "synchronize"},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"psychic"}}},
		GenderRatio:    0.875,
		BaseFriendship: 70,
		CatchRate:      45,
		Weight:         26.5,
		EVYield:        vec(0, 0, 0, 2, 0, 0),
		GrowthRate:     "medium-fast",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "umbreon",
		NationalID: 197,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(95, 65, 110, 60, 130, 65)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "synchronize"},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"dark"}}},
		GenderRatio:    0.875,
		BaseFriendship: 70,
		CatchRate:      45,
		Weight:         27.0,
		EVYield:        vec(0, 0, 0, 0, 2, 0),
		GrowthRate:     "medium-fast",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "nincada",
		NationalID: 290,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(31, 45, 90, 30, 30, 40)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "compound eyes"},
			{Name: "run away", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"bug", "ground"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      255,
		Weight:         5.5,
		EVYield:        vec(0, 0, 1, 0, 0, 0),
		GrowthRate:     "erratic",
		Evolutions: []catalog.EvolutionRule{
			{Target: "ninjask", Level: 20},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "ninjask",
		NationalID: 291,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(61, 90, 45, 50, 50, 160)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "speed boost"},
			{Name: "infiltrator", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"bug", "flying"}}},
		GenderRatio:    0.5,
		BaseFriendship: 70,
		CatchRate:      120,
		Weight:         12.0,
		EVYield:        vec(0, 0, 0, 0, 0, 2),
		GrowthRate:     "erratic",
		Learnset: []catalog.LearnsetEntry{
			{Move: "double team", Level: 20},
		},
	})

	m.AddSpecies(&catalog.Species{
		Name:       "shedinja",
		NationalID: 292,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(1, 90, 45, 30, 30, 40)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "wonder guard"},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"bug", "ghost"}}},
		GenderRatio:    -1,
		BaseFriendship: 70,
		CatchRate:      45,
		Weight:         1.2,
		EVYield:        vec(2, 0, 0, 0, 0, 0),
		GrowthRate:     "erratic",
		Fragile:        true,
	})

	m.AddSpecies(&catalog.Species{
		Name:       "tyrogue",
		NationalID: 236,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(35, 35, 35, 35, 35, 35)}},
		Abilities: []catalog.AbilityEntry{
			{Name: "guts"},
			{Name: "vital spirit", Hidden: true},
		},
		Types:          []catalog.TypeEntry{{Types: []string{"fighting"}}},
		GenderRatio:    1.0,
		BaseFriendship: 70,
		CatchRate:      75,
		Weight:         21.0,
		EVYield:        vec(0, 1, 0, 0, 0, 0),
		GrowthRate:     "medium-fast",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "hitmonlee",
		NationalID: 106,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(50, 120, 53, 35, 110, 87)}},
		Abilities:  []catalog.AbilityEntry{{Name: "limber"}},
		Types:      []catalog.TypeEntry{{Types: []string{"fighting"}}},
		GenderRatio: 1.0, BaseFriendship: 70, CatchRate: 45, Weight: 49.8,
		EVYield: vec(0, 2, 0, 0, 0, 0), GrowthRate: "medium-fast",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "hitmonchan",
		NationalID: 107,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(50, 105, 79, 35, 110, 76)}},
		Abilities:  []catalog.AbilityEntry{{Name: "keen eye"}},
		Types:      []catalog.TypeEntry{{Types: []string{"fighting"}}},
		GenderRatio: 1.0, BaseFriendship: 70, CatchRate: 45, Weight: 50.2,
		EVYield: vec(0, 0, 0, 0, 2, 0), GrowthRate: "medium-fast",
	})

	m.AddSpecies(&catalog.Species{
		Name:       "hitmontop",
		NationalID: 237,
		Bases:      []catalog.BaseStatBlock{{Stats: vec(50, 95, 95, 35, 110, 70)}},
		Abilities:  []catalog.AbilityEntry{{Name: "intimidate"}},
		Types:      []catalog.TypeEntry{{Types: []string{"fighting"}}},
		GenderRatio: 1.0, BaseFriendship: 70, CatchRate: 45, Weight: 48.0,
		EVYield: vec(0, 0, 2, 0, 0, 0), GrowthRate: "medium-fast",
	})

	for _, mv := range []*catalog.Move{
		{Name: "tackle", Type: "normal", Category: entities.CategoryPhysical, Power: 40, Accuracy: 100, PP: 35},
		{Name: "growl", Type: "normal", Category: entities.CategoryStatus, Power: 0, Accuracy: 100, PP: 40},
		{Name: "string shot", Type: "bug", Category: entities.CategoryStatus, Power: 0, Accuracy: 95, PP: 40},
		{Name: "vine whip", Type: "grass", Category: entities.CategoryPhysical, Power: 45, Accuracy: 100, PP: 25},
		{Name: "leech seed", Type: "grass", Category: entities.CategoryStatus, Power: 0, Accuracy: 90, PP: 10},
		{Name: "poison powder", Type: "poison", Category: entities.CategoryStatus, Power: 0, Accuracy: 75, PP: 35},
		{Name: "razor leaf", Type: "grass", Category: entities.CategoryPhysical, Power: 55, Accuracy: 95, PP: 25, HighCrit: true},
		{Name: "sweet scent", Type: "normal", Category: entities.CategoryStatus, Power: 0, Accuracy: 100, PP: 20},
		{Name: "double team", Type: "normal", Category: entities.CategoryStatus, Power: 0, Accuracy: 0, PP: 15},
	} {
		m.AddMove(mv)
	}

	m.AddPopulation("kanto", TestLocation, []catalog.PopulationEntry{
		{Species: "caterpie", MinLevel: 3, MaxLevel: 6, Rarities: []int{40, 40, 40, 40}, Field: entities.FieldWalk},
		{Species: "bulbasaur", MinLevel: 5, MaxLevel: 8, Rarities: []int{10, 10, 10, 5}, Field: entities.FieldWalk},
		{Species: "nincada", MinLevel: 5, MaxLevel: 10, Rarities: []int{60, 60, 60, 60}, Field: entities.FieldWalk, Condition: catalog.ConditionSwarm},
	})

	return m
}
