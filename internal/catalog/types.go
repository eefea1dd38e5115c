package catalog

import (
	"github.com/fernway/kobold/internal/entities"
)

// BaseStatBlock is one base-stat variant. Species with alternate forms
// carry 2-3 blocks; the empty-form block is the default.
type BaseStatBlock struct {
	Form  string
	Stats entities.StatVector
}

// AbilityEntry is one slot in a species' ability table. Hidden
// abilities occupy their own slot and are only rolled rarely in the
// wild. A non-empty Form restricts the entry to that form.
type AbilityEntry struct {
	Name   string
	Hidden bool
	Form   string
}

// TypeEntry gives the type pair for one form; the empty-form entry is
// the default.
type TypeEntry struct {
	Form  string
	Types []string
}

// EvolutionRule is one generic, data-driven evolution rule. Rules are
// evaluated in declaration order; the first satisfied rule wins.
// Exactly the set fields are required, and Time/Gender act as gates on
// whatever the rule otherwise requires.
type EvolutionRule struct {
	Target     string
	TargetForm string

	// Requirements; zero values mean "not required"
	Level        int
	Friendship   int
	HeldItem     string
	UseItem      string
	KnownMove    string
	Location     string
	LocationKind string // "magnetic", "mossy", "icy"
	Trade        bool
	TradeFor     string // species-pair trade requirement

	// Gates
	Time   entities.TimeOfDay
	Gender entities.Gender
}

// LearnsetEntry is one level-based learnset row. A non-empty Form
// restricts the row to that form. ByFormOnly marks the handful of
// species whose learnsets are indexed by form name alone: the row
// matches whenever the creature is in that form, regardless of level.
type LearnsetEntry struct {
	Move       string
	Level      int
	Form       string
	ByFormOnly bool
}

// Species is the full structured definition the catalog returns
type Species struct {
	Name           string
	NationalID     int
	Bases          []BaseStatBlock
	Abilities      []AbilityEntry
	Types          []TypeEntry
	GenderRatio    float64 // fraction male in [0,1]; -1 for genderless
	BaseFriendship int
	CatchRate      int
	Weight         float64 // kilograms
	EVYield        entities.StatVector
	GrowthRate     string
	Evolutions     []EvolutionRule
	Learnset       []LearnsetEntry

	// Fragile marks the species variant whose HP is pinned at 1
	// regardless of the stat formula.
	Fragile bool
}

// BaseStats resolves the base-stat block for a form, falling back to
// the default block when the form has no variant.
func (s *Species) BaseStats(form string) entities.StatVector {
	var fallback entities.StatVector
	for i, b := range s.Bases {
		if b.Form == form {
			return b.Stats
		}
		if i == 0 || b.Form == "" {
			fallback = b.Stats
		}
	}
	return fallback
}

// TypesFor resolves the type pair for a form, falling back to the
// default entry.
func (s *Species) TypesFor(form string) []string {
	var fallback []string
	for i, t := range s.Types {
		if t.Form == form {
			return t.Types
		}
		if i == 0 || t.Form == "" {
			fallback = t.Types
		}
	}
	return fallback
}

// AbilitiesFor returns the ability slots applicable to a form, in
// table order.
func (s *Species) AbilitiesFor(form string) []AbilityEntry {
	var out []AbilityEntry
	for _, a := range s.Abilities {
		if a.Form == "" || a.Form == form {
			out = append(out, a)
		}
	}
	return out
}

// LearnableAt returns the moves a creature of the given form learns at
// exactly the given level, in learnset order.
func (s *Species) LearnableAt(form string, level int) []string {
	var out []string
	for _, e := range s.Learnset {
		if e.ByFormOnly {
			if e.Form == form {
				out = append(out, e.Move)
			}
			continue
		}
		if e.Level != level {
			continue
		}
		if e.Form != "" && e.Form != form {
			continue
		}
		out = append(out, e.Move)
	}
	return out
}

// LevelUpMovesUpTo returns the most recent level-up moves a wild
// creature of the given form and level would know, newest last,
// capped at the move-slot limit.
func (s *Species) LevelUpMovesUpTo(form string, level int) []string {
	var all []string
	for _, e := range s.Learnset {
		if e.ByFormOnly || e.Level > level {
			continue
		}
		if e.Form != "" && e.Form != form {
			continue
		}
		all = append(all, e.Move)
	}
	if len(all) > entities.MaxMoves {
		all = all[len(all)-entities.MaxMoves:]
	}
	return all
}

// Move is the move catalog's structured definition
type Move struct {
	Name     string
	Type     string
	Category entities.MoveCategory
	Power    int
	Accuracy int
	PP       int
	Priority int
	HighCrit bool
}

// Damaging reports whether the move deals direct damage
func (m *Move) Damaging() bool {
	return m.Category != entities.CategoryStatus
}

// PopulationCondition gates a population entry on trainer state
type PopulationCondition string

// Population conditions
const (
	ConditionNone  PopulationCondition = ""
	ConditionSwarm PopulationCondition = "swarm"
	ConditionRadar PopulationCondition = "radar"
)

// PopulationEntry is one row of a location's population table.
// Rarities holds one value per rarity tier; shorter slices repeat
// their last value for the missing tiers.
type PopulationEntry struct {
	Species   string
	Form      string
	MinLevel  int
	MaxLevel  int
	Rarities  []int
	Field     entities.Field
	Condition PopulationCondition
}

// RarityAt returns the entry's rarity at the given tier
func (p *PopulationEntry) RarityAt(tier int) int {
	if len(p.Rarities) == 0 {
		return 0
	}
	if tier < 0 {
		tier = 0
	}
	if tier >= len(p.Rarities) {
		tier = len(p.Rarities) - 1
	}
	return p.Rarities[tier]
}
