package encounter

import (
	"context"

	"github.com/fernway/kobold/internal/catalog"
	"github.com/fernway/kobold/internal/engine/stats"
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
)

const (
	// rarePoolCeiling splits the population: entries at or below it
	// form the rare pool
	rarePoolCeiling = 15

	shinyDenominator         = 4096
	hiddenAbilityDenominator = 150
)

// rarityTier picks which rarity column applies right now. Three
// regions rotate by time-of-day band, Sinnoh by calendar month,
// Unova by day/night.
func (o *orchestrator) rarityTier(region entities.Region) int {
	now := o.clock.Now()
	switch region {
	case entities.RegionKanto, entities.RegionJohto, entities.RegionHoenn:
		switch entities.Band(now) {
		case entities.TimeMorning:
			return 0
		case entities.TimeDay:
			return 1
		case entities.TimeEvening:
			return 2
		default:
			return 3
		}
	case entities.RegionSinnoh:
		return (int(now.Month()) - 1) % 4
	case entities.RegionUnova:
		if entities.Band(now).IsDaytime() {
			return 0
		}
		return 1
	default:
		return 0
	}
}

// candidate is a population row with its tier-resolved rarity
type candidate struct {
	entry  catalog.PopulationEntry
	rarity int
}

// roll generates a wild creature, or nil when the location's
// population offers nothing at this field and level.
func (o *orchestrator) roll(ctx context.Context, t *entities.Trainer, lead *entities.Creature) (*entities.WildCreature, error) {
	population, err := o.locationCatalog.Population(ctx, string(t.Region), t.Location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load population for %s/%s", t.Region, t.Location)
	}

	tier := o.rarityTier(t.Region)

	var rare, common []candidate
	for _, entry := range population {
		if entry.Field != t.Field {
			continue
		}
		if entry.MinLevel > lead.Level {
			continue
		}
		switch entry.Condition {
		case catalog.ConditionSwarm:
			if t.ActiveSwarm != entry.Species {
				continue
			}
		case catalog.ConditionRadar:
			if !t.ActiveRadar {
				continue
			}
		}

		c := candidate{entry: entry, rarity: entry.RarityAt(tier)}
		if c.rarity <= rarePoolCeiling {
			rare = append(rare, c)
		} else {
			common = append(common, c)
		}
	}

	if len(rare) == 0 && len(common) == 0 {
		return nil, nil
	}

	var picked *candidate
	if len(rare) > 0 {
		sortByRarity(rare)
		picked = o.scan(rare, len(common) == 0)
	}
	if picked == nil {
		o.rng.Shuffle(len(common), func(i, j int) {
			common[i], common[j] = common[j], common[i]
		})
		picked = o.scan(common, true)
	}
	if picked == nil {
		return nil, nil
	}

	return o.materialize(ctx, picked, lead.Level)
}

// scan walks the pool accepting the first entry whose rarity beats an
// independent 0-100 roll. With fallback set, the last scanned entry
// wins when nothing hits.
func (o *orchestrator) scan(pool []candidate, fallback bool) *candidate {
	for i := range pool {
		if pool[i].rarity > o.rng.IntN(101) {
			return &pool[i]
		}
	}
	if fallback && len(pool) > 0 {
		return &pool[len(pool)-1]
	}
	return nil
}

func sortByRarity(pool []candidate) {
	// insertion sort; pools are a handful of rows
	for i := 1; i < len(pool); i++ {
		for j := i; j > 0 && pool[j].rarity < pool[j-1].rarity; j-- {
			pool[j], pool[j-1] = pool[j-1], pool[j]
		}
	}
}

// materialize rolls the individual: level within the entry's range
// capped by the lead, IVs, nature, gender, shininess, ability slot,
// and the species' last four level-up moves.
func (o *orchestrator) materialize(ctx context.Context, picked *candidate, leadLevel int) (*entities.WildCreature, error) {
	species, err := o.speciesCatalog.Species(ctx, picked.entry.Species)
	if err != nil {
		return nil, errors.Wrapf(err, "population references unknown species %s", picked.entry.Species)
	}

	maxLevel := picked.entry.MaxLevel
	if maxLevel > leadLevel {
		maxLevel = leadLevel
	}
	level := picked.entry.MinLevel
	if maxLevel > level {
		level += o.rng.IntN(maxLevel - level + 1)
	}

	wild := &entities.WildCreature{
		Species: species.Name,
		Form:    picked.entry.Form,
		Level:   level,
		Rarity:  picked.rarity,
		Nature:  entities.AllNatures[o.rng.IntN(len(entities.AllNatures))],
		Shiny:   o.rng.IntN(shinyDenominator) == 0,
	}
	for stat := entities.StatHP; stat <= entities.StatSpeed; stat++ {
		wild.IVs[stat] = o.rng.IntN(entities.MaxIV + 1)
	}

	wild.Gender = o.rollGender(species.GenderRatio)
	wild.Ability, wild.AbilitySlot = o.rollAbility(species.AbilitiesFor(wild.Form))

	wild.Stats = stats.Compute(stats.Input{
		Base:    species.BaseStats(wild.Form),
		IVs:     wild.IVs,
		Level:   wild.Level,
		Nature:  wild.Nature,
		Fragile: species.Fragile,
	})

	for i, name := range species.LevelUpMovesUpTo(wild.Form, wild.Level) {
		maxPP := 5
		if mv, err := o.moveCatalog.Move(ctx, name); err == nil {
			maxPP = mv.PP
		}
		wild.Moves[i] = entities.MoveSlot{Name: name, PP: maxPP, MaxPP: maxPP}
	}

	return wild, nil
}

func (o *orchestrator) rollGender(ratio float64) entities.Gender {
	if ratio < 0 {
		return entities.GenderGenderless
	}
	if o.rng.Float64() < ratio {
		return entities.GenderMale
	}
	return entities.GenderFemale
}

// rollAbility picks a regular slot uniformly, with a rare upgrade to
// the hidden slot when the species has one.
func (o *orchestrator) rollAbility(abilities []catalog.AbilityEntry) (string, int) {
	var regular, hidden []catalog.AbilityEntry
	for _, a := range abilities {
		if a.Hidden {
			hidden = append(hidden, a)
		} else {
			regular = append(regular, a)
		}
	}

	if len(hidden) > 0 && o.rng.IntN(hiddenAbilityDenominator) == 0 {
		return hidden[0].Name, len(regular)
	}
	if len(regular) == 0 {
		return "", 0
	}
	slot := o.rng.IntN(len(regular))
	return regular[slot].Name, slot
}
