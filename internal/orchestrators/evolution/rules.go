package evolution

import (
	"context"
	"strings"

	"github.com/fernway/kobold/internal/catalog"
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/repositories/trainer"
)

// checkEnv is the owner state trigger detection reads: trainer record,
// party, and the current time band.
type checkEnv struct {
	trainer *entities.Trainer
	party   []*entities.Creature
	band    entities.TimeOfDay
}

// buildEnv loads the owner state once per detection pass. A missing
// trainer record yields an empty environment rather than a failure so
// purely level-based rules still evaluate.
func (o *orchestrator) buildEnv(ctx context.Context, ownerID string) (*checkEnv, error) {
	env := &checkEnv{band: entities.Band(o.clock.Now())}

	trainerOutput, err := o.trainerRepo.Get(ctx, trainer.GetInput{ID: ownerID})
	if err != nil {
		if errors.IsNotFound(err) {
			return env, nil
		}
		return nil, errors.Wrap(err, "failed to load trainer")
	}
	env.trainer = trainerOutput.Trainer

	partyOutput, err := o.creatureRepo.ListByOwner(ctx, creature.ListByOwnerInput{OwnerID: ownerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load party")
	}
	env.party = partyOutput.Creatures

	return env, nil
}

// ruleSatisfied evaluates one generic catalog rule against the current
// trigger and owner state. Exactly the rule's set fields are required;
// Time and Gender gate whatever else the rule asks for.
func (o *orchestrator) ruleSatisfied(rule *catalog.EvolutionRule, env *checkEnv, c *entities.Creature, trigger Trigger, usedItem string) bool {
	// Trigger class must match the rule's shape first.
	switch {
	case rule.Trade:
		if trigger != TriggerTrade {
			return false
		}
	case rule.UseItem != "":
		if trigger != TriggerItemUse || !strings.EqualFold(rule.UseItem, usedItem) {
			return false
		}
	default:
		if trigger != TriggerLevelUp {
			return false
		}
	}

	if rule.Time != "" && !rule.Time.Matches(env.band) {
		return false
	}
	if rule.Gender != "" && rule.Gender != c.Gender {
		return false
	}

	if rule.Level != 0 && c.Level < rule.Level {
		return false
	}
	if rule.Friendship != 0 && c.Friendship < rule.Friendship {
		return false
	}
	if rule.HeldItem != "" && !strings.EqualFold(c.HeldItem, rule.HeldItem) {
		return false
	}
	if rule.KnownMove != "" && !c.Knows(rule.KnownMove) {
		return false
	}
	if rule.TradeFor != "" {
		// Species-pair trades are confirmed by the trade coordinator,
		// which records the counterpart species on the check input via
		// UsedItem; anything else fails the pair requirement.
		if !strings.EqualFold(rule.TradeFor, usedItem) {
			return false
		}
	}
	if rule.Location != "" {
		if env.trainer == nil || !strings.EqualFold(env.trainer.Location, rule.Location) {
			return false
		}
	}
	if rule.LocationKind != "" {
		if env.trainer == nil {
			return false
		}
		kind := o.locationKinds[strings.ToLower(env.trainer.Location)]
		if kind != rule.LocationKind {
			return false
		}
	}

	return true
}
