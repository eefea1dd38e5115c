package encounter

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/fernway/kobold/internal/catalog"
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/repositories/bag"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/repositories/trainer"
)

const (
	// baseCatchChance is the starting value every ball modifier
	// multiplies
	baseCatchChance = 30.0

	// shakeThreshold is what each of the four draws must reach
	shakeThreshold = 70

	requiredShakes = 4

	// friendBallFriendship overrides the species base seed
	friendBallFriendship = 150
	luxuryBallBonus      = 50

	evBoostItem = "macho brace"
)

// powerItems each add a flat bonus to one stat's yield
var powerItems = map[string]entities.Stat{
	"power weight": entities.StatHP,
	"power bracer": entities.StatAttack,
	"power belt":   entities.StatDefense,
	"power lens":   entities.StatSpAttack,
	"power band":   entities.StatSpDefense,
	"power anklet": entities.StatSpeed,
}

const powerItemBonus = 4

func (o *orchestrator) ThrowBall(ctx context.Context, input *ThrowInput) (*ThrowOutput, error) {
	if input == nil || input.TrainerID == "" {
		return nil, errors.InvalidArgument("trainer id is required")
	}
	if input.Ball == "" {
		return nil, errors.InvalidArgument("ball is required")
	}

	session, ok := o.registry.Encounter(input.TrainerID)
	if !ok {
		return nil, errors.NotFoundf("no active encounter for trainer %s", input.TrainerID)
	}

	trainerOut, err := o.trainerRepo.Get(ctx, trainer.GetInput{ID: input.TrainerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get trainer %s", input.TrainerID)
	}
	t := trainerOut.Trainer

	lead, err := o.leadCreature(ctx, t)
	if err != nil {
		return nil, err
	}

	// the ball is spent no matter how the throw resolves
	ballItem := string(input.Ball) + " ball"
	if _, err := o.bagRepo.Consume(ctx, bag.ConsumeInput{
		OwnerID:  t.ID,
		Name:     ballItem,
		Quantity: 1,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to consume %s", ballItem)
	}

	species, err := o.speciesCatalog.Species(ctx, session.Wild.Species)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up species %s", session.Wild.Species)
	}

	output := &ThrowOutput{}
	output.EVsApplied = o.awardEVs(ctx, session, species, lead)

	chance := baseCatchChance * o.ballModifier(input.Ball, session, species, t, lead)
	for i := 0; i < requiredShakes; i++ {
		draw := int(math.Ceil(o.rng.Float64() * float64(species.CatchRate)))
		if draw+int(chance) >= shakeThreshold {
			output.Shakes++
		}
	}

	switch output.Shakes {
	case requiredShakes:
		caught, err := o.promote(ctx, session.Wild, species, t, input.Ball)
		if err != nil {
			return nil, err
		}
		output.Outcome = OutcomeCaught
		output.Caught = caught
		o.registry.ClearEncounter(t.ID)
	case 0:
		output.Outcome = OutcomeBrokeFree
		o.nextTurn(session)
	default:
		output.Outcome = OutcomeNearMiss
		o.nextTurn(session)
	}

	slog.Info("ball thrown",
		"trainer_id", t.ID,
		"ball", input.Ball,
		"species", session.Wild.Species,
		"shakes", output.Shakes,
		"outcome", output.Outcome)

	return output, nil
}

func (o *orchestrator) nextTurn(session *entities.EncounterSession) {
	session.Turn++
	session.EVAwarded = false
	o.registry.SetEncounter(session)
}

// awardEVs grants the wild species' yield to the lead, at most once
// per encounter turn. Save failures are logged; the throw proceeds.
func (o *orchestrator) awardEVs(ctx context.Context, session *entities.EncounterSession, species *catalog.Species, lead *entities.Creature) entities.StatVector {
	var applied entities.StatVector
	if session.EVAwarded {
		return applied
	}
	session.EVAwarded = true
	o.registry.SetEncounter(session)

	award := species.EVYield
	held := strings.ToLower(lead.HeldItem)
	if held == evBoostItem {
		for stat := range award {
			award[stat] *= 2
		}
	}
	if stat, ok := powerItems[held]; ok {
		award[stat] += powerItemBonus
	}

	applied = lead.AddEVs(award)
	if applied.Sum() == 0 {
		return applied
	}
	if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: lead}); err != nil {
		slog.Error("failed to save lead after ev award", "creature_id", lead.ID, "error", err)
	}
	return applied
}

// ballModifier is the multiplier a ball applies to the catch chance.
// Tiered balls are flat; situational balls read the encounter state.
func (o *orchestrator) ballModifier(ball entities.Ball, session *entities.EncounterSession, species *catalog.Species, t *entities.Trainer, lead *entities.Creature) float64 {
	wild := session.Wild
	switch ball {
	case entities.BallGreat:
		return 1.5
	case entities.BallUltra:
		return 2.0
	case entities.BallMaster:
		// always four shakes
		return 1000.0
	case entities.BallNet:
		if speciesHasType(species, wild.Form, "bug") || speciesHasType(species, wild.Form, "water") {
			return 3.0
		}
	case entities.BallNest:
		if wild.Level < 20 {
			return float64(40-wild.Level) / 10.0
		}
	case entities.BallDive:
		if t.Field == entities.FieldDive || t.Field == entities.FieldSurf {
			return 3.5
		}
	case entities.BallRepeat:
		if t.DexFlag(species.NationalID) == entities.DexOwned {
			return 3.0
		}
	case entities.BallTimer:
		m := 1.0 + float64(session.Turn)*0.3
		if m > 4.0 {
			m = 4.0
		}
		return m
	case entities.BallQuick:
		if session.Turn == 0 {
			return 5.0
		}
	case entities.BallDusk:
		if !entities.Band(o.clock.Now()).IsDaytime() {
			return 3.0
		}
	case entities.BallLevel:
		switch ratio := float64(lead.Level) / float64(wild.Level); {
		case ratio >= 4:
			return 8.0
		case ratio >= 2:
			return 4.0
		case ratio > 1:
			return 2.0
		}
	case entities.BallLure:
		switch t.Field {
		case entities.FieldOldRod, entities.FieldGoodRod, entities.FieldSuperRod:
			return 3.0
		}
	case entities.BallMoon:
		for _, rule := range species.Evolutions {
			if strings.EqualFold(rule.UseItem, "moon stone") {
				return 4.0
			}
		}
	case entities.BallLove:
		if wild.Species == lead.Species && oppositeGenders(wild.Gender, lead.Gender) {
			return 8.0
		}
	case entities.BallHeavy:
		switch {
		case species.Weight >= 300:
			return 2.0
		case species.Weight >= 200:
			return 1.5
		case species.Weight >= 100:
			return 1.2
		}
	case entities.BallFast:
		if species.BaseStats(wild.Form)[entities.StatSpeed] >= 100 {
			return 4.0
		}
	}
	return 1.0
}

func speciesHasType(species *catalog.Species, form, typeName string) bool {
	for _, te := range species.TypesFor(form) {
		if strings.EqualFold(te, typeName) {
			return true
		}
	}
	return false
}

func oppositeGenders(a, b entities.Gender) bool {
	return (a == entities.GenderMale && b == entities.GenderFemale) ||
		(a == entities.GenderFemale && b == entities.GenderMale)
}

// promote turns the wild creature into an owned record with origin
// metadata and ball-seeded friendship, and marks the dex owned.
func (o *orchestrator) promote(ctx context.Context, wild *entities.WildCreature, species *catalog.Species, t *entities.Trainer, ball entities.Ball) (*entities.Creature, error) {
	friendship := species.BaseFriendship
	switch ball {
	case entities.BallFriend:
		friendship = friendBallFriendship
	case entities.BallLuxury:
		friendship += luxuryBallBonus
	}
	if friendship > entities.MaxFriendship {
		friendship = entities.MaxFriendship
	}

	c := &entities.Creature{
		ID:          o.idGen.Generate(),
		OwnerID:     t.ID,
		Species:     wild.Species,
		Form:        wild.Form,
		Level:       wild.Level,
		IVs:         wild.IVs,
		Stats:       wild.Stats,
		Nature:      wild.Nature,
		Ability:     wild.Ability,
		AbilitySlot: wild.AbilitySlot,
		Gender:      wild.Gender,
		Shiny:       wild.Shiny,
		Friendship:  friendship,
		Moves:       wild.Moves,
		Origin: entities.Origin{
			Trainer:  t.Name,
			CaughtAt: o.clock.Now(),
			Location: t.Location,
			Ball:     ball,
			LevelMet: wild.Level,
		},
	}

	if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: c}); err != nil {
		return nil, errors.Wrapf(err, "failed to save captured creature %s", c.ID)
	}

	t.SetDexFlag(species.NationalID, entities.DexOwned)
	if _, err := o.trainerRepo.Save(ctx, trainer.SaveInput{Trainer: t}); err != nil {
		slog.Error("failed to save dex update", "trainer_id", t.ID, "error", err)
	}

	return c, nil
}
