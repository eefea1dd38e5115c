package evolution

import (
	"context"
	"log/slog"

	"github.com/fernway/kobold/internal/engine/stats"
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/orchestrators/moves"
	"github.com/fernway/kobold/internal/repositories/bag"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/repositories/trainer"
)

// losesItemOnEvolution lists destination species that shed whatever
// the creature was holding, typically because the item powered the
// evolution itself.
var losesItemOnEvolution = map[string]bool{
	"steelix":  true,
	"scizor":   true,
	"kingdra":  true,
	"politoed": true,
	"slowking": true,
	"porygon2": true,
	"weavile":  true,
}

// The one species pair whose evolution splits into a second, linked
// creature when the owner holds a spare ball.
const (
	linkedFromSpecies  = "nincada"
	linkedMainSpecies  = "ninjask"
	linkedSpawnSpecies = "shedinja"
	linkedSpawnItem    = "poke ball"
)

// apply performs the durable mutation: species identity, ability,
// stats, held item, and the dex flag. Move learning and the linked
// spawn run afterward, once the session is closed.
func (o *orchestrator) apply(ctx context.Context, c *entities.Creature, session *entities.EvolutionSession) error {
	species, err := o.speciesCatalog.Species(ctx, session.ToSpecies)
	if err != nil {
		return errors.Wrap(err, "failed to look up destination species")
	}

	c.Species = session.ToSpecies
	c.Form = session.ToForm
	c.Evolving = false

	// Ability slot carries over; the name is re-read from the new
	// species' (possibly form-specific) table.
	abilities := species.AbilitiesFor(c.Form)
	if len(abilities) > 0 {
		slot := c.AbilitySlot
		if slot >= len(abilities) {
			slot = 0
			c.AbilitySlot = 0
		}
		c.Ability = abilities[slot].Name
	}

	c.Stats = stats.Compute(stats.Input{
		Base:    species.BaseStats(c.Form),
		IVs:     c.IVs,
		EVs:     c.EVs,
		Level:   c.Level,
		Nature:  c.Nature,
		Fragile: species.Fragile,
	})

	if losesItemOnEvolution[c.Species] {
		c.HeldItem = ""
	}

	if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: c}); err != nil {
		return errors.Wrap(err, "failed to persist evolution")
	}

	o.markDexOwned(ctx, c.OwnerID, species.NationalID)
	return nil
}

// resolveDestinationMoves runs the learn check gated on the species
// the creature just became.
func (o *orchestrator) resolveDestinationMoves(ctx context.Context, c *entities.Creature, moveMode moves.Mode) error {
	resolveOutput, err := o.movesService.Resolve(ctx, &moves.ResolveInput{
		Creature:    c,
		Level:       c.Level,
		Mode:        moveMode,
		OnlySpecies: c.Species,
	})
	if err != nil {
		return err
	}
	if len(resolveOutput.Learned) > 0 {
		if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: c}); err != nil {
			return errors.Wrap(err, "failed to persist post-evolution moves")
		}
	}
	return nil
}

// spawnLinked adds the split-off creature when the owner holds a
// spare consumable ball; holding none simply skips the spawn.
func (o *orchestrator) spawnLinked(ctx context.Context, c *entities.Creature) (*entities.Creature, error) {
	if _, err := o.bagRepo.Consume(ctx, bag.ConsumeInput{
		OwnerID:  c.OwnerID,
		Name:     linkedSpawnItem,
		Quantity: 1,
	}); err != nil {
		if errors.IsNotFound(err) || errors.IsFailedPrecondition(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to consume spawn ball")
	}

	species, err := o.speciesCatalog.Species(ctx, linkedSpawnSpecies)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up linked species")
	}

	spawn := &entities.Creature{
		ID:          o.idGen.Generate(),
		OwnerID:     c.OwnerID,
		Species:     species.Name,
		Level:       c.Level,
		Exp:         c.Exp,
		IVs:         c.IVs,
		EVs:         c.EVs,
		Nature:      c.Nature,
		Gender:      entities.GenderGenderless,
		Friendship:  species.BaseFriendship,
		Moves:       c.Moves,
		Origin:      c.Origin,
		AbilitySlot: 0,
	}
	abilities := species.AbilitiesFor("")
	if len(abilities) > 0 {
		spawn.Ability = abilities[0].Name
	}
	spawn.Stats = stats.Compute(stats.Input{
		Base:    species.BaseStats(""),
		IVs:     spawn.IVs,
		EVs:     spawn.EVs,
		Level:   spawn.Level,
		Nature:  spawn.Nature,
		Fragile: species.Fragile,
	})

	if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: spawn}); err != nil {
		return nil, errors.Wrap(err, "failed to save linked spawn")
	}

	o.markDexOwned(ctx, c.OwnerID, species.NationalID)

	slog.Info("linked creature spawned",
		"owner_id", c.OwnerID,
		"species", spawn.Species,
		"level", spawn.Level,
	)
	return spawn, nil
}

// markDexOwned flags the species owned in the trainer's dex. Failures
// are logged; the evolution itself already succeeded.
func (o *orchestrator) markDexOwned(ctx context.Context, ownerID string, nationalID int) {
	getOutput, err := o.trainerRepo.Get(ctx, trainer.GetInput{ID: ownerID})
	if err != nil {
		slog.Error("failed to load trainer for dex update", "owner_id", ownerID, "error", err)
		return
	}
	t := getOutput.Trainer
	t.SetDexFlag(nationalID, entities.DexOwned)
	if _, err := o.trainerRepo.Save(ctx, trainer.SaveInput{Trainer: t}); err != nil {
		slog.Error("failed to save dex update", "owner_id", ownerID, "error", err)
	}
}
