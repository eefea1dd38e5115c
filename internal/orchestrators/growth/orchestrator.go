// Package growth implements the experience-award loop: curve lookup,
// multi-level awards, per-level stat recompute, friendship gain, and
// the per-level move-learn and evolution-trigger hooks.
package growth

import (
	"context"
	"log/slog"

	"github.com/fernway/kobold/internal/catalog"
	enginegrowth "github.com/fernway/kobold/internal/engine/growth"
	"github.com/fernway/kobold/internal/engine/stats"
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/orchestrators/evolution"
	"github.com/fernway/kobold/internal/orchestrators/moves"
	"github.com/fernway/kobold/internal/repositories/creature"
)

//go:generate mockgen -destination=mock/mock_service.go -package=growthmock github.com/fernway/kobold/internal/orchestrators/growth Service

// Service defines the experience operations
type Service interface {
	// AwardExperience adds experience and processes every pending
	// level-up, persisting once per level gained
	AwardExperience(ctx context.Context, input *AwardInput) (*AwardOutput, error)

	// ToNext reports the experience remaining before the next level
	ToNext(ctx context.Context, input *ToNextInput) (*ToNextOutput, error)
}

// Config holds the dependencies for the growth orchestrator
type Config struct {
	SpeciesCatalog   catalog.SpeciesCatalog
	ExperienceTable  catalog.ExperienceTable
	CreatureRepo     creature.Repository
	MovesService     moves.Service
	EvolutionService evolution.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SpeciesCatalog == nil {
		vb.RequiredField("SpeciesCatalog")
	}
	if c.ExperienceTable == nil {
		vb.RequiredField("ExperienceTable")
	}
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.MovesService == nil {
		vb.RequiredField("MovesService")
	}
	if c.EvolutionService == nil {
		vb.RequiredField("EvolutionService")
	}

	return vb.Build()
}

type orchestrator struct {
	speciesCatalog   catalog.SpeciesCatalog
	experienceTable  catalog.ExperienceTable
	creatureRepo     creature.Repository
	movesService     moves.Service
	evolutionService evolution.Service
}

// New creates a growth orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &orchestrator{
		speciesCatalog:   cfg.SpeciesCatalog,
		experienceTable:  cfg.ExperienceTable,
		creatureRepo:     cfg.CreatureRepo,
		movesService:     cfg.MovesService,
		evolutionService: cfg.EvolutionService,
	}, nil
}

func (o *orchestrator) AwardExperience(ctx context.Context, input *AwardInput) (*AwardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CreatureID == "" {
		return nil, errors.InvalidArgument("creature id is required")
	}
	if input.XP < 0 {
		return nil, errors.InvalidArgument("xp must not be negative")
	}

	got, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: input.CreatureID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get creature %s", input.CreatureID)
	}
	c := got.Creature

	species, err := o.speciesCatalog.Species(ctx, c.Species)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up species %s", c.Species)
	}

	table, err := o.experienceTable.Cumulative(species.GrowthRate)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve growth rate %q", species.GrowthRate)
	}

	c.Exp += input.XP

	moveMode := input.MoveMode
	if moveMode == "" {
		moveMode = moves.ModeInteractive
	}

	output := &AwardOutput{Creature: c}

	for c.Level < entities.MaxLevel && c.Exp >= table[c.Level+1] {
		c.Level++
		output.LevelsGained++

		c.Stats = stats.Compute(stats.Input{
			Base:    species.BaseStats(c.Form),
			IVs:     c.IVs,
			EVs:     c.EVs,
			Level:   c.Level,
			Nature:  c.Nature,
			Fragile: species.Fragile,
		})
		c.AddFriendship(friendshipGain(c.Friendship))

		if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: c}); err != nil {
			return nil, errors.Wrapf(err, "failed to save creature %s at level %d", c.ID, c.Level)
		}

		resolved, err := o.movesService.Resolve(ctx, &moves.ResolveInput{
			Creature: c,
			Level:    c.Level,
			Mode:     moveMode,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "move resolution failed at level %d", c.Level)
		}
		if len(resolved.Learned) > 0 {
			output.Learned = append(output.Learned, resolved.Learned...)
			if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: c}); err != nil {
				return nil, errors.Wrapf(err, "failed to save creature %s after learning", c.ID)
			}
		}

	}

	if output.LevelsGained > 0 {
		o.checkEvolution(ctx, c, output)
	}

	if output.LevelsGained == 0 {
		if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: c}); err != nil {
			return nil, errors.Wrapf(err, "failed to save creature %s", c.ID)
		}
	}

	slog.Info("experience awarded",
		"creature_id", c.ID,
		"xp", input.XP,
		"level", c.Level,
		"levels_gained", output.LevelsGained)

	return output, nil
}

func (o *orchestrator) ToNext(ctx context.Context, input *ToNextInput) (*ToNextOutput, error) {
	if input == nil || input.CreatureID == "" {
		return nil, errors.InvalidArgument("creature id is required")
	}

	got, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: input.CreatureID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get creature %s", input.CreatureID)
	}
	c := got.Creature

	species, err := o.speciesCatalog.Species(ctx, c.Species)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up species %s", c.Species)
	}

	table, err := o.experienceTable.Cumulative(species.GrowthRate)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve growth rate %q", species.GrowthRate)
	}

	return &ToNextOutput{Remaining: enginegrowth.XPToNext(table, c.Exp, c.Level)}, nil
}

// checkEvolution runs the level-up trigger once the award settles and
// opens the pending session when a rule fires. A creature already
// mid-evolution keeps its existing session. Failures are logged; the
// award itself already committed.
func (o *orchestrator) checkEvolution(ctx context.Context, c *entities.Creature, output *AwardOutput) {
	checked, err := o.evolutionService.Check(ctx, &evolution.CheckInput{
		Creature: c,
		Trigger:  evolution.TriggerLevelUp,
	})
	if err != nil {
		slog.Warn("evolution trigger check failed",
			"creature_id", c.ID,
			"level", c.Level,
			"error", err)
		return
	}
	if checked.Target == nil {
		return
	}
	output.EvolutionTarget = checked.Target

	if c.Evolving {
		return
	}
	if _, err := o.evolutionService.Begin(ctx, &evolution.BeginInput{
		Creature: c,
		Target:   checked.Target,
	}); err != nil {
		slog.Warn("failed to open pending evolution",
			"creature_id", c.ID,
			"error", err)
	}
}

// friendshipGain is the per-level-up bump, smaller as the bond grows
func friendshipGain(current int) int {
	switch {
	case current < 100:
		return 2
	case current < 200:
		return 1
	default:
		return 0
	}
}
