// Package encounter implements the wild-encounter flow: candidate
// generation from a location's population table and the per-throw
// capture resolution with its EV side effects.
package encounter

import (
	"context"
	"log/slog"

	"github.com/fernway/kobold/internal/catalog"
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/pkg/clock"
	"github.com/fernway/kobold/internal/pkg/idgen"
	"github.com/fernway/kobold/internal/pkg/rng"
	"github.com/fernway/kobold/internal/registry"
	"github.com/fernway/kobold/internal/repositories/bag"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/repositories/trainer"
)

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/fernway/kobold/internal/orchestrators/encounter Service

// Service defines the encounter operations
type Service interface {
	// Generate rolls a wild creature for the trainer's current
	// location and opens the encounter session. A nil session with a
	// nil error means nothing can appear here.
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)

	// ThrowBall resolves one capture attempt against the active
	// encounter
	ThrowBall(ctx context.Context, input *ThrowInput) (*ThrowOutput, error)

	// Flee resolves the active encounter with no effects
	Flee(ctx context.Context, input *FleeInput) (*FleeOutput, error)
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	SpeciesCatalog  catalog.SpeciesCatalog
	MoveCatalog     catalog.MoveCatalog
	LocationCatalog catalog.LocationCatalog
	CreatureRepo    creature.Repository
	TrainerRepo     trainer.Repository
	BagRepo         bag.Repository
	Registry        *registry.Registry
	Clock           clock.Clock
	IDGenerator     idgen.Generator
	RNG             rng.Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SpeciesCatalog == nil {
		vb.RequiredField("SpeciesCatalog")
	}
	if c.MoveCatalog == nil {
		vb.RequiredField("MoveCatalog")
	}
	if c.LocationCatalog == nil {
		vb.RequiredField("LocationCatalog")
	}
	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.TrainerRepo == nil {
		vb.RequiredField("TrainerRepo")
	}
	if c.BagRepo == nil {
		vb.RequiredField("BagRepo")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.RNG == nil {
		vb.RequiredField("RNG")
	}

	return vb.Build()
}

type orchestrator struct {
	speciesCatalog  catalog.SpeciesCatalog
	moveCatalog     catalog.MoveCatalog
	locationCatalog catalog.LocationCatalog
	creatureRepo    creature.Repository
	trainerRepo     trainer.Repository
	bagRepo         bag.Repository
	registry        *registry.Registry
	clock           clock.Clock
	idGen           idgen.Generator
	rng             rng.Source
}

// New creates an encounter orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &orchestrator{
		speciesCatalog:  cfg.SpeciesCatalog,
		moveCatalog:     cfg.MoveCatalog,
		locationCatalog: cfg.LocationCatalog,
		creatureRepo:    cfg.CreatureRepo,
		trainerRepo:     cfg.TrainerRepo,
		bagRepo:         cfg.BagRepo,
		registry:        cfg.Registry,
		clock:           cfg.Clock,
		idGen:           cfg.IDGenerator,
		rng:             cfg.RNG,
	}, nil
}

func (o *orchestrator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil || input.TrainerID == "" {
		return nil, errors.InvalidArgument("trainer id is required")
	}
	if err := o.registry.CheckAvailable(input.TrainerID); err != nil {
		return nil, err
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

	wild, err := o.roll(ctx, t, lead)
	if err != nil {
		return nil, err
	}
	if wild == nil {
		return &GenerateOutput{}, nil
	}

	session := &entities.EncounterSession{
		OwnerID:   t.ID,
		Wild:      wild,
		StartedAt: o.clock.Now(),
	}
	o.registry.SetEncounter(session)
	o.markDexSeen(ctx, t, wild.Species)

	slog.Info("encounter opened",
		"trainer_id", t.ID,
		"species", wild.Species,
		"level", wild.Level,
		"shiny", wild.Shiny)

	return &GenerateOutput{Session: session}, nil
}

func (o *orchestrator) Flee(ctx context.Context, input *FleeInput) (*FleeOutput, error) {
	if input == nil || input.TrainerID == "" {
		return nil, errors.InvalidArgument("trainer id is required")
	}
	if _, ok := o.registry.Encounter(input.TrainerID); !ok {
		return nil, errors.NotFoundf("no active encounter for trainer %s", input.TrainerID)
	}

	o.registry.ClearEncounter(input.TrainerID)
	slog.Info("encounter fled", "trainer_id", input.TrainerID)
	return &FleeOutput{}, nil
}

// leadCreature finds the trainer's lead by pointer first, falling back
// to the lead flag scan when the pointer is stale.
func (o *orchestrator) leadCreature(ctx context.Context, t *entities.Trainer) (*entities.Creature, error) {
	if t.LeadCreatureID != "" {
		got, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: t.LeadCreatureID})
		if err == nil {
			return got.Creature, nil
		}
		if !errors.IsNotFound(err) {
			return nil, errors.Wrapf(err, "failed to get lead creature %s", t.LeadCreatureID)
		}
	}

	listed, err := o.creatureRepo.ListByOwner(ctx, creature.ListByOwnerInput{OwnerID: t.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list creatures for trainer %s", t.ID)
	}
	for _, c := range listed.Creatures {
		if c.Lead {
			return c, nil
		}
	}
	return nil, errors.FailedPreconditionf("trainer %s has no lead creature", t.ID)
}

// markDexSeen records the species in the trainer's dex at seen level.
// Failures are logged; the encounter itself already opened.
func (o *orchestrator) markDexSeen(ctx context.Context, t *entities.Trainer, speciesName string) {
	species, err := o.speciesCatalog.Species(ctx, speciesName)
	if err != nil {
		slog.Warn("failed to look up species for dex update", "species", speciesName, "error", err)
		return
	}
	t.SetDexFlag(species.NationalID, entities.DexSeen)
	if _, err := o.trainerRepo.Save(ctx, trainer.SaveInput{Trainer: t}); err != nil {
		slog.Error("failed to save dex update", "trainer_id", t.ID, "error", err)
	}
}
