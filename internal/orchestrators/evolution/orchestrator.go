// Package evolution implements the evolution state machine: trigger
// detection across every method category, the pending-session
// lifecycle, and application of the mutation to a creature.
package evolution

import (
	"context"
	"log/slog"

	"github.com/fernway/kobold/internal/catalog"
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/orchestrators/moves"
	"github.com/fernway/kobold/internal/pkg/clock"
	"github.com/fernway/kobold/internal/pkg/idgen"
	"github.com/fernway/kobold/internal/registry"
	"github.com/fernway/kobold/internal/repositories/bag"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/repositories/trainer"
)

//go:generate mockgen -destination=mock/mock_service.go -package=evolutionmock github.com/fernway/kobold/internal/orchestrators/evolution Service

// Service defines the evolution operations
type Service interface {
	// Check runs trigger detection and reports the destination
	// species, or nil when no rule fires. Detection is pure: calling
	// it again with unchanged state yields the same target, which is
	// what makes pending sessions reconstructible.
	Check(ctx context.Context, input *CheckInput) (*CheckOutput, error)

	// Begin opens the pending-evolution session and flags the creature
	Begin(ctx context.Context, input *BeginInput) (*BeginOutput, error)

	// UseItem runs the item trigger for a creature, opening the
	// pending session when the item fires a rule
	UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error)

	// Accept applies the pending mutation
	Accept(ctx context.Context, input *AcceptInput) (*AcceptOutput, error)

	// Cancel clears the pending flag with no other side effects
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)

	// Rebuild reconstructs pending sessions from durable storage at
	// process start
	Rebuild(ctx context.Context, input *RebuildInput) (*RebuildOutput, error)
}

// Config holds the dependencies for the evolution orchestrator
type Config struct {
	SpeciesCatalog catalog.SpeciesCatalog
	CreatureRepo   creature.Repository
	TrainerRepo    trainer.Repository
	BagRepo        bag.Repository
	Registry       *registry.Registry
	MovesService   moves.Service
	Clock          clock.Clock
	IDGenerator    idgen.Generator

	// LocationKinds maps location names to their qualitative kind
	// ("magnetic", "mossy", "icy"), loaded from game data
	LocationKinds map[string]string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SpeciesCatalog == nil {
		vb.RequiredField("SpeciesCatalog")
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
	if c.MovesService == nil {
		vb.RequiredField("MovesService")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	speciesCatalog catalog.SpeciesCatalog
	creatureRepo   creature.Repository
	trainerRepo    trainer.Repository
	bagRepo        bag.Repository
	registry       *registry.Registry
	movesService   moves.Service
	clock          clock.Clock
	idGen          idgen.Generator
	locationKinds  map[string]string
}

// NewOrchestrator creates a new evolution orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		speciesCatalog: cfg.SpeciesCatalog,
		creatureRepo:   cfg.CreatureRepo,
		trainerRepo:    cfg.TrainerRepo,
		bagRepo:        cfg.BagRepo,
		registry:       cfg.Registry,
		movesService:   cfg.MovesService,
		clock:          cfg.Clock,
		idGen:          cfg.IDGenerator,
		locationKinds:  cfg.LocationKinds,
	}, nil
}

// Check runs trigger detection in priority order: registered special
// cases first, then the catalog's generic rule list in declaration
// order. The first satisfied rule wins.
func (o *orchestrator) Check(ctx context.Context, input *CheckInput) (*CheckOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument("creature is required")
	}

	env, err := o.buildEnv(ctx, input.Creature.OwnerID)
	if err != nil {
		return nil, err
	}

	if pred, ok := specialCases[input.Creature.Species]; ok {
		target, err := pred(ctx, o, env, input.Creature)
		if err != nil {
			return nil, err
		}
		if target != nil {
			return &CheckOutput{Target: target}, nil
		}
	}

	species, err := o.speciesCatalog.Species(ctx, input.Creature.Species)
	if err != nil {
		if errors.IsNotFound(err) {
			return &CheckOutput{}, nil
		}
		return nil, errors.Wrap(err, "failed to look up species")
	}

	for _, rule := range species.Evolutions {
		if o.ruleSatisfied(&rule, env, input.Creature, input.Trigger, input.UsedItem) {
			return &CheckOutput{Target: &Target{Species: rule.Target, Form: rule.TargetForm}}, nil
		}
	}

	return &CheckOutput{}, nil
}

// Begin opens the pending-evolution session. The evolving flag on the
// creature is the durable marker the session is rebuilt from.
func (o *orchestrator) Begin(ctx context.Context, input *BeginInput) (*BeginOutput, error) {
	if input.Creature == nil || input.Target == nil {
		return nil, errors.InvalidArgument("creature and target are required")
	}

	session := &entities.EvolutionSession{
		OwnerID:     input.Creature.OwnerID,
		CreatureID:  input.Creature.ID,
		FromSpecies: input.Creature.Species,
		FromForm:    input.Creature.Form,
		ToSpecies:   input.Target.Species,
		ToForm:      input.Target.Form,
		UsedItem:    input.UsedItem,
		StartedAt:   o.clock.Now(),
	}

	if err := o.registry.SetEvolution(session); err != nil {
		return nil, err
	}

	input.Creature.Evolving = true
	if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: input.Creature}); err != nil {
		o.registry.ClearEvolution(session.OwnerID)
		return nil, errors.Wrap(err, "failed to persist evolving flag")
	}

	slog.Info("evolution pending",
		"owner_id", session.OwnerID,
		"creature_id", session.CreatureID,
		"from", session.FromSpecies,
		"to", session.ToSpecies,
	)

	return &BeginOutput{Session: session}, nil
}

// UseItem runs the item trigger for a creature. The item must be in
// the owner's bag, but it is only spent once the session is accepted,
// so a canceled or restarted evolution never eats the stone.
func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error) {
	if input.CreatureID == "" || input.Item == "" {
		return nil, errors.InvalidArgument("creature id and item are required")
	}

	getOutput, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: input.CreatureID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load creature")
	}
	c := getOutput.Creature
	if input.OwnerID != "" && c.OwnerID != input.OwnerID {
		return nil, errors.NotFoundf("creature %s does not belong to trainer %s", input.CreatureID, input.OwnerID)
	}
	if err := o.registry.CheckAvailable(c.OwnerID); err != nil {
		return nil, err
	}

	if _, err := o.bagRepo.Get(ctx, bag.GetInput{OwnerID: c.OwnerID, Name: input.Item}); err != nil {
		return nil, errors.Wrapf(err, "failed to look up item %s", input.Item)
	}

	checked, err := o.Check(ctx, &CheckInput{
		Creature: c,
		Trigger:  TriggerItemUse,
		UsedItem: input.Item,
	})
	if err != nil {
		return nil, err
	}
	if checked.Target == nil {
		return nil, errors.FailedPreconditionf("%s has no effect on %s", input.Item, c.Species)
	}

	begun, err := o.Begin(ctx, &BeginInput{
		Creature: c,
		Target:   checked.Target,
		UsedItem: input.Item,
	})
	if err != nil {
		return nil, err
	}
	return &UseItemOutput{Session: begun.Session}, nil
}

// Accept applies the pending mutation and closes the session. The
// session is cleared as soon as the mutation is durable, before the
// move check, so an interactive teach prompt can take the owner's
// transaction lock.
func (o *orchestrator) Accept(ctx context.Context, input *AcceptInput) (*AcceptOutput, error) {
	session, ok := o.registry.Evolution(input.OwnerID)
	if !ok {
		return nil, errors.NotFound("no evolution is pending")
	}

	getOutput, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: session.CreatureID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load evolving creature")
	}
	c := getOutput.Creature

	moveMode := input.MoveMode
	if moveMode == "" {
		moveMode = moves.ModeInteractive
	}

	if err := o.apply(ctx, c, session); err != nil {
		return nil, err
	}
	o.registry.ClearEvolution(input.OwnerID)

	if session.UsedItem != "" {
		if _, err := o.bagRepo.Consume(ctx, bag.ConsumeInput{
			OwnerID:  c.OwnerID,
			Name:     session.UsedItem,
			Quantity: 1,
		}); err != nil {
			slog.Warn("failed to consume evolution item",
				"owner_id", c.OwnerID, "item", session.UsedItem, "error", err)
		}
	}

	if err := o.resolveDestinationMoves(ctx, c, moveMode); err != nil {
		// the mutation already committed; the move stays unlearned
		slog.Warn("post-evolution move check failed", "creature_id", c.ID, "error", err)
	}

	var spawned *entities.Creature
	if session.FromSpecies == linkedFromSpecies && c.Species == linkedMainSpecies {
		spawned, err = o.spawnLinked(ctx, c)
		if err != nil {
			slog.Error("linked spawn failed", "creature_id", c.ID, "error", err)
		}
	}

	slog.Info("evolution applied",
		"owner_id", session.OwnerID,
		"creature_id", c.ID,
		"species", c.Species,
		"form", c.Form,
	)

	return &AcceptOutput{Creature: c, Spawned: spawned}, nil
}

// Cancel clears the pending flag; nothing else changes
func (o *orchestrator) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	session, ok := o.registry.Evolution(input.OwnerID)
	if !ok {
		return nil, errors.NotFound("no evolution is pending")
	}

	getOutput, err := o.creatureRepo.Get(ctx, creature.GetInput{ID: session.CreatureID})
	if err == nil {
		c := getOutput.Creature
		c.Evolving = false
		if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: c}); err != nil {
			slog.Error("failed to clear evolving flag", "creature_id", c.ID, "error", err)
		}
	}

	o.registry.ClearEvolution(input.OwnerID)
	return &CancelOutput{}, nil
}

// Rebuild scans for creatures flagged evolving and re-derives their
// destination species with the same detection logic that chose it.
func (o *orchestrator) Rebuild(ctx context.Context, _ *RebuildInput) (*RebuildOutput, error) {
	listOutput, err := o.creatureRepo.ListEvolving(ctx, creature.ListEvolvingInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan evolving creatures")
	}

	output := &RebuildOutput{}
	for _, c := range listOutput.Creatures {
		target, usedItem, err := o.rederive(ctx, c)
		if err != nil {
			return nil, err
		}
		if target == nil {
			// State changed under the marker; drop it rather than
			// leave the owner stuck.
			c.Evolving = false
			if _, err := o.creatureRepo.Save(ctx, creature.SaveInput{Creature: c}); err != nil {
				slog.Error("failed to clear stale evolving flag", "creature_id", c.ID, "error", err)
			}
			continue
		}

		session := &entities.EvolutionSession{
			OwnerID:     c.OwnerID,
			CreatureID:  c.ID,
			FromSpecies: c.Species,
			FromForm:    c.Form,
			ToSpecies:   target.Species,
			ToForm:      target.Form,
			UsedItem:    usedItem,
			StartedAt:   o.clock.Now(),
		}
		if err := o.registry.SetEvolution(session); err != nil {
			slog.Error("duplicate evolving marker for owner", "owner_id", c.OwnerID, "error", err)
			continue
		}
		output.Sessions = append(output.Sessions, session)
	}

	slog.Info("rebuilt pending evolutions", "count", len(output.Sessions))
	return output, nil
}

// rederive retries each trigger class in priority order. The second
// return value names the item a re-derived item session still owes.
func (o *orchestrator) rederive(ctx context.Context, c *entities.Creature) (*Target, string, error) {
	for _, trigger := range []Trigger{TriggerLevelUp, TriggerTrade} {
		out, err := o.Check(ctx, &CheckInput{Creature: c, Trigger: trigger})
		if err != nil {
			return nil, "", err
		}
		if out.Target != nil {
			return out.Target, "", nil
		}
	}

	species, err := o.speciesCatalog.Species(ctx, c.Species)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, "", nil
		}
		return nil, "", errors.Wrap(err, "failed to look up species")
	}
	for _, rule := range species.Evolutions {
		var input *CheckInput
		switch {
		case rule.Trade && rule.TradeFor != "":
			// the counterpart species is gone by rebuild time; the
			// durable marker is taken as proof the pair held
			input = &CheckInput{Creature: c, Trigger: TriggerTrade, UsedItem: rule.TradeFor}
		case rule.UseItem != "":
			if _, err := o.bagRepo.Get(ctx, bag.GetInput{OwnerID: c.OwnerID, Name: rule.UseItem}); err != nil {
				if errors.IsNotFound(err) {
					continue
				}
				return nil, "", errors.Wrap(err, "failed to look up evolution item")
			}
			input = &CheckInput{Creature: c, Trigger: TriggerItemUse, UsedItem: rule.UseItem}
		default:
			continue
		}

		out, err := o.Check(ctx, input)
		if err != nil {
			return nil, "", err
		}
		if out.Target != nil {
			return out.Target, rule.UseItem, nil
		}
	}
	return nil, "", nil
}
