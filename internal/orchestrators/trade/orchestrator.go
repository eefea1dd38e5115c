// Package trade implements the two-party trade protocol: linked
// sessions, bounded accept and selection waits, dual confirmation,
// and the single atomic ownership swap.
package trade

import (
	"context"
	"time"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/messenger"
	"github.com/fernway/kobold/internal/orchestrators/evolution"
	"github.com/fernway/kobold/internal/pkg/clock"
	"github.com/fernway/kobold/internal/registry"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/repositories/trainer"
)

//go:generate mockgen -destination=mock/mock_service.go -package=trademock github.com/fernway/kobold/internal/orchestrators/trade Service

// Wait bounds for the protocol's suspension points
const (
	defaultAcceptTimeout    = 30 * time.Second
	defaultSelectTimeout    = 120 * time.Second
	defaultConfirmInterval  = time.Second
	defaultConfirmPollLimit = 60
)

// Service defines the trade operation
type Service interface {
	// Initiate runs the full protocol to completion or abort. Every
	// aborted path leaves ownership, lead flags, and session state
	// unchanged.
	Initiate(ctx context.Context, input *InitiateInput) (*InitiateOutput, error)
}

// Config holds the dependencies for the trade orchestrator
type Config struct {
	CreatureRepo     creature.Repository
	TrainerRepo      trainer.Repository
	Registry         *registry.Registry
	Messenger        messenger.Messenger
	EvolutionService evolution.Service
	Clock            clock.Clock

	// Zero values take the protocol defaults
	AcceptTimeout    time.Duration
	SelectTimeout    time.Duration
	ConfirmInterval  time.Duration
	ConfirmPollLimit int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CreatureRepo == nil {
		vb.RequiredField("CreatureRepo")
	}
	if c.TrainerRepo == nil {
		vb.RequiredField("TrainerRepo")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Messenger == nil {
		vb.RequiredField("Messenger")
	}
	if c.EvolutionService == nil {
		vb.RequiredField("EvolutionService")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	creatureRepo     creature.Repository
	trainerRepo      trainer.Repository
	registry         *registry.Registry
	messenger        messenger.Messenger
	evolutionService evolution.Service
	clock            clock.Clock

	acceptTimeout    time.Duration
	selectTimeout    time.Duration
	confirmInterval  time.Duration
	confirmPollLimit int
}

// New creates a trade orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &orchestrator{
		creatureRepo:     cfg.CreatureRepo,
		trainerRepo:      cfg.TrainerRepo,
		registry:         cfg.Registry,
		messenger:        cfg.Messenger,
		evolutionService: cfg.EvolutionService,
		clock:            cfg.Clock,
		acceptTimeout:    cfg.AcceptTimeout,
		selectTimeout:    cfg.SelectTimeout,
		confirmInterval:  cfg.ConfirmInterval,
		confirmPollLimit: cfg.ConfirmPollLimit,
	}
	if o.acceptTimeout == 0 {
		o.acceptTimeout = defaultAcceptTimeout
	}
	if o.selectTimeout == 0 {
		o.selectTimeout = defaultSelectTimeout
	}
	if o.confirmInterval == 0 {
		o.confirmInterval = defaultConfirmInterval
	}
	if o.confirmPollLimit == 0 {
		o.confirmPollLimit = defaultConfirmPollLimit
	}
	return o, nil
}

// validate checks the preconditions without creating any state
func (o *orchestrator) validate(ctx context.Context, input *InitiateInput) (*entities.Trainer, *entities.Trainer, error) {
	if input == nil {
		return nil, nil, errors.InvalidArgument("input is required")
	}
	if input.InitiatorID == "" || input.PartnerID == "" {
		return nil, nil, errors.InvalidArgument("both trainer ids are required")
	}
	if input.InitiatorID == input.PartnerID {
		return nil, nil, errors.InvalidArgument("cannot trade with yourself")
	}

	initiatorOut, err := o.trainerRepo.Get(ctx, trainer.GetInput{ID: input.InitiatorID})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get trainer %s", input.InitiatorID)
	}
	partnerOut, err := o.trainerRepo.Get(ctx, trainer.GetInput{ID: input.PartnerID})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get trainer %s", input.PartnerID)
	}

	if err := o.registry.CheckAvailable(input.InitiatorID); err != nil {
		return nil, nil, err
	}
	if err := o.registry.CheckAvailable(input.PartnerID); err != nil {
		return nil, nil, err
	}

	return initiatorOut.Trainer, partnerOut.Trainer, nil
}
