// Package moves implements the move-learn resolver: which moves a
// creature picks up at a level, and how the four-slot conflict is
// settled when its move list is already full.
package moves

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fernway/kobold/internal/catalog"
	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/messenger"
	"github.com/fernway/kobold/internal/registry"
)

//go:generate mockgen -destination=mock/mock_service.go -package=movesmock github.com/fernway/kobold/internal/orchestrators/moves Service

// DefaultTeachTimeout bounds the interactive slot prompt
const DefaultTeachTimeout = 3 * time.Minute

// Service defines the move-learn operations
type Service interface {
	// Resolve applies the learnset rows matching the given exact
	// level to the creature, settling full-list conflicts per Mode
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)
}

// Config holds the dependencies for the moves orchestrator
type Config struct {
	SpeciesCatalog catalog.SpeciesCatalog
	MoveCatalog    catalog.MoveCatalog
	Messenger      messenger.Messenger
	Registry       *registry.Registry
	TeachTimeout   time.Duration
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
	if c.Messenger == nil {
		vb.RequiredField("Messenger")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}

	return vb.Build()
}

type orchestrator struct {
	speciesCatalog catalog.SpeciesCatalog
	moveCatalog    catalog.MoveCatalog
	messenger      messenger.Messenger
	registry       *registry.Registry
	teachTimeout   time.Duration
}

// NewOrchestrator creates a new moves orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timeout := cfg.TeachTimeout
	if timeout == 0 {
		timeout = DefaultTeachTimeout
	}

	return &orchestrator{
		speciesCatalog: cfg.SpeciesCatalog,
		moveCatalog:    cfg.MoveCatalog,
		messenger:      cfg.Messenger,
		registry:       cfg.Registry,
		teachTimeout:   timeout,
	}, nil
}

// Resolve applies the learnset rows matching the creature's form and
// the given exact level.
func (o *orchestrator) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument("creature is required")
	}

	speciesName := input.Creature.Species
	if input.OnlySpecies != "" {
		speciesName = input.OnlySpecies
	}

	species, err := o.speciesCatalog.Species(ctx, speciesName)
	if err != nil {
		if errors.IsNotFound(err) {
			// Unknown species learns nothing; the caller carries on.
			return &ResolveOutput{}, nil
		}
		return nil, errors.Wrap(err, "failed to look up species")
	}

	output := &ResolveOutput{}
	for _, candidate := range species.LearnableAt(input.Creature.Form, input.Level) {
		if input.Creature.Knows(candidate) {
			continue
		}

		learned, err := o.learnOne(ctx, input.Creature, candidate, input.Mode)
		if err != nil {
			return nil, err
		}
		if learned {
			output.Learned = append(output.Learned, candidate)
		} else {
			output.Passed = append(output.Passed, candidate)
		}
	}

	return output, nil
}

// learnOne places one candidate move, resolving a full list per mode
func (o *orchestrator) learnOne(ctx context.Context, c *entities.Creature, candidateName string, mode Mode) (bool, error) {
	candidate, err := o.moveCatalog.Move(ctx, candidateName)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to look up move")
	}

	if slot := c.FirstEmptySlot(); slot >= 0 {
		c.Moves[slot] = entities.MoveSlot{Name: candidate.Name, PP: candidate.PP, MaxPP: candidate.PP}
		return true, nil
	}

	var slot int
	switch mode {
	case ModeHeuristic:
		slot, err = o.chooseSlotHeuristic(ctx, c, candidate)
	case ModeInteractive:
		slot, err = o.chooseSlotInteractive(ctx, c, candidate)
	default:
		return false, errors.InvalidArgumentf("unknown resolve mode %q", mode)
	}
	if err != nil {
		if errors.IsAbandoned(err) {
			return false, nil
		}
		return false, err
	}

	replaced := c.Moves[slot].Name
	c.Moves[slot] = entities.MoveSlot{Name: candidate.Name, PP: candidate.PP, MaxPP: candidate.PP}

	slog.Info("move learned",
		"creature_id", c.ID,
		"move", candidate.Name,
		"replaced", replaced,
		"mode", mode,
	)
	return true, nil
}

// chooseSlotInteractive suspends awaiting the owner's choice. Timeout
// and cancel both mean no move is learned; malformed input re-prompts
// with the same options.
func (o *orchestrator) chooseSlotInteractive(ctx context.Context, c *entities.Creature, candidate *catalog.Move) (int, error) {
	if err := o.registry.Lock(c.OwnerID, entities.ActivityTeachMove); err != nil {
		return 0, err
	}
	defer o.registry.Unlock(c.OwnerID)

	prompt := o.buildPrompt(c, candidate)
	for {
		if err := o.messenger.Send(ctx, c.OwnerID, prompt); err != nil {
			return 0, errors.Wrap(err, "failed to send teach prompt")
		}

		resp, err := o.messenger.Await(ctx, c.OwnerID, o.teachTimeout)
		if err != nil {
			return 0, errors.Wrap(err, "failed awaiting teach choice")
		}

		switch resp.Kind {
		case messenger.ResponseTimeout:
			return 0, errors.Timeout("teach prompt timed out")
		case messenger.ResponseCancel:
			return 0, errors.Canceled("teach prompt canceled")
		}

		if slot, ok := parseSlotChoice(c, resp.Text); ok {
			return slot, nil
		}
		// Unparseable selection is never terminal; go around again.
	}
}

// chooseSlotHeuristic scores each known move against the candidate
// and returns the highest-scoring slot.
func (o *orchestrator) chooseSlotHeuristic(ctx context.Context, c *entities.Creature, candidate *catalog.Move) (int, error) {
	species, err := o.speciesCatalog.Species(ctx, c.Species)
	if err != nil && !errors.IsNotFound(err) {
		return 0, errors.Wrap(err, "failed to look up species for scoring")
	}

	var types []string
	if species != nil {
		types = species.TypesFor(c.Form)
	}

	best := 0
	bestScore := scoreFloor
	for slot := 0; slot < entities.MaxMoves; slot++ {
		known, err := o.moveCatalog.Move(ctx, c.Moves[slot].Name)
		if err != nil {
			if errors.IsNotFound(err) {
				// A slot the catalog no longer knows is the cheapest
				// thing to give up.
				return slot, nil
			}
			return 0, errors.Wrap(err, "failed to look up known move")
		}

		if dominates(candidate, known) {
			return slot, nil
		}

		score := replacementScore(candidate, known, c, types)
		if score > bestScore {
			bestScore = score
			best = slot
		}
	}

	return best, nil
}

// buildPrompt renders the numbered slot list for the owner
func (o *orchestrator) buildPrompt(c *entities.Creature, candidate *catalog.Move) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s wants to learn %s, but it already knows 4 moves.\n", c.Species, candidate.Name)
	for i, m := range c.Moves {
		fmt.Fprintf(&b, "%d. %s\n", i+1, m.Name)
	}
	b.WriteString("Reply with a slot number or move name to forget, or cancel.")
	return b.String()
}

// parseSlotChoice accepts a slot number (1-4) or a known move's name
func parseSlotChoice(c *entities.Creature, text string) (int, bool) {
	text = strings.TrimSpace(text)

	if n, err := strconv.Atoi(text); err == nil {
		if n >= 1 && n <= entities.MaxMoves {
			return n - 1, true
		}
		return 0, false
	}

	for i, m := range c.Moves {
		if strings.EqualFold(m.Name, text) {
			return i, true
		}
	}
	return 0, false
}
