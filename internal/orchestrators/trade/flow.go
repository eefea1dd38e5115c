package trade

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/messenger"
	"github.com/fernway/kobold/internal/orchestrators/evolution"
	"github.com/fernway/kobold/internal/repositories/creature"
)

func (o *orchestrator) Initiate(ctx context.Context, input *InitiateInput) (*InitiateOutput, error) {
	initiator, partner, err := o.validate(ctx, input)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	o.registry.SetTrade(&entities.TradeSession{
		OwnerID:   initiator.ID,
		PartnerID: partner.ID,
		StartedAt: now,
	})
	o.registry.SetTrade(&entities.TradeSession{
		OwnerID:   partner.ID,
		PartnerID: initiator.ID,
		StartedAt: now,
	})
	defer func() {
		o.registry.ClearTrade(initiator.ID)
		o.registry.ClearTrade(partner.ID)
	}()

	accepted, err := o.askAccept(ctx, initiator, partner)
	if err != nil {
		return nil, err
	}
	if !accepted {
		o.send(ctx, initiator.ID, fmt.Sprintf("%s declined the trade.", partner.Name))
		return &InitiateOutput{}, nil
	}

	initiatorOffer, err := o.selectCreature(ctx, initiator)
	if err != nil {
		if errors.IsAbandoned(err) {
			o.send(ctx, partner.ID, "The trade was called off.")
			return &InitiateOutput{}, nil
		}
		return nil, err
	}
	o.recordOffer(initiator.ID, partner.ID, initiatorOffer.Species)

	partnerOffer, err := o.selectCreature(ctx, partner)
	if err != nil {
		if errors.IsAbandoned(err) {
			o.send(ctx, initiator.ID, "The trade was called off.")
			return &InitiateOutput{}, nil
		}
		return nil, err
	}
	o.recordOffer(partner.ID, initiator.ID, partnerOffer.Species)

	if !o.confirmBoth(ctx, initiator, partner, initiatorOffer, partnerOffer) {
		o.send(ctx, initiator.ID, "The trade was not confirmed by both sides.")
		o.send(ctx, partner.ID, "The trade was not confirmed by both sides.")
		return &InitiateOutput{}, nil
	}

	if err := o.swap(ctx, initiator, partner, initiatorOffer, partnerOffer); err != nil {
		return nil, err
	}

	output := &InitiateOutput{
		Completed:         true,
		InitiatorReceived: partnerOffer,
		PartnerReceived:   initiatorOffer,
	}

	// trade-rule triggers run on each received creature against the
	// one given up for it; a fired rule opens a fresh pending session
	// for its new owner
	exchanges := []struct {
		received, counterpart *entities.Creature
	}{
		{partnerOffer, initiatorOffer},
		{initiatorOffer, partnerOffer},
	}
	for _, e := range exchanges {
		session := o.checkTradeEvolution(ctx, e.received, e.counterpart)
		if session != nil {
			output.EvolutionSessions = append(output.EvolutionSessions, session)
		}
	}

	slog.Info("trade completed",
		"initiator_id", initiator.ID,
		"partner_id", partner.ID,
		"initiator_received", partnerOffer.Species,
		"partner_received", initiatorOffer.Species)

	return output, nil
}

// askAccept prompts the counterpart; decline, cancel, and timeout all
// read as no.
func (o *orchestrator) askAccept(ctx context.Context, initiator, partner *entities.Trainer) (bool, error) {
	prompt := fmt.Sprintf("%s wants to trade with you. Accept? (yes/no)", initiator.Name)
	if err := o.messenger.Send(ctx, partner.ID, prompt); err != nil {
		return false, errors.Wrap(err, "failed to send trade offer")
	}

	resp, err := o.messenger.Await(ctx, partner.ID, o.acceptTimeout)
	if err != nil {
		return false, errors.Wrap(err, "failed awaiting trade accept")
	}
	if resp.Kind != messenger.ResponseAnswer {
		return false, nil
	}
	return isYes(resp.Text), nil
}

// selectCreature asks a trainer which of their creatures to offer.
// Unknown names re-prompt; an ambiguous name gets a numbered list.
// Creatures mid-evolution or placed in storage cannot be offered.
func (o *orchestrator) selectCreature(ctx context.Context, t *entities.Trainer) (*entities.Creature, error) {
	listed, err := o.creatureRepo.ListByOwner(ctx, creature.ListByOwnerInput{OwnerID: t.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list creatures for trainer %s", t.ID)
	}

	var tradable []*entities.Creature
	for _, c := range listed.Creatures {
		if c.Evolving || c.StorageTag != "" {
			continue
		}
		tradable = append(tradable, c)
	}
	if len(tradable) == 0 {
		return nil, errors.FailedPreconditionf("trainer %s has no tradable creature", t.ID)
	}

	if err := o.messenger.Send(ctx, t.ID, "Which creature will you offer? (name, or cancel)"); err != nil {
		return nil, errors.Wrap(err, "failed to send selection prompt")
	}

	for {
		resp, err := o.messenger.Await(ctx, t.ID, o.selectTimeout)
		if err != nil {
			return nil, errors.Wrap(err, "failed awaiting selection")
		}
		switch resp.Kind {
		case messenger.ResponseTimeout:
			return nil, errors.Timeout("selection timed out")
		case messenger.ResponseCancel:
			return nil, errors.Canceled("selection canceled")
		}

		var matches []*entities.Creature
		for _, c := range tradable {
			if strings.EqualFold(c.Species, strings.TrimSpace(resp.Text)) {
				matches = append(matches, c)
			}
		}

		switch len(matches) {
		case 0:
			o.send(ctx, t.ID, fmt.Sprintf("You have no creature named %q. Try again, or cancel.", strings.TrimSpace(resp.Text)))
		case 1:
			return matches[0], nil
		default:
			picked, err := o.disambiguate(ctx, t, matches)
			if err != nil {
				return nil, err
			}
			if picked != nil {
				return picked, nil
			}
			// fell through on a bad number; re-prompt by name
			o.send(ctx, t.ID, "Which creature will you offer? (name, or cancel)")
		}
	}
}

// disambiguate resolves a duplicate-name offer with a numbered list.
// A nil creature with a nil error means the reply was not a valid
// number and the caller should start over.
func (o *orchestrator) disambiguate(ctx context.Context, t *entities.Trainer, matches []*entities.Creature) (*entities.Creature, error) {
	var sb strings.Builder
	sb.WriteString("You have several. Which one?\n")
	for i, c := range matches {
		fmt.Fprintf(&sb, "%d) %s lv.%d", i+1, c.Species, c.Level)
		if c.Shiny {
			sb.WriteString(" (shiny)")
		}
		sb.WriteString("\n")
	}
	if err := o.messenger.Send(ctx, t.ID, sb.String()); err != nil {
		return nil, errors.Wrap(err, "failed to send disambiguation list")
	}

	resp, err := o.messenger.Await(ctx, t.ID, o.selectTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "failed awaiting disambiguation")
	}
	switch resp.Kind {
	case messenger.ResponseTimeout:
		return nil, errors.Timeout("selection timed out")
	case messenger.ResponseCancel:
		return nil, errors.Canceled("selection canceled")
	}

	n, err := strconv.Atoi(strings.TrimSpace(resp.Text))
	if err != nil || n < 1 || n > len(matches) {
		return nil, nil
	}
	return matches[n-1], nil
}

// confirmBoth echoes both offers and polls each side for a yes at a
// fixed interval. The poll budget is shared; silence after the last
// poll reads as no.
func (o *orchestrator) confirmBoth(ctx context.Context, initiator, partner *entities.Trainer, initiatorOffer, partnerOffer *entities.Creature) bool {
	o.send(ctx, initiator.ID, fmt.Sprintf("%s offers %s lv.%d for your %s lv.%d. Confirm? (yes/no)",
		partner.Name, partnerOffer.Species, partnerOffer.Level, initiatorOffer.Species, initiatorOffer.Level))
	o.send(ctx, partner.ID, fmt.Sprintf("%s offers %s lv.%d for your %s lv.%d. Confirm? (yes/no)",
		initiator.Name, initiatorOffer.Species, initiatorOffer.Level, partnerOffer.Species, partnerOffer.Level))

	confirmed := map[string]bool{}
	pending := []string{initiator.ID, partner.ID}

	for poll := 0; poll < o.confirmPollLimit && len(pending) > 0; poll++ {
		id := pending[0]
		resp, err := o.messenger.Await(ctx, id, o.confirmInterval)
		if err != nil {
			slog.Warn("confirm poll failed", "trainer_id", id, "error", err)
			return false
		}
		switch resp.Kind {
		case messenger.ResponseTimeout:
			// rotate so the other side's answer is consumed too
			pending = append(pending[1:], id)
		case messenger.ResponseCancel:
			return false
		case messenger.ResponseAnswer:
			if !isYes(resp.Text) {
				return false
			}
			confirmed[id] = true
			pending = pending[1:]
		}
	}

	return len(confirmed) == 2
}

// swap performs the one atomic ownership exchange. Lead flags move
// with the trade: a side that gave up its lead makes the received
// creature the new lead.
func (o *orchestrator) swap(ctx context.Context, initiator, partner *entities.Trainer, initiatorOffer, partnerOffer *entities.Creature) error {
	initiatorLedWithOffer := initiatorOffer.Lead
	partnerLedWithOffer := partnerOffer.Lead

	initiatorOffer.OwnerID = partner.ID
	partnerOffer.OwnerID = initiator.ID

	initiatorOffer.Lead = partnerLedWithOffer
	partnerOffer.Lead = initiatorLedWithOffer

	if initiatorLedWithOffer {
		initiator.LeadCreatureID = partnerOffer.ID
	}
	if partnerLedWithOffer {
		partner.LeadCreatureID = initiatorOffer.ID
	}

	_, err := o.creatureRepo.SwapOwners(ctx, creature.SwapOwnersInput{
		First:           initiatorOffer,
		Second:          partnerOffer,
		FirstTrainer:    partner,
		SecondTrainer:   initiator,
		FirstPrevOwner:  initiator.ID,
		SecondPrevOwner: partner.ID,
	})
	if err != nil {
		return errors.Wrap(err, "ownership swap failed")
	}
	return nil
}

// checkTradeEvolution runs the trade-rule trigger for one received
// creature, opening a pending session when a rule fires. The
// counterpart's species rides on the check input so species-pair
// rules can match it. Failures are logged; the trade itself already
// committed.
func (o *orchestrator) checkTradeEvolution(ctx context.Context, c, counterpart *entities.Creature) *entities.EvolutionSession {
	checked, err := o.evolutionService.Check(ctx, &evolution.CheckInput{
		Creature: c,
		Trigger:  evolution.TriggerTrade,
		UsedItem: counterpart.Species,
	})
	if err != nil {
		slog.Warn("trade evolution check failed", "creature_id", c.ID, "error", err)
		return nil
	}
	if checked.Target == nil {
		return nil
	}

	begun, err := o.evolutionService.Begin(ctx, &evolution.BeginInput{
		Creature: c,
		Target:   checked.Target,
	})
	if err != nil {
		slog.Warn("trade evolution begin failed", "creature_id", c.ID, "error", err)
		return nil
	}
	return begun.Session
}

// recordOffer writes a landed selection onto both registry records:
// the chooser's own half and the partner's view of it.
func (o *orchestrator) recordOffer(ownerID, partnerID, name string) {
	if session, ok := o.registry.Trade(ownerID); ok {
		session.OfferedName = name
		o.registry.SetTrade(session)
	}
	if session, ok := o.registry.Trade(partnerID); ok {
		session.PartnerOffered = name
		o.registry.SetTrade(session)
	}
}

// send is a best-effort notification; delivery failure is logged
func (o *orchestrator) send(ctx context.Context, playerID, text string) {
	if err := o.messenger.Send(ctx, playerID, text); err != nil {
		slog.Warn("failed to send trade message", "trainer_id", playerID, "error", err)
	}
}

func isYes(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y", "accept", "confirm", "ok":
		return true
	}
	return false
}
