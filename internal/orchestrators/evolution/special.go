package evolution

import (
	"context"

	"github.com/fernway/kobold/internal/entities"
)

// predicate is one irregular trigger rule registered against its
// species. Predicates cover the method categories the generic rule
// list cannot express: time-gated friendship, time-and-level with
// form selection, party composition, stat comparison, and IV-derived
// branches. They run before the catalog rules and only on level-up.
type predicate func(ctx context.Context, o *orchestrator, env *checkEnv, c *entities.Creature) (*Target, error)

var specialCases = map[string]predicate{
	"eevee":    eeveeByFriendshipAndTime,
	"tyrogue":  tyrogueByStatComparison,
	"wurmple":  wurmpleByIVBranch,
	"mantyke":  mantykeByPartyComposition,
	"rockruff": rockruffByTimeAndLevel,
}

// eeveeByFriendshipAndTime: high friendship splits on the day/night
// band. Stone-based branches stay in the generic rule list.
func eeveeByFriendshipAndTime(_ context.Context, _ *orchestrator, env *checkEnv, c *entities.Creature) (*Target, error) {
	const friendshipThreshold = 220
	if c.Friendship < friendshipThreshold {
		return nil, nil
	}
	if env.band.IsDaytime() {
		return &Target{Species: "espeon"}, nil
	}
	return &Target{Species: "umbreon"}, nil
}

// tyrogueByStatComparison branches on attack versus defense at the
// level threshold.
func tyrogueByStatComparison(_ context.Context, _ *orchestrator, _ *checkEnv, c *entities.Creature) (*Target, error) {
	const levelThreshold = 20
	if c.Level < levelThreshold {
		return nil, nil
	}
	attack := c.Stats[entities.StatAttack]
	defense := c.Stats[entities.StatDefense]
	switch {
	case attack > defense:
		return &Target{Species: "hitmonlee"}, nil
	case attack < defense:
		return &Target{Species: "hitmonchan"}, nil
	default:
		return &Target{Species: "hitmontop"}, nil
	}
}

// wurmpleByIVBranch derives the branch from the IVs so the outcome is
// stable for the individual: re-running the check on an unchanged
// creature picks the same cocoon.
func wurmpleByIVBranch(_ context.Context, _ *orchestrator, _ *checkEnv, c *entities.Creature) (*Target, error) {
	const levelThreshold = 7
	if c.Level < levelThreshold {
		return nil, nil
	}
	if c.IVs.Sum()%10 <= 4 {
		return &Target{Species: "silcoon"}, nil
	}
	return &Target{Species: "cascoon"}, nil
}

// mantykeByPartyComposition requires a remoraid in the party
func mantykeByPartyComposition(_ context.Context, _ *orchestrator, env *checkEnv, _ *entities.Creature) (*Target, error) {
	for _, member := range env.party {
		if member.Species == "remoraid" {
			return &Target{Species: "mantine"}, nil
		}
	}
	return nil, nil
}

// rockruffByTimeAndLevel selects the destination form from the band
// at the moment the level threshold is crossed.
func rockruffByTimeAndLevel(_ context.Context, _ *orchestrator, env *checkEnv, c *entities.Creature) (*Target, error) {
	const levelThreshold = 25
	if c.Level < levelThreshold {
		return nil, nil
	}
	if env.band.IsDaytime() {
		return &Target{Species: "lycanroc", Form: "midday"}, nil
	}
	return &Target{Species: "lycanroc", Form: "midnight"}, nil
}
