package evolution_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/messenger"
	messengermock "github.com/fernway/kobold/internal/messenger/mock"
	"github.com/fernway/kobold/internal/orchestrators/evolution"
	"github.com/fernway/kobold/internal/orchestrators/moves"
	"github.com/fernway/kobold/internal/pkg/clock"
	"github.com/fernway/kobold/internal/pkg/idgen"
	"github.com/fernway/kobold/internal/registry"
	"github.com/fernway/kobold/internal/repositories/bag"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/repositories/trainer"
	"github.com/fernway/kobold/internal/testutils"
)

var (
	noonClock     = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	midnightClock = time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	cleanup      func()
	creatureRepo creature.Repository
	trainerRepo  trainer.Repository
	bagRepo      bag.Repository
	registry     *registry.Registry
	messenger    *messengermock.MockMessenger
	service      evolution.Service
	ctx          context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.buildService(noonClock)
}

// buildService wires the orchestrator against a fixed wall clock so
// time-banded rules are reproducible.
func (s *OrchestratorTestSuite) buildService(now time.Time) {
	if s.cleanup != nil {
		s.cleanup()
	}
	s.ctrl = gomock.NewController(s.T())
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	var err error
	s.creatureRepo, err = creature.NewRedisRepository(&creature.Config{Client: client})
	s.Require().NoError(err)
	s.trainerRepo, err = trainer.NewRedisRepository(&trainer.Config{Client: client})
	s.Require().NoError(err)
	s.bagRepo, err = bag.NewRedisRepository(&bag.Config{Client: client})
	s.Require().NoError(err)

	fixed := clock.NewFixed(now)
	s.registry = registry.New(fixed)
	cat := testutils.CreateTestCatalog()

	s.messenger = messengermock.NewMockMessenger(s.ctrl)
	movesService, err := moves.NewOrchestrator(&moves.Config{
		SpeciesCatalog: cat,
		MoveCatalog:    cat,
		Messenger:      s.messenger,
		Registry:       s.registry,
	})
	s.Require().NoError(err)

	s.service, err = evolution.NewOrchestrator(&evolution.Config{
		SpeciesCatalog: cat,
		CreatureRepo:   s.creatureRepo,
		TrainerRepo:    s.trainerRepo,
		BagRepo:        s.bagRepo,
		Registry:       s.registry,
		MovesService:   movesService,
		Clock:          fixed,
		IDGenerator:    idgen.NewSequential("creature"),
	})
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.cleanup()
	s.cleanup = nil
}

func (s *OrchestratorTestSuite) saveTrainer() {
	t := testutils.CreateTestTrainer(testutils.TestTrainerID)
	_, err := s.trainerRepo.Save(s.ctx, trainer.SaveInput{Trainer: t})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestCheckLevelRule() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Level(16).Build()

	out, err := s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerLevelUp})
	s.Require().NoError(err)
	s.Require().NotNil(out.Target)
	s.Equal("ivysaur", out.Target.Species)
}

func (s *OrchestratorTestSuite) TestCheckLevelRuleBelowThreshold() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Level(15).Build()

	out, err := s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerLevelUp})
	s.Require().NoError(err)
	s.Nil(out.Target)
}

func (s *OrchestratorTestSuite) TestCheckTradeRule() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("haunter").Level(30).Build()

	out, err := s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerTrade})
	s.Require().NoError(err)
	s.Require().NotNil(out.Target)
	s.Equal("gengar", out.Target.Species)

	// the trade shape never fires on level-up
	out, err = s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerLevelUp})
	s.Require().NoError(err)
	s.Nil(out.Target)
}

func (s *OrchestratorTestSuite) TestCheckTradeHeldItemRule() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("onix").Level(30).Build()

	out, err := s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerTrade})
	s.Require().NoError(err)
	s.Nil(out.Target)

	c.HeldItem = "metal coat"
	out, err = s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerTrade})
	s.Require().NoError(err)
	s.Require().NotNil(out.Target)
	s.Equal("steelix", out.Target.Species)
}

func (s *OrchestratorTestSuite) TestCheckItemUseRule() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("eevee").Level(10).Build()

	out, err := s.service.Check(s.ctx, &evolution.CheckInput{
		Creature: c,
		Trigger:  evolution.TriggerItemUse,
		UsedItem: "water stone",
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Target)
	s.Equal("vaporeon", out.Target.Species)

	out, err = s.service.Check(s.ctx, &evolution.CheckInput{
		Creature: c,
		Trigger:  evolution.TriggerItemUse,
		UsedItem: "leaf stone",
	})
	s.Require().NoError(err)
	s.Nil(out.Target)
}

func (s *OrchestratorTestSuite) TestEeveeFriendshipSplitsOnTimeBand() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("eevee").Friendship(250).Build()

	out, err := s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerLevelUp})
	s.Require().NoError(err)
	s.Require().NotNil(out.Target)
	s.Equal("espeon", out.Target.Species)

	s.buildService(midnightClock)
	s.saveTrainer()
	out, err = s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerLevelUp})
	s.Require().NoError(err)
	s.Require().NotNil(out.Target)
	s.Equal("umbreon", out.Target.Species)
}

func (s *OrchestratorTestSuite) TestTyrogueStatComparison() {
	s.saveTrainer()

	cases := []struct {
		attack, defense int
		want            string
	}{
		{40, 30, "hitmonlee"},
		{30, 40, "hitmonchan"},
		{35, 35, "hitmontop"},
	}
	for _, tc := range cases {
		c := testutils.NewCreature("c1", testutils.TestTrainerID).
			Species("tyrogue").
			Level(20).
			Stats(entities.StatVector{50, tc.attack, tc.defense, 35, 35, 35}).
			Build()

		out, err := s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerLevelUp})
		s.Require().NoError(err)
		s.Require().NotNil(out.Target)
		s.Equal(tc.want, out.Target.Species)
	}
}

func (s *OrchestratorTestSuite) TestWurmpleBranchIsStablePerIndividual() {
	s.saveTrainer()
	silcoon := testutils.NewCreature("c1", testutils.TestTrainerID).
		Species("wurmple").
		Level(7).
		IVs(entities.StatVector{0, 0, 0, 0, 0, 4}).
		Build()
	cascoon := testutils.NewCreature("c2", testutils.TestTrainerID).
		Species("wurmple").
		Level(7).
		IVs(entities.StatVector{0, 0, 0, 0, 0, 5}).
		Build()

	for i := 0; i < 3; i++ {
		out, err := s.service.Check(s.ctx, &evolution.CheckInput{Creature: silcoon, Trigger: evolution.TriggerLevelUp})
		s.Require().NoError(err)
		s.Require().NotNil(out.Target)
		s.Equal("silcoon", out.Target.Species)

		out, err = s.service.Check(s.ctx, &evolution.CheckInput{Creature: cascoon, Trigger: evolution.TriggerLevelUp})
		s.Require().NoError(err)
		s.Require().NotNil(out.Target)
		s.Equal("cascoon", out.Target.Species)
	}
}

func (s *OrchestratorTestSuite) TestBeginAcceptAppliesMutation() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Level(16).Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	_, err = s.service.Begin(s.ctx, &evolution.BeginInput{
		Creature: c,
		Target:   &evolution.Target{Species: "ivysaur"},
	})
	s.Require().NoError(err)
	s.True(c.Evolving)
	s.Error(s.registry.CheckAvailable(testutils.TestTrainerID))

	out, err := s.service.Accept(s.ctx, &evolution.AcceptInput{
		OwnerID:  testutils.TestTrainerID,
		MoveMode: moves.ModeHeuristic,
	})
	s.Require().NoError(err)
	s.Equal("ivysaur", out.Creature.Species)
	s.False(out.Creature.Evolving)
	s.Nil(out.Spawned)

	// stats are recomputed against the destination base block
	s.Equal(47, out.Creature.Stats[entities.StatHP])
	s.Equal(27, out.Creature.Stats[entities.StatAttack])

	// destination-gated move check picked up the level-16 row
	s.True(out.Creature.Knows("razor leaf"))

	// session closed, dex updated
	s.NoError(s.registry.CheckAvailable(testutils.TestTrainerID))
	got, err := s.trainerRepo.Get(s.ctx, trainer.GetInput{ID: testutils.TestTrainerID})
	s.Require().NoError(err)
	s.Equal(rune(entities.DexOwned), got.Trainer.DexFlag(2))
}

func (s *OrchestratorTestSuite) TestAcceptWithFullMovesetPromptsInteractively() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(16).
		Moves("tackle", "growl", "leech seed", "poison powder").
		Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	_, err = s.service.Begin(s.ctx, &evolution.BeginInput{
		Creature: c,
		Target:   &evolution.Target{Species: "ivysaur"},
	})
	s.Require().NoError(err)

	// the teach prompt must be reachable even though this owner just
	// held the evolution session
	s.messenger.EXPECT().
		Send(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(nil)
	s.messenger.EXPECT().
		Await(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(messenger.Response{Kind: messenger.ResponseAnswer, Text: "1"}, nil)

	out, err := s.service.Accept(s.ctx, &evolution.AcceptInput{OwnerID: testutils.TestTrainerID})
	s.Require().NoError(err)
	s.Equal("ivysaur", out.Creature.Species)
	s.Equal("razor leaf", out.Creature.Moves[0].Name)
	s.NoError(s.registry.CheckAvailable(testutils.TestTrainerID))

	got, err := s.creatureRepo.Get(s.ctx, creature.GetInput{ID: "c1"})
	s.Require().NoError(err)
	s.True(got.Creature.Knows("razor leaf"))
	s.False(got.Creature.Evolving)
}

func (s *OrchestratorTestSuite) TestCheckTradePairRule() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("shelmet").Level(20).Build()

	// a plain trade is not enough for a species-pair rule
	out, err := s.service.Check(s.ctx, &evolution.CheckInput{Creature: c, Trigger: evolution.TriggerTrade})
	s.Require().NoError(err)
	s.Nil(out.Target)

	out, err = s.service.Check(s.ctx, &evolution.CheckInput{
		Creature: c,
		Trigger:  evolution.TriggerTrade,
		UsedItem: "karrablast",
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Target)
	s.Equal("accelgor", out.Target.Species)
}

func (s *OrchestratorTestSuite) TestUseItemOpensSession() {
	s.saveTrainer()
	_, err := s.bagRepo.Add(s.ctx, bag.AddInput{
		OwnerID:  testutils.TestTrainerID,
		Name:     "water stone",
		Quantity: 1,
		Category: "evolution",
	})
	s.Require().NoError(err)

	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("eevee").Level(10).Build()
	_, err = s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	out, err := s.service.UseItem(s.ctx, &evolution.UseItemInput{
		OwnerID:    testutils.TestTrainerID,
		CreatureID: "c1",
		Item:       "water stone",
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Session)
	s.Equal("vaporeon", out.Session.ToSpecies)
	s.Equal("water stone", out.Session.UsedItem)

	// the stone stays in the bag until the session is accepted
	_, err = s.bagRepo.Get(s.ctx, bag.GetInput{OwnerID: testutils.TestTrainerID, Name: "water stone"})
	s.Require().NoError(err)

	accepted, err := s.service.Accept(s.ctx, &evolution.AcceptInput{
		OwnerID:  testutils.TestTrainerID,
		MoveMode: moves.ModeHeuristic,
	})
	s.Require().NoError(err)
	s.Equal("vaporeon", accepted.Creature.Species)

	_, err = s.bagRepo.Get(s.ctx, bag.GetInput{OwnerID: testutils.TestTrainerID, Name: "water stone"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestUseItemWithoutEffect() {
	s.saveTrainer()
	_, err := s.bagRepo.Add(s.ctx, bag.AddInput{
		OwnerID:  testutils.TestTrainerID,
		Name:     "water stone",
		Quantity: 1,
		Category: "evolution",
	})
	s.Require().NoError(err)

	c := testutils.NewCreature("c1", testutils.TestTrainerID).Level(10).Build()
	_, err = s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	_, err = s.service.UseItem(s.ctx, &evolution.UseItemInput{
		OwnerID:    testutils.TestTrainerID,
		CreatureID: "c1",
		Item:       "water stone",
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	// a dud use keeps the stone
	_, err = s.bagRepo.Get(s.ctx, bag.GetInput{OwnerID: testutils.TestTrainerID, Name: "water stone"})
	s.Require().NoError(err)
	s.NoError(s.registry.CheckAvailable(testutils.TestTrainerID))
}

func (s *OrchestratorTestSuite) TestUseItemNotHeld() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("eevee").Level(10).Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	_, err = s.service.UseItem(s.ctx, &evolution.UseItemInput{
		OwnerID:    testutils.TestTrainerID,
		CreatureID: "c1",
		Item:       "water stone",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.NoError(s.registry.CheckAvailable(testutils.TestTrainerID))
}

func (s *OrchestratorTestSuite) TestAcceptWithoutSession() {
	_, err := s.service.Accept(s.ctx, &evolution.AcceptInput{OwnerID: testutils.TestTrainerID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestCancelClearsFlagAndSession() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Level(16).Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	_, err = s.service.Begin(s.ctx, &evolution.BeginInput{
		Creature: c,
		Target:   &evolution.Target{Species: "ivysaur"},
	})
	s.Require().NoError(err)

	_, err = s.service.Cancel(s.ctx, &evolution.CancelInput{OwnerID: testutils.TestTrainerID})
	s.Require().NoError(err)

	got, err := s.creatureRepo.Get(s.ctx, creature.GetInput{ID: "c1"})
	s.Require().NoError(err)
	s.Equal("bulbasaur", got.Creature.Species)
	s.False(got.Creature.Evolving)
	s.NoError(s.registry.CheckAvailable(testutils.TestTrainerID))
}

func (s *OrchestratorTestSuite) TestSecondSessionForOwnerRejected() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Level(16).Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	_, err = s.service.Begin(s.ctx, &evolution.BeginInput{
		Creature: c,
		Target:   &evolution.Target{Species: "ivysaur"},
	})
	s.Require().NoError(err)

	other := testutils.NewCreature("c2", testutils.TestTrainerID).Species("haunter").Level(30).Build()
	_, err = s.service.Begin(s.ctx, &evolution.BeginInput{
		Creature: other,
		Target:   &evolution.Target{Species: "gengar"},
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestRebuildRederivesPendingSessions() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Level(16).Evolving().Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	out, err := s.service.Rebuild(s.ctx, &evolution.RebuildInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 1)
	s.Equal("ivysaur", out.Sessions[0].ToSpecies)
	s.Equal("c1", out.Sessions[0].CreatureID)

	session, ok := s.registry.Evolution(testutils.TestTrainerID)
	s.True(ok)
	s.Equal("ivysaur", session.ToSpecies)
}

func (s *OrchestratorTestSuite) TestRebuildDropsStaleMarker() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Level(10).Evolving().Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	out, err := s.service.Rebuild(s.ctx, &evolution.RebuildInput{})
	s.Require().NoError(err)
	s.Empty(out.Sessions)

	got, err := s.creatureRepo.Get(s.ctx, creature.GetInput{ID: "c1"})
	s.Require().NoError(err)
	s.False(got.Creature.Evolving)
}

func (s *OrchestratorTestSuite) TestRebuildRederivesItemSession() {
	s.saveTrainer()
	_, err := s.bagRepo.Add(s.ctx, bag.AddInput{
		OwnerID:  testutils.TestTrainerID,
		Name:     "water stone",
		Quantity: 1,
		Category: "evolution",
	})
	s.Require().NoError(err)

	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("eevee").Level(10).Evolving().Build()
	_, err = s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	out, err := s.service.Rebuild(s.ctx, &evolution.RebuildInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 1)
	s.Equal("vaporeon", out.Sessions[0].ToSpecies)
	s.Equal("water stone", out.Sessions[0].UsedItem)
}

func (s *OrchestratorTestSuite) TestRebuildRederivesPairTradeSession() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("shelmet").Level(20).Evolving().Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	out, err := s.service.Rebuild(s.ctx, &evolution.RebuildInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 1)
	s.Equal("accelgor", out.Sessions[0].ToSpecies)
	s.Empty(out.Sessions[0].UsedItem)
}

func (s *OrchestratorTestSuite) TestLinkedSpawnConsumesSpareBall() {
	s.saveTrainer()
	_, err := s.bagRepo.Add(s.ctx, bag.AddInput{
		OwnerID:  testutils.TestTrainerID,
		Name:     "poke ball",
		Quantity: 1,
		Category: "ball",
	})
	s.Require().NoError(err)

	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("nincada").Level(20).Build()
	_, err = s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	_, err = s.service.Begin(s.ctx, &evolution.BeginInput{
		Creature: c,
		Target:   &evolution.Target{Species: "ninjask"},
	})
	s.Require().NoError(err)

	out, err := s.service.Accept(s.ctx, &evolution.AcceptInput{
		OwnerID:  testutils.TestTrainerID,
		MoveMode: moves.ModeHeuristic,
	})
	s.Require().NoError(err)
	s.Equal("ninjask", out.Creature.Species)
	s.Require().NotNil(out.Spawned)
	s.Equal("shedinja", out.Spawned.Species)
	s.Equal(entities.GenderGenderless, out.Spawned.Gender)
	s.Equal(out.Creature.Level, out.Spawned.Level)

	// the fragile destination pins HP to 1
	s.Equal(1, out.Spawned.Stats[entities.StatHP])

	// the spare ball was spent
	_, err = s.bagRepo.Get(s.ctx, bag.GetInput{OwnerID: testutils.TestTrainerID, Name: "poke ball"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestLinkedSpawnSkippedWithoutBall() {
	s.saveTrainer()
	c := testutils.NewCreature("c1", testutils.TestTrainerID).Species("nincada").Level(20).Build()
	_, err := s.creatureRepo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	_, err = s.service.Begin(s.ctx, &evolution.BeginInput{
		Creature: c,
		Target:   &evolution.Target{Species: "ninjask"},
	})
	s.Require().NoError(err)

	out, err := s.service.Accept(s.ctx, &evolution.AcceptInput{
		OwnerID:  testutils.TestTrainerID,
		MoveMode: moves.ModeHeuristic,
	})
	s.Require().NoError(err)
	s.Equal("ninjask", out.Creature.Species)
	s.Nil(out.Spawned)
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
