package moves_test

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
	"github.com/fernway/kobold/internal/orchestrators/moves"
	"github.com/fernway/kobold/internal/pkg/clock"
	"github.com/fernway/kobold/internal/registry"
	"github.com/fernway/kobold/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	messenger *messengermock.MockMessenger
	registry  *registry.Registry
	service   moves.Service
	ctx       context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.messenger = messengermock.NewMockMessenger(s.ctrl)
	s.registry = registry.New(clock.NewFixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))

	cat := testutils.CreateTestCatalog()
	service, err := moves.NewOrchestrator(&moves.Config{
		SpeciesCatalog: cat,
		MoveCatalog:    cat,
		Messenger:      s.messenger,
		Registry:       s.registry,
	})
	s.Require().NoError(err)
	s.service = service
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestLearnsIntoEmptySlot() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(3).
		Moves("tackle").
		Build()

	out, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    3,
		Mode:     moves.ModeInteractive,
	})
	s.Require().NoError(err)
	s.Equal([]string{"growl"}, out.Learned)
	s.Empty(out.Passed)
	s.True(c.Knows("growl"))
	s.Equal(40, c.Moves[1].PP)
}

func (s *OrchestratorTestSuite) TestNothingLearnableAtLevel() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(5).
		Moves("tackle").
		Build()

	out, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    5,
		Mode:     moves.ModeInteractive,
	})
	s.Require().NoError(err)
	s.Empty(out.Learned)
	s.Empty(out.Passed)
}

func (s *OrchestratorTestSuite) TestKnownMoveSkipped() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(7).
		Moves("tackle", "vine whip").
		Build()

	out, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    7,
		Mode:     moves.ModeInteractive,
	})
	s.Require().NoError(err)
	s.Empty(out.Learned)
}

func (s *OrchestratorTestSuite) TestHeuristicReplacesWithoutPrompting() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(16).
		Moves("tackle", "growl", "leech seed", "poison powder").
		Build()

	out, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    16,
		Mode:     moves.ModeHeuristic,
	})
	s.Require().NoError(err)
	s.Equal([]string{"razor leaf"}, out.Learned)
	s.True(c.Knows("razor leaf"))
	s.Negative(c.FirstEmptySlot())
}

func (s *OrchestratorTestSuite) TestInteractiveSlotNumber() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(16).
		Moves("tackle", "growl", "leech seed", "poison powder").
		Build()

	s.messenger.EXPECT().
		Send(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(nil)
	s.messenger.EXPECT().
		Await(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(messenger.Response{Kind: messenger.ResponseAnswer, Text: "2"}, nil)

	out, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    16,
		Mode:     moves.ModeInteractive,
	})
	s.Require().NoError(err)
	s.Equal([]string{"razor leaf"}, out.Learned)
	s.Equal("razor leaf", c.Moves[1].Name)
	s.False(c.Knows("growl"))

	// the teach lock is released afterward
	s.NoError(s.registry.CheckAvailable(testutils.TestTrainerID))
}

func (s *OrchestratorTestSuite) TestInteractiveMoveNameRepromptsOnGarbage() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(16).
		Moves("tackle", "growl", "leech seed", "poison powder").
		Build()

	s.messenger.EXPECT().
		Send(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(nil).
		Times(2)
	first := s.messenger.EXPECT().
		Await(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(messenger.Response{Kind: messenger.ResponseAnswer, Text: "99"}, nil)
	s.messenger.EXPECT().
		Await(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(messenger.Response{Kind: messenger.ResponseAnswer, Text: "tackle"}, nil).
		After(first)

	out, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    16,
		Mode:     moves.ModeInteractive,
	})
	s.Require().NoError(err)
	s.Equal([]string{"razor leaf"}, out.Learned)
	s.Equal("razor leaf", c.Moves[0].Name)
}

func (s *OrchestratorTestSuite) TestInteractiveTimeoutPasses() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(16).
		Moves("tackle", "growl", "leech seed", "poison powder").
		Build()

	s.messenger.EXPECT().
		Send(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(nil)
	s.messenger.EXPECT().
		Await(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(messenger.Response{Kind: messenger.ResponseTimeout}, nil)

	out, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    16,
		Mode:     moves.ModeInteractive,
	})
	s.Require().NoError(err)
	s.Empty(out.Learned)
	s.Equal([]string{"razor leaf"}, out.Passed)
	s.False(c.Knows("razor leaf"))
	s.NoError(s.registry.CheckAvailable(testutils.TestTrainerID))
}

func (s *OrchestratorTestSuite) TestInteractiveCancelPasses() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(16).
		Moves("tackle", "growl", "leech seed", "poison powder").
		Build()

	s.messenger.EXPECT().
		Send(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(nil)
	s.messenger.EXPECT().
		Await(gomock.Any(), testutils.TestTrainerID, gomock.Any()).
		Return(messenger.Response{Kind: messenger.ResponseCancel, Text: "cancel"}, nil)

	out, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    16,
		Mode:     moves.ModeInteractive,
	})
	s.Require().NoError(err)
	s.Equal([]string{"razor leaf"}, out.Passed)
}

func (s *OrchestratorTestSuite) TestInteractiveBusyOwner() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Level(16).
		Moves("tackle", "growl", "leech seed", "poison powder").
		Build()

	s.Require().NoError(s.registry.Lock(testutils.TestTrainerID, entities.ActivityShopping))

	_, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    16,
		Mode:     moves.ModeInteractive,
	})
	s.Require().Error(err)
	s.True(errors.IsBusy(err))
}

func (s *OrchestratorTestSuite) TestUnknownSpeciesLearnsNothing() {
	c := testutils.NewCreature("c1", testutils.TestTrainerID).
		Species("missingno").
		Build()

	out, err := s.service.Resolve(s.ctx, &moves.ResolveInput{
		Creature: c,
		Level:    5,
		Mode:     moves.ModeHeuristic,
	})
	s.Require().NoError(err)
	s.Empty(out.Learned)
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
