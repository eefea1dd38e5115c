package creature_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/repositories/creature"
	"github.com/fernway/kobold/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    creature.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := creature.NewRedisRepository(&creature.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	c := testutils.NewCreature("creature-1", "trainer-1").Level(12).Build()

	_, err := s.repo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, creature.GetInput{ID: "creature-1"})
	s.Require().NoError(err)
	s.Equal("bulbasaur", got.Creature.Species)
	s.Equal(12, got.Creature.Level)
	s.Equal("trainer-1", got.Creature.OwnerID)
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, creature.GetInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveRejectsInvalid() {
	c := testutils.NewCreature("creature-1", "trainer-1").Level(200).Build()

	_, err := s.repo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestListByOwner() {
	for _, id := range []string{"c1", "c2", "c3"} {
		owner := "trainer-1"
		if id == "c3" {
			owner = "trainer-2"
		}
		c := testutils.NewCreature(id, owner).Build()
		_, err := s.repo.Save(s.ctx, creature.SaveInput{Creature: c})
		s.Require().NoError(err)
	}

	listed, err := s.repo.ListByOwner(s.ctx, creature.ListByOwnerInput{OwnerID: "trainer-1"})
	s.Require().NoError(err)
	s.Len(listed.Creatures, 2)
}

func (s *RedisRepositoryTestSuite) TestDeleteRemovesIndexEntries() {
	c := testutils.NewCreature("creature-1", "trainer-1").Evolving().Build()
	_, err := s.repo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, creature.DeleteInput{ID: "creature-1"})
	s.Require().NoError(err)

	listed, err := s.repo.ListByOwner(s.ctx, creature.ListByOwnerInput{OwnerID: "trainer-1"})
	s.Require().NoError(err)
	s.Empty(listed.Creatures)

	evolving, err := s.repo.ListEvolving(s.ctx, creature.ListEvolvingInput{})
	s.Require().NoError(err)
	s.Empty(evolving.Creatures)
}

func (s *RedisRepositoryTestSuite) TestEvolvingIndexFollowsFlag() {
	c := testutils.NewCreature("creature-1", "trainer-1").Evolving().Build()
	_, err := s.repo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	evolving, err := s.repo.ListEvolving(s.ctx, creature.ListEvolvingInput{})
	s.Require().NoError(err)
	s.Require().Len(evolving.Creatures, 1)
	s.Equal("creature-1", evolving.Creatures[0].ID)

	c.Evolving = false
	_, err = s.repo.Save(s.ctx, creature.SaveInput{Creature: c})
	s.Require().NoError(err)

	evolving, err = s.repo.ListEvolving(s.ctx, creature.ListEvolvingInput{})
	s.Require().NoError(err)
	s.Empty(evolving.Creatures)
}

func (s *RedisRepositoryTestSuite) TestSwapOwners() {
	first := testutils.NewCreature("c1", "trainer-1").Lead().Build()
	second := testutils.NewCreature("c2", "trainer-2").Species("caterpie").Build()
	for _, c := range []*entities.Creature{first, second} {
		_, err := s.repo.Save(s.ctx, creature.SaveInput{Creature: c})
		s.Require().NoError(err)
	}

	// both sides arrive pre-mutated; trainer-1 gave up its lead
	first.OwnerID = "trainer-2"
	first.Lead = false
	second.OwnerID = "trainer-1"
	second.Lead = true

	firstTrainer := testutils.CreateTestTrainer("trainer-2")
	secondTrainer := testutils.CreateTestTrainer("trainer-1")
	secondTrainer.LeadCreatureID = "c2"

	_, err := s.repo.SwapOwners(s.ctx, creature.SwapOwnersInput{
		First:           first,
		Second:          second,
		FirstTrainer:    firstTrainer,
		SecondTrainer:   secondTrainer,
		FirstPrevOwner:  "trainer-1",
		SecondPrevOwner: "trainer-2",
	})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, creature.GetInput{ID: "c1"})
	s.Require().NoError(err)
	s.Equal("trainer-2", got.Creature.OwnerID)
	s.False(got.Creature.Lead)

	got, err = s.repo.Get(s.ctx, creature.GetInput{ID: "c2"})
	s.Require().NoError(err)
	s.Equal("trainer-1", got.Creature.OwnerID)
	s.True(got.Creature.Lead)

	listed, err := s.repo.ListByOwner(s.ctx, creature.ListByOwnerInput{OwnerID: "trainer-1"})
	s.Require().NoError(err)
	s.Require().Len(listed.Creatures, 1)
	s.Equal("c2", listed.Creatures[0].ID)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
