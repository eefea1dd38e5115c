package trainer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	"github.com/fernway/kobold/internal/repositories/trainer"
	"github.com/fernway/kobold/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    trainer.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := trainer.NewRedisRepository(&trainer.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	t := testutils.CreateTestTrainer("trainer-1")
	t.LeadCreatureID = "c1"
	t.SetDexFlag(1, entities.DexOwned)

	_, err := s.repo.Save(s.ctx, trainer.SaveInput{Trainer: t})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, trainer.GetInput{ID: "trainer-1"})
	s.Require().NoError(err)
	s.Equal(t.Name, got.Trainer.Name)
	s.Equal("c1", got.Trainer.LeadCreatureID)
	s.Equal(rune(entities.DexOwned), got.Trainer.DexFlag(1))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, trainer.GetInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveOverwrites() {
	t := testutils.CreateTestTrainer("trainer-1")
	_, err := s.repo.Save(s.ctx, trainer.SaveInput{Trainer: t})
	s.Require().NoError(err)

	t.Location = "cerulean cave"
	_, err = s.repo.Save(s.ctx, trainer.SaveInput{Trainer: t})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, trainer.GetInput{ID: "trainer-1"})
	s.Require().NoError(err)
	s.Equal("cerulean cave", got.Trainer.Location)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
