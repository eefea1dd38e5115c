package trainer

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	redisclient "github.com/fernway/kobold/internal/redis"
)

const (
	// Key pattern: trainer:{id}
	trainerKeyPrefix = "trainer:"

	errIDEmpty    = "trainer ID cannot be empty"
	errTrainerNil = "trainer cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis repository for trainers
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Get retrieves a trainer by id
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	data, err := r.client.Get(ctx, trainerKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("trainer %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get trainer %s", input.ID)
	}

	var t entities.Trainer
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal trainer %s", input.ID)
	}

	return &GetOutput{Trainer: &t}, nil
}

// Save persists a trainer record
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Trainer == nil {
		return nil, errors.InvalidArgument(errTrainerNil)
	}
	if err := input.Trainer.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid trainer")
	}

	data, err := json.Marshal(input.Trainer)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal trainer %s", input.Trainer.ID)
	}

	if err := r.client.Set(ctx, trainerKeyPrefix+input.Trainer.ID, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save trainer %s", input.Trainer.ID)
	}

	return &SaveOutput{Trainer: input.Trainer}, nil
}
