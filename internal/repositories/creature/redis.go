package creature

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	redisclient "github.com/fernway/kobold/internal/redis"
)

const (
	// Key patterns: creature:{id}, creatures:owner:{owner_id} (set),
	// creatures:evolving (set)
	creatureKeyPrefix = "creature:"
	ownerIndexPrefix  = "creatures:owner:"
	evolvingIndexKey  = "creatures:evolving"

	// The lead pointer lives on the trainer record; a trade swap must
	// move it in the same transaction as the ownership exchange, so
	// this repository writes trainer records there during SwapOwners.
	trainerKeyPrefix = "trainer:"

	errIDEmpty      = "creature ID cannot be empty"
	errCreatureNil  = "creature cannot be nil"
	errOwnerIDEmpty = "owner ID cannot be empty"
	errTrainersNil  = "both trainers are required"
	errCreaturesNil = "both creatures are required"
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

// NewRedisRepository creates a new Redis repository for creatures
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Get retrieves a creature by id
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	data, err := r.client.Get(ctx, creatureKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("creature %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get creature %s", input.ID)
	}

	var c entities.Creature
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal creature %s", input.ID)
	}

	return &GetOutput{Creature: &c}, nil
}

// Save persists a creature and maintains the owner and evolving
// indexes in a single pipeline.
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument(errCreatureNil)
	}
	if err := input.Creature.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid creature")
	}

	data, err := json.Marshal(input.Creature)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal creature %s", input.Creature.ID)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, creatureKey(input.Creature.ID), data, 0)
	pipe.SAdd(ctx, ownerIndexKey(input.Creature.OwnerID), input.Creature.ID)
	if input.Creature.Evolving {
		pipe.SAdd(ctx, evolvingIndexKey, input.Creature.ID)
	} else {
		pipe.SRem(ctx, evolvingIndexKey, input.Creature.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save creature %s", input.Creature.ID)
	}

	return &SaveOutput{Creature: input.Creature}, nil
}

// Delete removes a creature and its index entries
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, creatureKey(input.ID))
	pipe.SRem(ctx, ownerIndexKey(getOutput.Creature.OwnerID), input.ID)
	pipe.SRem(ctx, evolvingIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete creature %s", input.ID)
	}

	return &DeleteOutput{}, nil
}

// ListByOwner returns every creature owned by a trainer
func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	ids, err := r.client.SMembers(ctx, ownerIndexKey(input.OwnerID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list creatures for owner %s", input.OwnerID)
	}

	creatures, err := r.loadAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &ListByOwnerOutput{Creatures: creatures}, nil
}

// ListEvolving returns every creature flagged evolving
func (r *redisRepository) ListEvolving(ctx context.Context, _ ListEvolvingInput) (*ListEvolvingOutput, error) {
	ids, err := r.client.SMembers(ctx, evolvingIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list evolving creatures")
	}

	creatures, err := r.loadAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &ListEvolvingOutput{Creatures: creatures}, nil
}

// SwapOwners applies both creature writes, both owner-index moves, and
// both trainer lead-pointer writes in one transaction. A failure
// anywhere leaves every record untouched.
func (r *redisRepository) SwapOwners(ctx context.Context, input SwapOwnersInput) (*SwapOwnersOutput, error) {
	if input.First == nil || input.Second == nil {
		return nil, errors.InvalidArgument(errCreaturesNil)
	}
	if input.FirstTrainer == nil || input.SecondTrainer == nil {
		return nil, errors.InvalidArgument(errTrainersNil)
	}

	firstData, err := json.Marshal(input.First)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal first creature")
	}
	secondData, err := json.Marshal(input.Second)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal second creature")
	}
	firstTrainerData, err := json.Marshal(input.FirstTrainer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal first trainer")
	}
	secondTrainerData, err := json.Marshal(input.SecondTrainer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal second trainer")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, creatureKey(input.First.ID), firstData, 0)
	pipe.Set(ctx, creatureKey(input.Second.ID), secondData, 0)
	pipe.SRem(ctx, ownerIndexKey(input.FirstPrevOwner), input.First.ID)
	pipe.SAdd(ctx, ownerIndexKey(input.First.OwnerID), input.First.ID)
	pipe.SRem(ctx, ownerIndexKey(input.SecondPrevOwner), input.Second.ID)
	pipe.SAdd(ctx, ownerIndexKey(input.Second.OwnerID), input.Second.ID)
	pipe.Set(ctx, trainerKeyPrefix+input.FirstTrainer.ID, firstTrainerData, 0)
	pipe.Set(ctx, trainerKeyPrefix+input.SecondTrainer.ID, secondTrainerData, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to swap creature owners")
	}

	return &SwapOwnersOutput{}, nil
}

// loadAll fetches creatures by id, skipping stale index entries
func (r *redisRepository) loadAll(ctx context.Context, ids []string) ([]*entities.Creature, error) {
	creatures := make([]*entities.Creature, 0, len(ids))
	for _, id := range ids {
		out, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		creatures = append(creatures, out.Creature)
	}
	return creatures, nil
}

func creatureKey(id string) string {
	return creatureKeyPrefix + id
}

func ownerIndexKey(ownerID string) string {
	return fmt.Sprintf("%s%s", ownerIndexPrefix, ownerID)
}
