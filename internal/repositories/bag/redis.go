package bag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/fernway/kobold/internal/entities"
	"github.com/fernway/kobold/internal/errors"
	redisclient "github.com/fernway/kobold/internal/redis"
)

const (
	// Key pattern: bag:{owner_id}:{item_name}
	bagKeyPrefix = "bag:"

	errOwnerIDEmpty = "owner ID cannot be empty"
	errNameEmpty    = "item name cannot be empty"
	errQuantity     = "quantity must be positive"
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

// NewRedisRepository creates a new Redis repository for bags
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Get retrieves an item by owner and name
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	data, err := r.client.Get(ctx, bagKey(input.OwnerID, input.Name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("%s has no %s", input.OwnerID, input.Name)
		}
		return nil, errors.Wrapf(err, "failed to get item %s", input.Name)
	}

	var item entities.Item
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal item %s", input.Name)
	}

	return &GetOutput{Item: &item}, nil
}

// Add grants quantity of an item, creating the record if needed
func (r *redisRepository) Add(ctx context.Context, input AddInput) (*AddOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}
	if input.Quantity <= 0 {
		return nil, errors.InvalidArgument(errQuantity)
	}

	item := &entities.Item{
		OwnerID:  input.OwnerID,
		Name:     input.Name,
		Quantity: input.Quantity,
		Holdable: input.Holdable,
		Category: input.Category,
	}

	existing, err := r.Get(ctx, GetInput{OwnerID: input.OwnerID, Name: input.Name})
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	if err == nil {
		item = existing.Item
		item.Quantity += input.Quantity
	}

	if err := r.set(ctx, item); err != nil {
		return nil, err
	}

	return &AddOutput{Item: item}, nil
}

// Consume spends quantity of an item, deleting the record at zero.
// A single in-flight flow holds the owner's lock, so the read-modify-
// write needs no optimistic concurrency control.
func (r *redisRepository) Consume(ctx context.Context, input ConsumeInput) (*ConsumeOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}
	if input.Quantity <= 0 {
		return nil, errors.InvalidArgument(errQuantity)
	}

	existing, err := r.Get(ctx, GetInput{OwnerID: input.OwnerID, Name: input.Name})
	if err != nil {
		return nil, err
	}

	item := existing.Item
	if item.Quantity < input.Quantity {
		return nil, errors.FailedPreconditionf("not enough %s: have %d, need %d",
			input.Name, item.Quantity, input.Quantity)
	}

	item.Quantity -= input.Quantity
	if item.Quantity == 0 {
		if err := r.client.Del(ctx, bagKey(input.OwnerID, input.Name)).Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to delete item %s", input.Name)
		}
		return &ConsumeOutput{Remaining: 0}, nil
	}

	if err := r.set(ctx, item); err != nil {
		return nil, err
	}

	return &ConsumeOutput{Remaining: item.Quantity}, nil
}

func (r *redisRepository) set(ctx context.Context, item *entities.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal item %s", item.Name)
	}

	if err := r.client.Set(ctx, bagKey(item.OwnerID, item.Name), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to save item %s", item.Name)
	}
	return nil
}

func bagKey(ownerID, name string) string {
	return fmt.Sprintf("%s%s:%s", bagKeyPrefix, ownerID, strings.ToLower(name))
}
