// Package bag provides the repository interface and types for
// persisted item records.
package bag

import (
	"context"

	"github.com/fernway/kobold/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=bagmock github.com/fernway/kobold/internal/repositories/bag Repository

// GetInput contains parameters for retrieving an item
type GetInput struct {
	OwnerID string
	Name    string
}

// GetOutput contains the retrieved item
type GetOutput struct {
	Item *entities.Item
}

// AddInput contains parameters for granting items
type AddInput struct {
	OwnerID  string
	Name     string
	Quantity int
	Holdable bool
	Category string
}

// AddOutput contains the item after the grant
type AddOutput struct {
	Item *entities.Item
}

// ConsumeInput contains parameters for spending items
type ConsumeInput struct {
	OwnerID  string
	Name     string
	Quantity int
}

// ConsumeOutput contains the remaining quantity
type ConsumeOutput struct {
	Remaining int
}

// Repository defines storage operations for bag records
type Repository interface {
	// Get retrieves an item by owner and name; NotFound when the
	// owner holds none
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Add grants quantity of an item, creating the record if needed
	Add(ctx context.Context, input AddInput) (*AddOutput, error)

	// Consume spends quantity of an item, deleting the record at
	// zero; FailedPrecondition when the owner holds too few
	Consume(ctx context.Context, input ConsumeInput) (*ConsumeOutput, error)
}
