// Package creature provides the repository interface and types for
// persisted creature records.
package creature

import (
	"context"

	"github.com/fernway/kobold/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=creaturemock github.com/fernway/kobold/internal/repositories/creature Repository

// GetInput contains parameters for retrieving a creature
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved creature
type GetOutput struct {
	Creature *entities.Creature
}

// SaveInput contains the creature to persist
type SaveInput struct {
	Creature *entities.Creature
}

// SaveOutput is the result of a save
type SaveOutput struct {
	Creature *entities.Creature
}

// DeleteInput contains parameters for deleting a creature
type DeleteInput struct {
	ID string
}

// DeleteOutput is the result of a delete
type DeleteOutput struct{}

// ListByOwnerInput contains parameters for listing an owner's creatures
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput contains an owner's creatures
type ListByOwnerOutput struct {
	Creatures []*entities.Creature
}

// ListEvolvingInput has no parameters; the scan is store-wide
type ListEvolvingInput struct{}

// ListEvolvingOutput contains every creature flagged evolving
type ListEvolvingOutput struct {
	Creatures []*entities.Creature
}

// SwapOwnersInput carries both sides of a trade. The creatures arrive
// with their new OwnerID and Lead values already set; the trainers
// arrive with their lead pointers already repaired. The repository's
// job is to apply all of it in one transaction.
type SwapOwnersInput struct {
	First         *entities.Creature
	Second        *entities.Creature
	FirstTrainer  *entities.Trainer
	SecondTrainer *entities.Trainer

	// Previous owners, for owner-index maintenance
	FirstPrevOwner  string
	SecondPrevOwner string
}

// SwapOwnersOutput is the result of the swap
type SwapOwnersOutput struct{}

// Repository defines storage operations for creature records
type Repository interface {
	// Get retrieves a creature by id
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save persists a creature and maintains its indexes
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes a creature and its index entries
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner returns every creature owned by a trainer
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)

	// ListEvolving returns every creature flagged evolving; used to
	// rebuild pending evolutions at process start
	ListEvolving(ctx context.Context, input ListEvolvingInput) (*ListEvolvingOutput, error)

	// SwapOwners applies a trade's ownership exchange atomically
	SwapOwners(ctx context.Context, input SwapOwnersInput) (*SwapOwnersOutput, error)
}
