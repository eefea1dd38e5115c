// Package trainer provides the repository interface and types for
// persisted trainer (user) records.
package trainer

import (
	"context"

	"github.com/fernway/kobold/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=trainermock github.com/fernway/kobold/internal/repositories/trainer Repository

// GetInput contains parameters for retrieving a trainer
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved trainer
type GetOutput struct {
	Trainer *entities.Trainer
}

// SaveInput contains the trainer to persist
type SaveInput struct {
	Trainer *entities.Trainer
}

// SaveOutput is the result of a save
type SaveOutput struct {
	Trainer *entities.Trainer
}

// Repository defines storage operations for trainer records
type Repository interface {
	// Get retrieves a trainer by id
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save persists a trainer record
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}
