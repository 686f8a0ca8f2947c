// Package items provides persistence for item records, either as one JSON file
// per item or as rows of a SQLite database
package items

//go:generate mockgen -destination=mock/mock_repository.go -package=itemsmock github.com/KirkDiggler/osrs-items/internal/repositories/items Repository

import (
	"context"

	"github.com/KirkDiggler/osrs-items/internal/entities/items"
)

// Repository defines the interface for item record persistence
type Repository interface {
	// Get retrieves an item record by ID
	// Returns errors.InvalidArgument for negative IDs
	// Returns errors.NotFound if no record exists for the ID
	// Returns errors.ShapeMismatch if the stored data is not a valid record
	// Returns errors.IOFailure for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save writes an item record, replacing any existing one
	// Returns errors.InvalidArgument for a nil record or negative ID
	// Returns errors.ShapeMismatch if the record breaks its invariants
	// Returns errors.IOFailure for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes an item record
	// Returns errors.NotFound if no record exists for the ID
	// Returns errors.IOFailure for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns the IDs of every stored record in ascending order
	// Returns errors.IOFailure for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// GetInput defines the input for getting an item record
type GetInput struct {
	ID int
}

// GetOutput defines the output for getting an item record
type GetOutput struct {
	Record *items.ItemRecord
}

// SaveInput defines the input for saving an item record
type SaveInput struct {
	Record *items.ItemRecord
}

// SaveOutput defines the output for saving an item record
type SaveOutput struct {
	// Path is the file or database the record was written to
	Path string
}

// DeleteInput defines the input for deleting an item record
type DeleteInput struct {
	ID int
}

// DeleteOutput defines the output for deleting an item record
type DeleteOutput struct{}

// ListInput defines the input for listing item records
type ListInput struct{}

// ListOutput defines the output for listing item records
type ListOutput struct {
	IDs []int
}
