package store

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/models"
)

// TodoRepository persists the shared to-do collection of the reference
// backend.
type TodoRepository interface {
	// List returns every item in creation order.
	List(ctx context.Context) (models.Snapshot, error)

	// Create inserts item. The id is assigned by the caller.
	// Returns [ErrItemAlreadyExists] when the id is taken.
	Create(ctx context.Context, item models.Item) (models.Item, error)

	// Update overwrites title and completed of the item with item.ID.
	// Returns [ErrItemNotFound] when no such item exists.
	Update(ctx context.Context, item models.Item) (models.Item, error)

	// Delete removes the item with the given id.
	// Returns [ErrItemNotFound] when no such item exists.
	Delete(ctx context.Context, id models.ItemID) error
}

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
