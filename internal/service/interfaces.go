package service

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/models"
)

// TodoService is the reference backend's business layer over the shared
// collection. Every successful mutation publishes the new full snapshot.
type TodoService interface {
	List(ctx context.Context) (models.Snapshot, error)
	Create(ctx context.Context, req models.CreateItemRequest) (models.Item, error)
	Update(ctx context.Context, id models.ItemID, req models.UpdateItemRequest) (models.Item, error)
	Delete(ctx context.Context, id models.ItemID) error
}

// Publisher fans a snapshot out to every connected push channel client.
type Publisher interface {
	Publish(snapshot models.Snapshot)
}
