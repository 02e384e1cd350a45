package service

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/push"
	"github.com/MKhiriev/go-todo-sync/models"
)

// TodoController owns the authoritative local view of the shared to-do list
// and reconciles REST results, push snapshots and fallback refetches into it.
//
// Mutations are fire-and-confirm: the local view is never changed from a
// mutation's return value. After every successful mutation a fallback
// re-list is scheduled; push snapshots replace the view whenever they
// arrive. Whichever source completes last wins.
type TodoController interface {
	// LoadInitial marks the view as loading and lists the collection once,
	// independently of the push channel. On failure the last-known-good items
	// are kept and the error is surfaced in the view and returned.
	LoadInitial(ctx context.Context) error

	// CreateItem creates an item with the given title. An empty title fails
	// with [adapter.ErrValidation] without any network traffic.
	CreateItem(ctx context.Context, title string) error

	// ToggleItem flips the completed flag of the item with the given id,
	// resending the full item. An id absent from the local view fails with
	// [adapter.ErrNotFound] without a network call.
	ToggleItem(ctx context.Context, id models.ItemID) error

	// DeleteItem removes the item with the given id.
	DeleteItem(ctx context.Context, id models.ItemID) error

	// Retry re-lists the collection and, when the push channel gave up,
	// restarts its connect cycle.
	Retry(ctx context.Context) error

	// Reconfigure switches to a new endpoint: it bumps the generation, drops
	// pending fallbacks, tears down the listener, clears the view and starts
	// over with LoadInitial.
	Reconfigure(ctx context.Context, endpoint config.Endpoint) error

	// View returns a copy of the current local view.
	View() models.View

	// Endpoint returns the endpoint the controller currently talks to.
	Endpoint() config.Endpoint

	// Subscribe registers fn to receive the view after every change. The
	// returned func removes the subscription.
	Subscribe(fn func(models.View)) (unsubscribe func())

	// Close stops the listener, cancels pending fallbacks and stops
	// notifying subscribers.
	Close()
}

// ClientFactory builds the endpoint-bound collaborators of a
// [TodoController]. Each endpoint switch asks for a fresh pair.
type ClientFactory interface {
	NewRemoteStore(endpoint config.Endpoint) (adapter.RemoteStore, error)
	NewListener(endpoint config.Endpoint, handlers push.Handlers) (push.Listener, error)
}
