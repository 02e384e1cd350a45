// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the synchronization
// controller and the remote to-do collection.
//
// The primary abstraction is [RemoteStore], which decouples the service layer
// from the REST protocol. The package ships a resty-based implementation
// ([NewHTTPRemoteStore]).
//
// Errors follow a small taxonomy so callers can use [errors.Is] and
// [errors.As]: [ErrValidation] never reaches the network, [ErrNotFound] is a
// 404 from the server, and every other failure is a [*TransportError]
// matching [ErrTransport].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore issues CRUD calls against a single remote collection endpoint.
// Every call is bounded by the configured request timeout.
type RemoteStore interface {
	// List fetches the full ordered collection snapshot.
	List(ctx context.Context) (models.Snapshot, error)

	// Create validates title client-side and creates a new item. The returned
	// item carries the server-assigned id.
	Create(ctx context.Context, title string) (models.Item, error)

	// Update resends the full item. Returns [ErrNotFound] (wrapped) when the
	// id is unknown to the server.
	Update(ctx context.Context, item models.Item) error

	// Delete removes the item with the given id. Returns [ErrNotFound]
	// (wrapped) when the id is unknown to the server.
	Delete(ctx context.Context, id models.ItemID) error

	// Endpoint returns the collection URL this store talks to.
	Endpoint() string
}
