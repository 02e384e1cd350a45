package models

import "encoding/json"

// CreateItemRequest is the body of POST on the collection endpoint.
type CreateItemRequest struct {
	Title string `json:"title"`
}

// UpdateItemRequest is the body of PUT on an item endpoint. Updates always
// resend the full item; partial updates are not used.
type UpdateItemRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// SnapshotEvent is the name of the push event that carries a full snapshot.
const SnapshotEvent = "todos"

// PushMessage is the envelope of every message on the push channel.
type PushMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}
