package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ItemID is the opaque, server-assigned identifier of a to-do item.
// The client never generates or interprets it; it is only compared and
// echoed back in update and delete calls.
type ItemID string

// String returns the identifier as plain text.
func (id ItemID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both a JSON string and a JSON number, since some
// backends emit auto-increment integer ids.
func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("item id must be a string or a number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("item id must be a string or a number: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// Item is a single entry of the shared to-do list.
// The remote store is its only source of truth; the client holds copies.
type Item struct {
	// ID is assigned by the server on creation and never changes.
	ID ItemID `json:"id"`

	// Title is the text of the to-do entry.
	Title string `json:"title"`

	// Completed reports whether the entry has been marked as done.
	Completed bool `json:"completed"`
}

// Toggled returns a copy of the item with Completed flipped.
func (i Item) Toggled() Item {
	i.Completed = !i.Completed
	return i
}
