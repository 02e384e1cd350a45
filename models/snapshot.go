package models

// Snapshot is the complete, ordered state of the collection at one instant.
// It is the only unit of state transfer: the local view is always replaced
// by a whole snapshot and never patched.
type Snapshot []Item

// Clone returns an independent copy of the snapshot. A nil snapshot clones
// to an empty, non-nil one so that renderers never have to special-case nil.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Find returns the item with the given id.
func (s Snapshot) Find(id ItemID) (Item, bool) {
	for _, item := range s {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Contains reports whether an item with the given id is present.
func (s Snapshot) Contains(id ItemID) bool {
	_, ok := s.Find(id)
	return ok
}
