// Package state implements the unidirectional state container at the heart
// of the application: a closed set of actions, pure reducers over a
// normalized todo collection, an explicit store, and read-only selectors.
package state

// Todo represents a single todo entry.
//
// ID and Text are immutable after creation; only Completed changes over the
// item's lifetime. Items are never deleted.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Todos is the normalized todo collection: every item is stored exactly once
// in ByID, and AllIDs carries insertion order.
//
// Invariant: the key set of ByID and the element set of AllIDs are identical,
// and AllIDs contains no duplicates. Both structures are updated within the
// same dispatch.
type Todos struct {
	ByID   map[string]Todo `json:"by_id"`
	AllIDs []string        `json:"all_ids"`
}

// Len returns the number of todos in the collection.
func (t Todos) Len() int {
	return len(t.AllIDs)
}

// State is the root application state tree. The visibility filter is not
// part of it; callers derive the filter from the navigation path per render.
type State struct {
	Todos Todos
}
