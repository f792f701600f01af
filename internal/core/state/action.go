package state

import "github.com/google/uuid"

// Action describes an intended state change submitted to the store.
//
// The set of actions is closed: only the types in this file implement the
// interface, so reducers can switch over them exhaustively.
type Action interface {
	isAction()
}

// AddTodo creates a new todo entry with the given id and text.
type AddTodo struct {
	ID   string
	Text string
}

// ToggleTodo flips the completed flag of the todo with the given id.
type ToggleTodo struct {
	ID string
}

func (AddTodo) isAction()    {}
func (ToggleTodo) isAction() {}

// NewAddTodo builds an AddTodo action, allocating a fresh identifier.
//
// Identifiers are random UUIDs rather than a counter so that ids minted
// after a restart never collide with previously persisted ones.
func NewAddTodo(text string) AddTodo {
	return AddTodo{ID: uuid.NewString(), Text: text}
}

// NewToggleTodo builds a ToggleTodo action for an existing id.
func NewToggleTodo(id string) ToggleTodo {
	return ToggleTodo{ID: id}
}
