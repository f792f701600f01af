package state

import "fmt"

// UnknownFilterError is returned by VisibleTodos when asked for a filter
// outside the closed enumeration. This is a programmer error, not user
// input, so callers should surface it rather than recover.
type UnknownFilterError struct {
	Filter Filter
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("unknown visibility filter %q", string(e.Filter))
}

// VisibleTodos projects the ordered, filtered todo list out of the state.
//
// The result preserves AllIDs order. Pure and side-effect free; safe to call
// on every render.
func VisibleTodos(s State, filter Filter) ([]Todo, error) {
	all := make([]Todo, 0, len(s.Todos.AllIDs))
	for _, id := range s.Todos.AllIDs {
		all = append(all, s.Todos.ByID[id])
	}

	switch filter {
	case FilterAll:
		return all, nil
	case FilterActive:
		return keep(all, func(t Todo) bool { return !t.Completed }), nil
	case FilterCompleted:
		return keep(all, func(t Todo) bool { return t.Completed }), nil
	default:
		return nil, &UnknownFilterError{Filter: filter}
	}
}

func keep(todos []Todo, pred func(Todo) bool) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
