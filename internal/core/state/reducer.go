package state

// Reducers are pure functions from (previous state, action) to next state.
// They never mutate their input; unchanged slices of the tree are returned
// by reference so callers can rely on cheap equality checks.

// reduceTodo computes the next state of a single todo.
//
// AddTodo ignores the previous value and builds a fresh item. ToggleTodo
// returns the previous item untouched unless the id matches.
func reduceTodo(prev Todo, action Action) Todo {
	switch act := action.(type) {
	case AddTodo:
		return Todo{ID: act.ID, Text: act.Text, Completed: false}
	case ToggleTodo:
		if prev.ID != act.ID {
			return prev
		}
		prev.Completed = !prev.Completed
		return prev
	default:
		return prev
	}
}

// reduceByID maintains the id -> todo lookup table.
//
// Both action kinds share the same shape: look up the entry at the action's
// id, delegate to reduceTodo, write the result back into a copy of the map.
// A toggle for an id that was never added leaves the map untouched.
func reduceByID(prev map[string]Todo, action Action) map[string]Todo {
	var id string
	switch act := action.(type) {
	case AddTodo:
		id = act.ID
	case ToggleTodo:
		if _, ok := prev[act.ID]; !ok {
			return prev
		}
		id = act.ID
	default:
		return prev
	}

	next := make(map[string]Todo, len(prev)+1)
	for k, v := range prev {
		next[k] = v
	}
	next[id] = reduceTodo(prev[id], action)
	return next
}

// reduceAllIDs maintains the insertion-ordered id sequence.
func reduceAllIDs(prev []string, action Action) []string {
	act, ok := action.(AddTodo)
	if !ok {
		return prev
	}

	next := make([]string, len(prev), len(prev)+1)
	copy(next, prev)
	return append(next, act.ID)
}

// reduceTodos composes the lookup table and the id order into one slice of
// state. Each sub-reducer sees only its own slice; an id appended to AllIDs
// always has a matching entry written into ByID in the same call.
func reduceTodos(prev Todos, action Action) Todos {
	return Todos{
		ByID:   reduceByID(prev.ByID, action),
		AllIDs: reduceAllIDs(prev.AllIDs, action),
	}
}

// Reduce is the root reducer. The zero value of State is the valid initial
// state, so an absent previous state needs no special handling.
func Reduce(prev State, action Action) State {
	return State{
		Todos: reduceTodos(prev.Todos, action),
	}
}
