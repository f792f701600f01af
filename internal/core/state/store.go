package state

import "sync"

// Listener receives the new state snapshot after every dispatch.
// Snapshots are read-only: listeners must never mutate them in place.
type Listener func(State)

// Store holds the current state tree and applies the root reducer on each
// dispatched action. It is an explicit, owned container: construct one and
// pass it to whatever needs to read or dispatch.
//
// Dispatches are serialized; the reducer for dispatch N always observes the
// state produced by dispatch N-1. Listeners run synchronously on the
// dispatching goroutine, in subscription order, and must not dispatch
// re-entrantly.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []*listenerEntry
}

type listenerEntry struct {
	fn Listener
}

// NewStore creates a store seeded with the given initial state. The zero
// value of State is the valid empty starting point.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// State returns the current state snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the root reducer to produce the next state, notifies all
// listeners with it, and returns it.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, action)

	for _, entry := range s.listeners {
		entry.fn(s.state)
	}

	return s.state
}

// Subscribe registers a listener and returns a function that removes it.
// Unsubscribing twice is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	entry := &listenerEntry{fn: fn}

	s.mu.Lock()
	s.listeners = append(s.listeners, entry)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.listeners {
			if e == entry {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
	}
}
