package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
)

var (
	// ErrNotFound is returned when a todo id does not exist.
	ErrNotFound = errors.New("todo not found")
	// ErrEmptyText is returned when adding a todo with no text.
	ErrEmptyText = errors.New("todo text cannot be empty")
)

// Service exposes the todo operations on top of the state store.
//
// It validates input at the edge so the reducers underneath stay total: a
// toggle for an unknown id is rejected here instead of silently reducing to
// a no-op.
type Service struct {
	store *state.Store
	log   zerolog.Logger
}

// NewService creates a new Service dispatching into the given store.
func NewService(store *state.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("component", "todo-service").Logger(),
	}
}

// Add creates a new todo with the given text and returns it.
func (s *Service) Add(ctx context.Context, text string) (state.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return state.Todo{}, ErrEmptyText
	}

	action := state.NewAddTodo(text)
	st := s.store.Dispatch(action)

	s.log.Debug().Str("id", action.ID).Msg("todo added")

	return st.Todos.ByID[action.ID], nil
}

// Toggle flips the completed flag of the todo with the given id and returns
// the updated item. Returns ErrNotFound if the id does not exist.
func (s *Service) Toggle(ctx context.Context, id string) (state.Todo, error) {
	if _, ok := s.store.State().Todos.ByID[id]; !ok {
		return state.Todo{}, fmt.Errorf("toggle %s: %w", id, ErrNotFound)
	}

	st := s.store.Dispatch(state.NewToggleTodo(id))

	todo := st.Todos.ByID[id]
	s.log.Debug().Str("id", id).Bool("completed", todo.Completed).Msg("todo toggled")

	return todo, nil
}

// Get returns a single todo by id. Returns ErrNotFound if absent.
func (s *Service) Get(ctx context.Context, id string) (state.Todo, error) {
	todo, ok := s.store.State().Todos.ByID[id]
	if !ok {
		return state.Todo{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return todo, nil
}

// Visible returns the ordered todos matching the given filter.
func (s *Service) Visible(ctx context.Context, filter state.Filter) ([]state.Todo, error) {
	return state.VisibleTodos(s.store.State(), filter)
}
