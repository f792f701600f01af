package todos

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(state.NewStore(state.State{}), zerolog.Nop())
}

func TestService_Add(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a todo with a fresh id", func(t *testing.T) {
		svc := newTestService(t)

		todo, err := svc.Add(ctx, "buy milk")
		require.NoError(t, err)

		assert.NotEmpty(t, todo.ID)
		assert.Equal(t, "buy milk", todo.Text)
		assert.False(t, todo.Completed)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Add(ctx, "   ")
		require.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("consecutive adds get distinct ids", func(t *testing.T) {
		svc := newTestService(t)

		first, err := svc.Add(ctx, "one")
		require.NoError(t, err)
		second, err := svc.Add(ctx, "two")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestService_Toggle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("flips the completed flag", func(t *testing.T) {
		svc := newTestService(t)

		added, err := svc.Add(ctx, "buy milk")
		require.NoError(t, err)

		toggled, err := svc.Toggle(ctx, added.ID)
		require.NoError(t, err)
		assert.True(t, toggled.Completed)

		back, err := svc.Toggle(ctx, added.ID)
		require.NoError(t, err)
		assert.False(t, back.Completed)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Toggle(ctx, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(t)
	added, err := svc.Add(ctx, "buy milk")
	require.NoError(t, err)

	got, err := svc.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_Visible(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(t)

	first, err := svc.Add(ctx, "buy milk")
	require.NoError(t, err)
	second, err := svc.Add(ctx, "walk dog")
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, first.ID)
	require.NoError(t, err)

	all, err := svc.Visible(ctx, state.FilterAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	active, err := svc.Visible(ctx, state.FilterActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	completed, err := svc.Visible(ctx, state.FilterCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, first.ID, completed[0].ID)

	_, err = svc.Visible(ctx, state.Filter("bogus"))
	var ufErr *state.UnknownFilterError
	require.ErrorAs(t, err, &ufErr)
}
