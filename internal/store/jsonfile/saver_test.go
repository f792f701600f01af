package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
)

func TestSaver_CoalescesBursts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todos.json")
	snapshots := NewSnapshotStore(path)
	saver := NewSaver(snapshots, 250*time.Millisecond, zerolog.Nop())
	defer saver.Close()

	store := state.NewStore(state.State{})
	store.Subscribe(saver.Notify)

	// Burst of dispatches well inside one interval.
	store.Dispatch(state.AddTodo{ID: "a", Text: "one"})
	store.Dispatch(state.AddTodo{ID: "b", Text: "two"})
	store.Dispatch(state.AddTodo{ID: "c", Text: "three"})

	// Nothing written before the interval elapses.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// The single coalesced write carries the latest state, not the first.
	require.Eventually(t, func() bool {
		todos, err := snapshots.Load(context.Background())
		return err == nil && todos.Len() == 3
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSaver_FlushWritesPending(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todos.json")
	snapshots := NewSnapshotStore(path)
	saver := NewSaver(snapshots, time.Hour, zerolog.Nop())
	defer saver.Close()

	store := state.NewStore(state.State{})
	store.Subscribe(saver.Notify)
	store.Dispatch(state.AddTodo{ID: "a", Text: "one"})

	saver.Flush()

	todos, err := snapshots.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, todos.Len())
}

func TestSaver_FlushWithoutPendingIsNoop(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todos.json")
	saver := NewSaver(NewSnapshotStore(path), time.Hour, zerolog.Nop())
	defer saver.Close()

	saver.Flush()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSaver_CloseFlushesAndStops(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todos.json")
	snapshots := NewSnapshotStore(path)
	saver := NewSaver(snapshots, time.Hour, zerolog.Nop())

	saver.Notify(state.Reduce(state.State{}, state.AddTodo{ID: "a", Text: "one"}))
	saver.Close()

	todos, err := snapshots.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, todos.Len())

	// Notifications after Close are dropped.
	saver.Notify(state.Reduce(state.State{}, state.AddTodo{ID: "b", Text: "two"}))
	saver.Flush()

	todos, err = snapshots.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, todos.Len())
}

func TestSaver_ZeroIntervalSavesImmediately(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todos.json")
	snapshots := NewSnapshotStore(path)
	saver := NewSaver(snapshots, 0, zerolog.Nop())
	defer saver.Close()

	saver.Notify(state.Reduce(state.State{}, state.AddTodo{ID: "a", Text: "one"}))

	todos, err := snapshots.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, todos.Len())
}

func TestSaver_SaveFailureDoesNotPropagate(t *testing.T) {
	t.Parallel()

	// Point the snapshot at a path whose parent is a file, so MkdirAll fails.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	saver := NewSaver(NewSnapshotStore(filepath.Join(blocker, "todos.json")), 0, zerolog.Nop())
	defer saver.Close()

	require.NotPanics(t, func() {
		saver.Notify(state.Reduce(state.State{}, state.AddTodo{ID: "a", Text: "one"}))
	})
}
