// Package jsonfile persists the todos slice of the application state as a
// JSON file. Persistence is best-effort by contract: in-memory state
// correctness never depends on a successful load or save.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
)

const (
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

// snapshotFile is the root JSON structure stored on disk. Only the todos
// slice is persisted; the visibility filter is deliberately excluded.
type snapshotFile struct {
	Version   string      `json:"version"`
	UpdatedAt time.Time   `json:"updated_at"`
	Todos     state.Todos `json:"todos"`
}

// SnapshotStore reads and writes todo snapshots at a fixed path.
//
// Writes are atomic (tmp file + rename) and guarded by a sidecar flock so
// that concurrent processes sharing the same data file do not interleave.
type SnapshotStore struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewSnapshotStore creates a snapshot store for the given file path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the snapshot file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Load reads the persisted todos slice.
//
// A missing or empty file yields the zero value with no error. Malformed
// content or a snapshot violating the ByID/AllIDs invariant also yields the
// zero value, but with an advisory error: callers log it and start empty
// rather than failing startup.
func (s *SnapshotStore) Load(ctx context.Context) (state.Todos, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acquireLock(ctx); err != nil {
		return state.Todos{}, err
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state.Todos{}, nil
		}
		return state.Todos{}, fmt.Errorf("read snapshot: %w", err)
	}

	if len(data) == 0 {
		return state.Todos{}, nil
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return state.Todos{}, fmt.Errorf("parse snapshot: %w", err)
	}

	if err := validate(file.Todos); err != nil {
		return state.Todos{}, fmt.Errorf("snapshot %s: %w", s.path, err)
	}

	return file.Todos, nil
}

// Save writes the todos slice to disk atomically.
func (s *SnapshotStore) Save(ctx context.Context, todos state.Todos) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	file := snapshotFile{
		Version:   "1",
		UpdatedAt: time.Now().UTC(),
		Todos:     todos,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename snapshot: %w", err)
	}

	return nil
}

// acquireLock takes the cross-process file lock with a bounded wait.
func (s *SnapshotStore) acquireLock(ctx context.Context) error {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	locked, err := s.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire snapshot lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("snapshot lock %s is held by another process", s.lock.Path())
	}
	return nil
}

// validate checks the normalized-collection invariant: ByID and AllIDs must
// describe the same id set, with AllIDs free of duplicates.
func validate(todos state.Todos) error {
	if len(todos.ByID) != len(todos.AllIDs) {
		return fmt.Errorf("inconsistent snapshot: %d ids ordered, %d stored", len(todos.AllIDs), len(todos.ByID))
	}

	seen := make(map[string]bool, len(todos.AllIDs))
	for _, id := range todos.AllIDs {
		if seen[id] {
			return fmt.Errorf("inconsistent snapshot: duplicate id %s", id)
		}
		seen[id] = true

		if _, ok := todos.ByID[id]; !ok {
			return fmt.Errorf("inconsistent snapshot: id %s has no entry", id)
		}
	}
	return nil
}
