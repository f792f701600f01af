package jsonfile

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
)

// Saver throttles snapshot writes: it subscribes to the state store and
// coalesces bursts of dispatches into at most one physical write per
// interval. Save failures are logged and never reach the dispatcher.
type Saver struct {
	snapshots *SnapshotStore
	interval  time.Duration
	log       zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *state.Todos
	closed  bool
}

// NewSaver creates a saver writing through the given snapshot store.
// An interval of zero saves on every notification.
func NewSaver(snapshots *SnapshotStore, interval time.Duration, log zerolog.Logger) *Saver {
	return &Saver{
		snapshots: snapshots,
		interval:  interval,
		log:       log.With().Str("component", "saver").Logger(),
	}
}

// Notify records the latest state and schedules a write. Safe to pass
// directly to state.Store.Subscribe.
func (s *Saver) Notify(st state.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	todos := st.Todos
	s.pending = &todos

	if s.interval <= 0 {
		s.saveLocked()
		return
	}

	// A running timer already covers this change; the write picks up
	// whatever is pending when it fires.
	if s.timer == nil {
		s.timer = time.AfterFunc(s.interval, s.fire)
	}
}

// Flush synchronously writes any pending state.
func (s *Saver) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.saveLocked()
}

// Close flushes pending state and stops the saver. Notifications after
// Close are ignored.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.saveLocked()
}

func (s *Saver) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer = nil
	s.saveLocked()
}

// saveLocked writes the pending snapshot. Callers hold s.mu.
func (s *Saver) saveLocked() {
	if s.pending == nil {
		return
	}
	todos := *s.pending
	s.pending = nil

	if err := s.snapshots.Save(context.Background(), todos); err != nil {
		s.log.Warn().Err(err).Str("path", s.snapshots.Path()).Msg("snapshot save failed")
	}
}
