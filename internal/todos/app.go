// Package todos wires the state container, persistence, and configuration
// into the services the CLI commands operate on.
package todos

import (
	"github.com/BrooklinJazz/idomatic-redux/internal/core/config"
	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
	"github.com/BrooklinJazz/idomatic-redux/internal/store/jsonfile"
)

// App aggregates the wired application components. A single instance is
// populated in the CLI Before hook and shared by all commands.
type App struct {
	Todos     *Service
	Store     *state.Store
	Snapshots *jsonfile.SnapshotStore
	Config    *config.Config
}

// NewApp creates a new App from its wired components.
func NewApp(svc *Service, store *state.Store, snapshots *jsonfile.SnapshotStore, cfg *config.Config) *App {
	return &App{
		Todos:     svc,
		Store:     store,
		Snapshots: snapshots,
		Config:    cfg,
	}
}
