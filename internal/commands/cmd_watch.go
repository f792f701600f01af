package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/BrooklinJazz/idomatic-redux/internal/core/route"
	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
	"github.com/BrooklinJazz/idomatic-redux/internal/store/jsonfile"
	"github.com/BrooklinJazz/idomatic-redux/internal/todos"
)

// WatchCmd implements the todos watch command.
type WatchCmd struct {
	flags *Flags
	app   *todos.App
}

// NewWatchCmd creates a new watch command.
func NewWatchCmd(flags *Flags, app *todos.App) *WatchCmd {
	return &WatchCmd{flags: flags, app: app}
}

// Register adds the watch command to the application.
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Live view of the todo list",
		UsageText: "todos watch [path]",
		Description: `Prints the visible todos as JSON lines and reprints them whenever
another process modifies the data file. The optional route path selects the
visible slice, like in ls. Stop with Ctrl-C.

Examples:
  todos watch
  todos watch /active`,
		Action: cmd.run,
	})

	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	filter := state.FilterAll
	if c.NArg() > 0 {
		var err error
		filter, err = route.FromPath(c.Args().Get(0))
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := jsonfile.NewSnapshotWatcher(cmd.app.Snapshots.Path())
	if err != nil {
		return fmt.Errorf("watch snapshot: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	events := watcher.Watch(ctx)

	// Initial render from the in-memory store.
	if err := cmd.render(c, cmd.app.Store.State(), filter); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}

			loaded, err := cmd.app.Snapshots.Load(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("reload snapshot after change")
				continue
			}

			if err := cmd.render(c, state.State{Todos: loaded}, filter); err != nil {
				return err
			}
		}
	}
}

func (cmd *WatchCmd) render(c *cli.Command, st state.State, filter state.Filter) error {
	visible, err := state.VisibleTodos(st, filter)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "--- %s (%d) ---\n", filter, len(visible))
	return renderTodos(c, visible, true)
}
