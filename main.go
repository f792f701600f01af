package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/BrooklinJazz/idomatic-redux/internal/commands"
	"github.com/BrooklinJazz/idomatic-redux/internal/core/config"
	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
	"github.com/BrooklinJazz/idomatic-redux/internal/store/jsonfile"
	"github.com/BrooklinJazz/idomatic-redux/internal/todos"
	"github.com/BrooklinJazz/idomatic-redux/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		todosApp  = &todos.App{}
		saver     *jsonfile.Saver
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "todos",
		Usage:     "Manage a todo list from the command line",
		UsageText: "todos [global options] command [command options]",
		Description: `Todos keeps a list of tasks in a single JSON file and exposes the
classic operations: add items, toggle them complete, and list a visible
slice chosen by a route path or filter.

Run 'todos' with no arguments to list everything.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TODOS_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("TODOS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TODOS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TODOS_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			snapshots := jsonfile.NewSnapshotStore(cfg.SnapshotPath())

			// A broken snapshot must not brick the CLI; log it and start empty.
			loaded, err := snapshots.Load(ctx)
			if err != nil {
				log.Warn().Err(err).Str("path", snapshots.Path()).Msg("snapshot unreadable, starting empty")
				loaded = state.Todos{}
			}

			store := state.NewStore(state.State{Todos: loaded})

			saver = jsonfile.NewSaver(snapshots, cfg.Interval(), logger)
			store.Subscribe(saver.Notify)

			svcLogger := log.With().Str("component", "todos").Logger()
			svc := todos.NewService(store, svcLogger)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*todosApp = *todos.NewApp(svc, store, snapshots, cfg)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Flush any pending snapshot write before exit
			if saver != nil {
				saver.Close()
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	lsCmd := commands.NewLsCmd(flags, todosApp)

	app = commands.NewAddCmd(flags, todosApp).Register(app)
	app = commands.NewToggleCmd(flags, todosApp).Register(app)
	app = lsCmd.Register(app)
	app = commands.NewWatchCmd(flags, todosApp).Register(app)

	// Plain listing when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'todos --help' for usage", c.Args().First())
		}
		return lsCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
