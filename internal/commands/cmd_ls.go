package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/BrooklinJazz/idomatic-redux/internal/core/route"
	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
	"github.com/BrooklinJazz/idomatic-redux/internal/todos"
	"github.com/BrooklinJazz/idomatic-redux/pkg/iojson"
)

// LsCmd implements the todos ls command.
type LsCmd struct {
	flags *Flags
	app   *todos.App

	// flags
	filter     string
	match      string
	jsonOutput bool
}

// NewLsCmd creates a new ls command.
func NewLsCmd(flags *Flags, app *todos.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List todos",
		UsageText: "todos ls [path] [--filter <filter>] [--match <glob>] [--json]",
		Description: `Displays a table of todos with their id, status, and text.

The visible slice is selected by a route path: "/" shows everything,
"/active" and "/completed" show the respective subsets. --filter accepts
the bare filter name instead. With no path and no flag, all todos are
shown.

Examples:
  todos ls
  todos ls /active
  todos ls --filter completed
  todos ls --match "buy*" --json`,
		Flags:  cmd.lsFlags(),
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) lsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "filter",
			Aliases:     []string{"f"},
			Usage:       "filter by status (all, active, completed)",
			Destination: &cmd.filter,
		},
		&cli.StringFlag{
			Name:        "match",
			Aliases:     []string{"m"},
			Usage:       "only show todos whose text matches the glob pattern",
			Destination: &cmd.match,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output as JSON lines",
			Destination: &cmd.jsonOutput,
		},
	}
}

// Run lists todos with the current flag values. Exposed so the root command
// can fall back to a plain listing when no subcommand is given.
func (cmd *LsCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	filter, err := cmd.resolveFilter(c)
	if err != nil {
		return err
	}

	visible, err := cmd.app.Todos.Visible(ctx, filter)
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}

	if cmd.match != "" {
		visible, err = matchTodos(visible, cmd.match)
		if err != nil {
			return err
		}
	}

	return renderTodos(c, visible, cmd.jsonOutput)
}

// resolveFilter picks the visibility filter from the positional route path
// or the --filter flag. The path wins; supplying both is an error.
func (cmd *LsCmd) resolveFilter(c *cli.Command) (state.Filter, error) {
	if c.NArg() > 0 {
		if cmd.filter != "" {
			return "", fmt.Errorf("use either a route path or --filter, not both")
		}
		return route.FromPath(c.Args().Get(0))
	}

	return state.ParseFilter(cmd.filter)
}

func matchTodos(visible []state.Todo, pattern string) ([]state.Todo, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid match pattern %q", pattern)
	}

	out := make([]state.Todo, 0, len(visible))
	for _, todo := range visible {
		ok, err := doublestar.Match(pattern, todo.Text)
		if err != nil {
			return nil, fmt.Errorf("match pattern %q: %w", pattern, err)
		}
		if ok {
			out = append(out, todo)
		}
	}
	return out, nil
}

func renderTodos(c *cli.Command, visible []state.Todo, jsonOutput bool) error {
	if jsonOutput {
		for _, todo := range visible {
			if err := iojson.WriteLine(c.Root().Writer, todo); err != nil {
				return err
			}
		}
		return nil
	}

	if len(visible) == 0 {
		_, err := fmt.Fprintln(c.Root().Writer, "no todos")
		return err
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
	for _, todo := range visible {
		mark := " "
		if todo.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "%s\t[%s]\t%s\n", todo.ID, mark, todo.Text)
	}
	return w.Flush()
}
