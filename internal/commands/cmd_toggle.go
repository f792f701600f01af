package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/BrooklinJazz/idomatic-redux/internal/todos"
	"github.com/BrooklinJazz/idomatic-redux/pkg/iojson"
)

// ToggleCmd implements the todos toggle command.
type ToggleCmd struct {
	flags *Flags
	app   *todos.App
}

// NewToggleCmd creates a new toggle command.
func NewToggleCmd(flags *Flags, app *todos.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application.
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Usage:     "Toggle a todo between active and completed",
		UsageText: "todos toggle <id>",
		Description: `Flips the completed flag of the todo with the given id and prints the
updated item as JSON. Toggling a completed todo makes it active again.

Examples:
  todos toggle 4e3b2a…`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: todos toggle <id>")
	}

	todo, err := cmd.app.Todos.Toggle(ctx, c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("toggle todo: %w", err)
	}

	return iojson.WriteLine(c.Root().Writer, todo)
}
