package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/BrooklinJazz/idomatic-redux/internal/todos"
	"github.com/BrooklinJazz/idomatic-redux/pkg/iojson"
)

// AddCmd implements the todos add command.
type AddCmd struct {
	flags *Flags
	app   *todos.App
}

// NewAddCmd creates a new add command.
func NewAddCmd(flags *Flags, app *todos.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application.
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a new todo",
		UsageText: "todos add <text>",
		Description: `Adds a todo with the given text and prints the created item as JSON.

Multiple arguments are joined with spaces, so quoting is optional:

  todos add buy milk
  todos add "walk the dog"`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: todos add <text>")
	}

	text := strings.Join(c.Args().Slice(), " ")

	todo, err := cmd.app.Todos.Add(ctx, text)
	if err != nil {
		return fmt.Errorf("add todo: %w", err)
	}

	return iojson.WriteLine(c.Root().Writer, todo)
}
