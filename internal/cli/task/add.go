package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
)

// AddCmd returns the add command
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new task",
		Long: `Add a new task. All arguments are joined with spaces to form the task text.

Examples:
  # Add a task
  todo add buy milk

  # JSON output for agents
  todo add "write report" --json

  # Quiet mode for bash capture
  ID=$(todo add "call mom" --quiet)
`,
		Args: cobra.MinimumNArgs(1),
		RunE: handler.Command(runAdd),
	}

	handler.AddOutputFlags(cmd)

	return cmd
}

func runAdd(ctx context.Context, c *cli.CLI, in *handler.Arguments) (any, error) {
	text := strings.Join(in.Args, " ")
	if strings.TrimSpace(text) == "" {
		return nil, cli.ErrEmptyTask
	}

	created, ticket := c.App.TaskService.CreateTaskFrom(text)
	if created.UUID == "" {
		return nil, cli.ErrEmptyTask
	}
	if err := ticket.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return TaskResult{Task: created, Action: "created"}, nil
}
