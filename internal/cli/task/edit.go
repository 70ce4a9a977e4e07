package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
)

// EditCmd returns the edit command
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <uuid> <text...>",
		Short: "Change the text of a task",
		Long: `Change the text of a task. The task may be named by its full uuid or
any prefix that matches exactly one task. Editing to the same text is a no-op
and leaves the modified time alone.

Examples:
  todo edit 3f2a9c buy oat milk
  todo edit 3f2a9c "buy oat milk" --json
`,
		Args: cobra.MinimumNArgs(2),
		RunE: handler.Command(runEdit),
	}

	handler.AddOutputFlags(cmd)

	return cmd
}

func runEdit(ctx context.Context, c *cli.CLI, in *handler.Arguments) (any, error) {
	svc := c.App.TaskService

	current, err := resolveTask(svc, in.Args[0])
	if err != nil {
		return nil, err
	}

	text := strings.Join(in.Args[1:], " ")
	if strings.TrimSpace(text) == "" {
		return nil, cli.ErrEmptyTask
	}

	ticket := svc.EditTask(current.UUID, text)
	if ticket == nil {
		return TaskResult{Task: current, Action: "unchanged"}, nil
	}
	if err := ticket.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	updated, _ := svc.Get(current.UUID)
	return TaskResult{Task: updated, Action: "edited"}, nil
}
