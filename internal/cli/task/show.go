package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
)

// ShowCmd returns the show command
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <uuid>",
		Short: "Show one task in detail",
		Long: `Show one task with its status and timestamps in local time.

Examples:
  todo show 3f2a9c
  todo show 3f2a9c --json
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(runShow),
	}

	handler.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, c *cli.CLI, in *handler.Arguments) (any, error) {
	t, err := resolveTask(c.App.TaskService, in.Args[0])
	if err != nil {
		return nil, err
	}
	return ShowResult{Task: t}, nil
}
