package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
)

// ResetCmd returns the reset command
func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task permanently",
		Long: `Remove every task from the database. Unlike 'todo delete' this cannot
be undone, so it requires --force.

Examples:
  todo reset --force
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runReset),
	}

	cmd.Flags().Bool("force", false, "Confirm removing every task")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runReset(ctx context.Context, c *cli.CLI, in *handler.Arguments) (any, error) {
	if !in.GetBool("force") {
		return nil, cli.ErrResetNotConfirmed
	}

	svc := c.App.TaskService
	removed := len(svc.Tasks())
	if err := svc.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset tasks: %w", err)
	}
	return ResetResult{Removed: removed}, nil
}
