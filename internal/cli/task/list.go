package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
	"github.com/thenoetrevino/todo/internal/models"
)

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks grouped by status",
		Long: `List tasks grouped by status, oldest first within each group.

Examples:
  # Everything
  todo list

  # Only open tasks
  todo list --status created

  # uuids of finished tasks
  todo list --status done --quiet
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(runList),
	}

	cmd.Flags().String("status", "all", "Filter by status: created, done, deleted, all")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, c *cli.CLI, in *handler.Arguments) (any, error) {
	statuses, err := parseStatusFilter(in.GetString("status", "all"))
	if err != nil {
		return nil, err
	}

	views := c.App.TaskService.Views()
	result := ListResult{Groups: make([]Group, 0, len(statuses))}
	for _, status := range statuses {
		result.Groups = append(result.Groups, Group{Status: status, Tasks: views.ByStatus(status)})
	}
	return result, nil
}

func parseStatusFilter(filter string) ([]models.Status, error) {
	if filter == "" || strings.EqualFold(filter, "all") {
		return models.AllStatuses, nil
	}
	status, err := models.ParseStatus(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", cli.ErrInvalidStatusValue, filter)
	}
	return []models.Status{status}, nil
}
