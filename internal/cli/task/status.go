package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
	"github.com/thenoetrevino/todo/internal/outbox"
	taskservice "github.com/thenoetrevino/todo/internal/services/task"
)

// markFunc applies one status transition through the task service
type markFunc func(svc taskservice.Service, uuid string) (*outbox.Ticket, error)

// DoneCmd returns the done command
func DoneCmd() *cobra.Command {
	return statusCmd(&cobra.Command{
		Use:   "done <uuid>",
		Short: "Mark a task as done",
		Long: `Mark an open task as done.

Examples:
  todo done 3f2a9c
  todo done 3f2a9c --quiet
`,
	}, taskservice.Service.MarkDone, "done")
}

// DeleteCmd returns the delete command
func DeleteCmd() *cobra.Command {
	return statusCmd(&cobra.Command{
		Use:   "delete <uuid>",
		Short: "Mark a task as deleted",
		Long: `Mark an open or done task as deleted. Deleted tasks stay in the
database and can be brought back with 'todo restore'.

Examples:
  todo delete 3f2a9c
`,
	}, taskservice.Service.MarkDeleted, "deleted")
}

// RestoreCmd returns the restore command
func RestoreCmd() *cobra.Command {
	return statusCmd(&cobra.Command{
		Use:     "restore <uuid>",
		Aliases: []string{"reopen"},
		Short:   "Reopen a done or deleted task",
		Long: `Move a done or deleted task back to created.

Examples:
  todo restore 3f2a9c
`,
	}, taskservice.Service.MarkCreated, "restored")
}

func statusCmd(cmd *cobra.Command, mark markFunc, action string) *cobra.Command {
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = handler.Command(runStatus(mark, action))

	handler.AddOutputFlags(cmd)

	return cmd
}

func runStatus(mark markFunc, action string) handler.Func {
	return func(ctx context.Context, c *cli.CLI, in *handler.Arguments) (any, error) {
		svc := c.App.TaskService

		current, err := resolveTask(svc, in.Args[0])
		if err != nil {
			return nil, err
		}

		ticket, err := mark(svc, current.UUID)
		if err != nil {
			return nil, err
		}
		if err := ticket.Wait(ctx); err != nil {
			return nil, fmt.Errorf("failed to save task: %w", err)
		}

		updated, _ := svc.Get(current.UUID)
		previous := current.Status
		return TaskResult{Task: updated, Action: action, PreviousStatus: &previous}, nil
	}
}
