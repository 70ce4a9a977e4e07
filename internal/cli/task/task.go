// Package task holds the commands that read and change tasks
package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/models"
	taskservice "github.com/thenoetrevino/todo/internal/services/task"
)

// shortUUIDLen is how much of a uuid human output shows
const shortUUIDLen = 8

// Commands returns every task command, for registration on the root command
func Commands() []*cobra.Command {
	return []*cobra.Command{
		AddCmd(),
		EditCmd(),
		DoneCmd(),
		DeleteCmd(),
		RestoreCmd(),
		ListCmd(),
		ShowCmd(),
		ResetCmd(),
	}
}

// resolveTask finds the task named by ref, which is a full uuid or a
// prefix matching exactly one task
func resolveTask(svc taskservice.Service, ref string) (models.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Task{}, fmt.Errorf("%w: empty uuid", cli.ErrTaskNotFound)
	}
	if t, ok := svc.Get(ref); ok {
		return t, nil
	}

	var match models.Task
	matches := 0
	for _, t := range svc.Tasks() {
		if strings.HasPrefix(t.UUID, ref) {
			match = t
			matches++
		}
	}
	switch matches {
	case 0:
		return models.Task{}, fmt.Errorf("%w: %s", cli.ErrTaskNotFound, ref)
	case 1:
		return match, nil
	default:
		return models.Task{}, fmt.Errorf("%w: %s", cli.ErrAmbiguousUUID, ref)
	}
}

func shortUUID(id string) string {
	if len(id) <= shortUUIDLen {
		return id
	}
	return id[:shortUUIDLen]
}
