package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/task"
)

var rootCmd = NewRootCmd()

// NewRootCmd builds the todo command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a local task tracker",
		Long: `todo keeps a single list of tasks in a local SQLite database.

Tasks move from created to done or deleted, and done or deleted tasks can be
restored. Every command accepts --json for scripts and --quiet to print only
task uuids.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if path, _ := cmd.Flags().GetString("db"); path != "" {
				cmd.SetContext(cli.WithDBPath(cmd.Context(), path))
			}
		},
	}

	root.PersistentFlags().String("db", "", "Path to the task database (overrides config and TODO_DB_PATH)")
	root.AddCommand(task.Commands()...)

	return root
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	var coded *cli.ExitCodeError
	if errors.As(err, &coded) {
		return coded.Code
	}

	// Argument and flag errors from cobra
	fmt.Fprintf(os.Stderr, "Error: %v\nRun '%s --help' for usage.\n", err, rootCmd.CommandPath())
	return cli.ExitUsage
}
