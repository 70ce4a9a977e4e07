// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/todo/internal/cli"
)

// Func runs a command against an open CLI and returns the data to print
type Func func(ctx context.Context, c *cli.CLI, args *Arguments) (any, error)

// Arguments captures positional arguments and the invoked command
type Arguments struct {
	Args []string
	cmd  *cobra.Command
}

// GetString returns a string flag, or defaultVal when it is not defined
func (a *Arguments) GetString(name, defaultVal string) string {
	if a.cmd == nil || a.cmd.Flags().Lookup(name) == nil {
		return defaultVal
	}
	v, err := a.cmd.Flags().GetString(name)
	if err != nil {
		return defaultVal
	}
	return v
}

// GetBool returns a bool flag, false when it is not defined
func (a *Arguments) GetBool(name string) bool {
	if a.cmd == nil || a.cmd.Flags().Lookup(name) == nil {
		return false
	}
	v, _ := a.cmd.Flags().GetBool(name)
	return v
}

// Command wraps common command execution logic.
// Returns a cobra RunE compatible function.
func Command(fn Func) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		formatter := Formatter(cmd)

		c, err := cli.GetCLIFromContext(ctx)
		if c != nil {
			// Closed last so failures reported below reach the log
			defer c.CloseLog()
		}
		if err != nil {
			return Fail(formatter, err)
		}

		result, err := fn(ctx, c, &Arguments{Args: args, cmd: cmd})

		// Close waits for queued writes, so success is only reported once
		// they are durable
		closeErr := c.Close()
		if err != nil {
			return Fail(formatter, err)
		}
		if closeErr != nil {
			return Fail(formatter, closeErr)
		}

		return formatter.Success(result)
	}
}

// AddOutputFlags registers the --json and --quiet flags every command takes
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().BoolP("quiet", "q", false, "Minimal output (uuids only)")
}

// Formatter builds the output formatter from the command's flags
func Formatter(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// Fail reports err through the formatter and returns it with its exit code
func Fail(formatter *cli.OutputFormatter, err error) error {
	failure := cli.Classify(err)
	if failure.ExitCode == cli.ExitError {
		slog.Error("command failed", "error", err)
	}
	if fmtErr := formatter.ErrorWithSuggestion(failure.Code, err.Error(), failure.Suggestion); fmtErr != nil {
		slog.Error("failed to write error output", "error", fmtErr)
	}
	return &cli.ExitCodeError{Code: failure.ExitCode, Err: err}
}
