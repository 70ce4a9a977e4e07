package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/thenoetrevino/todo/internal/app"
	"github.com/thenoetrevino/todo/internal/cli/styles"
	"github.com/thenoetrevino/todo/internal/config"
	"github.com/thenoetrevino/todo/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services

	logFile io.Closer
	owned   bool // App was opened by this CLI and is closed with it
}

// NewCLI loads configuration, opens the task database and loads the task
// collection into memory. When it fails after logging started, the returned
// CLI holds only the log file; call CloseLog once the failure is reported.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path := DBPathFromContext(ctx); path != "" {
		cfg.SetDatabasePath(path)
	}

	// Logging is best effort; a read-only home should not block commands
	logFile, err := logging.Init(cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}

	styles.Init(cfg.ColorScheme)

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return &CLI{logFile: logFile}, err
	}

	c := &CLI{App: application, logFile: logFile, owned: true}
	if err := c.load(ctx); err != nil {
		_ = c.Close()
		return c, err
	}
	return c, nil
}

// newFromApp wraps an App owned by the caller
func newFromApp(ctx context.Context, application *app.App) (*CLI, error) {
	c := &CLI{App: application}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CLI) load(ctx context.Context) error {
	if err := c.App.TaskService.LoadFromStore(ctx); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	return nil
}

// Close waits for pending writes and closes an App this CLI opened. The log
// file stays open until CloseLog.
func (c *CLI) Close() error {
	if c.App == nil {
		return nil
	}
	if !c.owned {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		return c.App.TaskService.Flush(ctx)
	}
	return c.App.Close()
}

// CloseLog releases the log file opened by NewCLI
func (c *CLI) CloseLog() {
	if c.logFile != nil {
		_ = c.logFile.Close()
		c.logFile = nil
	}
}
