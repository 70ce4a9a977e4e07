package cli

import (
	"context"
	"time"

	"github.com/thenoetrevino/todo/internal/app"
)

// flushTimeout bounds how long a command waits for writes on a shared App
const flushTimeout = 5 * time.Second

type contextKey string

const (
	appKey    contextKey = "app"
	dbPathKey contextKey = "dbPath"
)

// WithApp returns a context carrying an already open App. Commands run with
// this context use it instead of opening the configured database.
func WithApp(ctx context.Context, application *app.App) context.Context {
	return context.WithValue(ctx, appKey, application)
}

// WithDBPath returns a context carrying a database path override
func WithDBPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, dbPathKey, path)
}

// DBPathFromContext returns the database path override, if any
func DBPathFromContext(ctx context.Context) string {
	path, _ := ctx.Value(dbPathKey).(string)
	return path
}

// GetCLIFromContext returns the CLI for a command invocation. It may return
// a non-nil CLI together with an error; see NewCLI.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if application, ok := ctx.Value(appKey).(*app.App); ok && application != nil {
		return newFromApp(ctx, application)
	}
	return NewCLI(ctx)
}
