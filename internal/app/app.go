package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/todo/internal/config"
	"github.com/thenoetrevino/todo/internal/database"
	"github.com/thenoetrevino/todo/internal/outbox"
	taskservice "github.com/thenoetrevino/todo/internal/services/task"
)

// shutdownTimeout bounds how long Close waits for queued writes
const shutdownTimeout = 5 * time.Second

// App holds all application services and provides dependency injection.
// It owns the database handle and the write queue, and is the only place
// either is created or closed.
type App struct {
	db     *sql.DB
	writes *outbox.Outbox
	cancel context.CancelFunc
	logger *slog.Logger

	// Service layer (business logic)
	TaskService taskservice.Service
}

// Open opens the database named by cfg and builds the application on top of it
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}
	opts = append([]Option{WithOutboxConfig(cfg.Outbox)}, opts...)
	return New(db, opts...), nil
}

// New creates a new App around an open database handle. The App takes
// ownership of db and closes it in Close.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	writes := outbox.New(cfg.outbox.QueueSize,
		outbox.WithMaxAttempts(cfg.outbox.MaxAttempts),
		outbox.WithBaseDelay(cfg.outbox.BaseDelay),
		outbox.WithLogger(logger),
		outbox.WithFailureHandler(func(cmd outbox.Command, err error) {
			logger.Error("durable write lost",
				"command", cmd.Name,
				"uuid", cmd.Key,
				"error", err)
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	writes.Start(ctx)

	repo := database.NewTaskRepo(db)
	taskOpts := append([]taskservice.Option{taskservice.WithLogger(logger)}, cfg.taskOptions...)

	return &App{
		db:          db,
		writes:      writes,
		cancel:      cancel,
		logger:      logger,
		TaskService: taskservice.NewStore(repo, writes, taskOpts...),
	}
}

// Metrics returns a snapshot of the write queue counters
func (a *App) Metrics() outbox.MetricsSnapshot {
	return a.writes.Metrics().Snapshot()
}

// Close drains queued writes, then closes the database.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.writes.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to drain pending writes: %w", err))
	}
	a.cancel()

	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}

	if snapshot := a.Metrics(); snapshot.Failed > 0 || snapshot.Dropped > 0 {
		a.logger.Warn("session ended with lost writes",
			"failed", snapshot.Failed,
			"dropped", snapshot.Dropped)
	}

	return errors.Join(errs...)
}
