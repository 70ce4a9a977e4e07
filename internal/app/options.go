package app

import (
	"log/slog"

	"github.com/thenoetrevino/todo/internal/config"
	taskservice "github.com/thenoetrevino/todo/internal/services/task"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger      *slog.Logger
	outbox      config.OutboxConfig
	taskOptions []taskservice.Option
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithOutboxConfig tunes the durable write queue
func WithOutboxConfig(oc config.OutboxConfig) Option {
	return func(cfg *appConfig) {
		cfg.outbox = oc
	}
}

// WithTaskOptions passes options through to the task store
func WithTaskOptions(opts ...taskservice.Option) Option {
	return func(cfg *appConfig) {
		cfg.taskOptions = append(cfg.taskOptions, opts...)
	}
}
