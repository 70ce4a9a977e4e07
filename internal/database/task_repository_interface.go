package database

import (
	"context"

	"github.com/thenoetrevino/todo/internal/models"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	Get(ctx context.Context, uuid string) (*models.Task, error)
	ListAll(ctx context.Context) ([]*models.Task, error)
	Count(ctx context.Context) (int, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	Add(ctx context.Context, task models.Task) error
	Update(ctx context.Context, uuid string, mutate func(*models.Task)) error
	Clear(ctx context.Context) error
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
}

// Compile-time verification that *TaskRepo implements TaskRepository
var _ TaskRepository = (*TaskRepo)(nil)
