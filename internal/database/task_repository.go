package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/todo/internal/models"
)

const taskColumns = `uuid, task, status, created_at, modified_at`

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TaskRepo stores task records keyed by a surrogate id and looked up by uuid.
type TaskRepo struct {
	db *sql.DB
}

// NewTaskRepo wraps an open database handle
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// Add inserts a new task record. uuid collisions are not checked.
func (r *TaskRepo) Add(ctx context.Context, task models.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?)`,
		task.UUID, task.Task, int(task.Status),
		formatTimestamp(task.CreatedAt), formatTimestamp(task.ModifiedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add task %s: %w", task.UUID, err)
	}
	return nil
}

// Get looks a task up through the uuid index. If the uuid appears more than
// once, the earliest record wins.
func (r *TaskRepo) Get(ctx context.Context, uuid string) (*models.Task, error) {
	_, task, err := getByUUID(ctx, r.db, uuid)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update reads the record for uuid, applies mutate and writes it back in one
// transaction. A missing uuid is not an error. Concurrent updates to the same
// record are last write wins.
func (r *TaskRepo) Update(ctx context.Context, uuid string, mutate func(*models.Task)) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		id, task, err := getByUUID(ctx, tx, uuid)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		mutate(task)

		_, err = tx.ExecContext(ctx,
			`UPDATE tasks
			 SET task = ?, status = ?, modified_at = ?
			 WHERE id = ?`,
			task.Task, int(task.Status), formatTimestamp(task.ModifiedAt), id,
		)
		if err != nil {
			return fmt.Errorf("failed to update task %s: %w", uuid, err)
		}
		return nil
	})
}

// ListAll returns every record in insertion order
func (r *TaskRepo) ListAll(ctx context.Context) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Count returns the number of stored records
func (r *TaskRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// Clear erases every record. It is meant for resets, not for deleting tasks.
func (r *TaskRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	return nil
}

func getByUUID(ctx context.Context, q queryer, uuid string) (int64, *models.Task, error) {
	var id int64
	task, err := scanTask(func(dest ...any) error {
		return q.QueryRowContext(ctx,
			`SELECT id, `+taskColumns+` FROM tasks WHERE uuid = ? ORDER BY id LIMIT 1`,
			uuid,
		).Scan(append([]any{&id}, dest...)...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, ErrNotFound
	}
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get task %s: %w", uuid, err)
	}
	return id, task, nil
}

func scanTask(scan func(dest ...any) error) (*models.Task, error) {
	var task models.Task
	var status int
	var createdAt, modifiedAt string
	if err := scan(&task.UUID, &task.Task, &status, &createdAt, &modifiedAt); err != nil {
		return nil, err
	}

	task.Status = models.Status(status)
	if !task.Status.Valid() {
		return nil, fmt.Errorf("%w: task %s: %w: %d", ErrCorruptRecord, task.UUID, models.ErrInvalidStatus, status)
	}

	var err error
	if task.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if task.ModifiedAt, err = parseTimestamp(modifiedAt); err != nil {
		return nil, err
	}

	return &task, nil
}
