package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/todo/internal/database"
	"github.com/thenoetrevino/todo/internal/models"
)

// SetupTestDB creates an in-memory database with the task store created.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// CreateTestTask inserts a task record directly and returns its uuid
func CreateTestTask(t *testing.T, db *sql.DB, text string, status models.Status) string {
	t.Helper()
	now := time.Now().UTC()
	task := models.Task{
		UUID:       uuid.NewString(),
		Task:       text,
		Status:     status,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := database.NewTaskRepo(db).Add(context.Background(), task); err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task.UUID
}

// GetTestTask reads a task record directly from the database
func GetTestTask(t *testing.T, db *sql.DB, id string) *models.Task {
	t.Helper()
	task, err := database.NewTaskRepo(db).Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to get test task %s: %v", id, err)
	}
	return task
}
