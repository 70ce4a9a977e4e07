package cli

import (
	"database/sql"
	"testing"

	"github.com/thenoetrevino/todo/internal/app"
	"github.com/thenoetrevino/todo/internal/models"
	"github.com/thenoetrevino/todo/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	appInstance := app.New(db)
	t.Cleanup(func() {
		_ = appInstance.Close()
	})

	return db, appInstance
}

// CreateTestTask wraps testutil.CreateTestTask for CLI tests
func CreateTestTask(t *testing.T, db *sql.DB, text string, status models.Status) string {
	t.Helper()
	return testutil.CreateTestTask(t, db, text, status)
}

// GetTestTask wraps testutil.GetTestTask for CLI tests
func GetTestTask(t *testing.T, db *sql.DB, id string) *models.Task {
	t.Helper()
	return testutil.GetTestTask(t, db, id)
}
