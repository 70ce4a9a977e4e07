package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the version recorded in PRAGMA user_version once the
// task store has been created.
const SchemaVersion = 1

// runMigrations creates the task store the first time a database is opened.
// There is a single versioned creation step; opening an already created store
// is a no-op.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	switch {
	case version == SchemaVersion:
		return nil
	case version > SchemaVersion:
		return fmt.Errorf("%w: found %d, supported %d", ErrSchemaTooNew, version, SchemaVersion)
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		// uuid is indexed but not declared unique; uniqueness comes from generation
		statements := []string{
			`CREATE TABLE IF NOT EXISTS tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				uuid TEXT NOT NULL,
				task TEXT NOT NULL,
				status INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL,
				modified_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_uuid ON tasks(uuid)`,
			fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion),
		}

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
