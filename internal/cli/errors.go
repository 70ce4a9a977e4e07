package cli

import (
	"errors"

	"github.com/thenoetrevino/todo/internal/database"
	"github.com/thenoetrevino/todo/internal/models"
	"github.com/thenoetrevino/todo/internal/outbox"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrAmbiguousUUID      = errors.New("uuid prefix matches more than one task")
	ErrEmptyTask          = errors.New("task text cannot be empty")
	ErrResetNotConfirmed  = errors.New("reset requires --force")
	ErrInvalidStatusValue = errors.New("invalid status filter")
)

// Failure describes how a command error is reported
type Failure struct {
	Code       string // machine readable, used in JSON output
	ExitCode   int
	Suggestion string
}

// Classify maps a command error to its reported code and exit status
func Classify(err error) Failure {
	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, database.ErrNotFound):
		return Failure{Code: "TASK_NOT_FOUND", ExitCode: ExitNotFound,
			Suggestion: "Run 'todo list' to see task uuids"}
	case errors.Is(err, ErrAmbiguousUUID):
		return Failure{Code: "AMBIGUOUS_UUID", ExitCode: ExitUsage,
			Suggestion: "Use a longer uuid prefix"}
	case errors.Is(err, ErrEmptyTask):
		return Failure{Code: "EMPTY_TASK", ExitCode: ExitValidation}
	case errors.Is(err, models.ErrIllegalTransition):
		return Failure{Code: "ILLEGAL_TRANSITION", ExitCode: ExitValidation,
			Suggestion: "Use 'todo restore' to reopen a done or deleted task"}
	case errors.Is(err, ErrResetNotConfirmed):
		return Failure{Code: "NOT_CONFIRMED", ExitCode: ExitUsage,
			Suggestion: "Run 'todo reset --force' to delete every task"}
	case errors.Is(err, database.ErrCorruptRecord):
		return Failure{Code: "CORRUPT_RECORD", ExitCode: ExitDataErr}
	case errors.Is(err, ErrInvalidStatusValue), errors.Is(err, models.ErrInvalidStatus):
		return Failure{Code: "INVALID_STATUS", ExitCode: ExitUsage,
			Suggestion: "Use one of: created, done, deleted, all"}
	case errors.Is(err, database.ErrSchemaTooNew):
		return Failure{Code: "SCHEMA_TOO_NEW", ExitCode: ExitDataErr,
			Suggestion: "Upgrade todo to open this database"}
	case errors.Is(err, outbox.ErrQueueFull), errors.Is(err, outbox.ErrClosed):
		return Failure{Code: "SAVE_FAILED", ExitCode: ExitError}
	default:
		return Failure{Code: "ERROR", ExitCode: ExitError}
	}
}
