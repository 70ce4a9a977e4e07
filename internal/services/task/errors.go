package task

import "github.com/thenoetrevino/todo/internal/models"

// ErrIllegalTransition is returned when a mark operation does not fit the
// task lifecycle. It is the same value as models.ErrIllegalTransition so
// callers can check either.
var ErrIllegalTransition = models.ErrIllegalTransition
