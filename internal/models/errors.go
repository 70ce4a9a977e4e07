package models

import "errors"

// Domain errors for the task lifecycle
var (
	// ErrIllegalTransition indicates a status change the lifecycle does not allow
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrInvalidStatus indicates an unknown status name or value
	ErrInvalidStatus = errors.New("invalid status")
)
