package outbox

import "errors"

var (
	// ErrQueueFull indicates the outbox buffer has no room for another command
	ErrQueueFull = errors.New("outbox queue is full")

	// ErrClosed indicates the outbox no longer accepts commands
	ErrClosed = errors.New("outbox is closed")
)
