package models

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a task. The numeric values are persisted.
type Status int

const (
	StatusCreated Status = 0
	StatusDone    Status = 1
	StatusDeleted Status = 2
)

// AllStatuses lists every status in display order
var AllStatuses = []Status{StatusCreated, StatusDone, StatusDeleted}

// String returns the lowercase name used on the command line and in JSON
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusDone:
		return "done"
	case StatusDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Label returns the human readable form of the status
func (s Status) Label() string {
	switch s {
	case StatusCreated:
		return "Created"
	case StatusDone:
		return "Done"
	case StatusDeleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s >= StatusCreated && s <= StatusDeleted
}

// ParseStatus maps a status name to its value
func ParseStatus(name string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "created":
		return StatusCreated, nil
	case "done":
		return StatusDone, nil
	case "deleted":
		return StatusDeleted, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be: created, done, deleted)", ErrInvalidStatus, name)
	}
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
