package models

import "time"

// Task represents a single tracked unit of work
type Task struct {
	UUID       string    `json:"uuid"`
	Task       string    `json:"task"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// GetUUID returns the task identifier (used by quiet CLI output)
func (t Task) GetUUID() string {
	return t.UUID
}

// IsCreated reports whether the task is still open
func IsCreated(t Task) bool {
	return t.Status == StatusCreated
}

// IsDone reports whether the task has been completed
func IsDone(t Task) bool {
	return t.Status == StatusDone
}

// IsDeleted reports whether the task has been marked deleted
func IsDeleted(t Task) bool {
	return t.Status == StatusDeleted
}

// NextModifiedAt returns the timestamp to record for a mutation happening at now.
// The result is UTC and strictly after prev, so ModifiedAt always moves forward
// even when the clock has not.
func NextModifiedAt(prev, now time.Time) time.Time {
	now = now.UTC()
	if !now.After(prev) {
		return prev.UTC().Add(time.Nanosecond)
	}
	return now
}

// FormatLocal renders a stored UTC timestamp in the local timezone
func FormatLocal(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
