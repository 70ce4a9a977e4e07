package task

import "github.com/thenoetrevino/todo/internal/models"

// Views is the canonical collection split by status
type Views struct {
	Created []models.Task
	Done    []models.Task
	Deleted []models.Task
}

// Filter returns the tasks with the given status, preserving order
func Filter(tasks []models.Task, status models.Status) []models.Task {
	filtered := make([]models.Task, 0)
	for _, t := range tasks {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Partition splits tasks into one list per status. Every task lands in
// exactly one list.
func Partition(tasks []models.Task) Views {
	return Views{
		Created: Filter(tasks, models.StatusCreated),
		Done:    Filter(tasks, models.StatusDone),
		Deleted: Filter(tasks, models.StatusDeleted),
	}
}

// ByStatus returns the list holding status
func (v Views) ByStatus(status models.Status) []models.Task {
	switch status {
	case models.StatusDone:
		return v.Done
	case models.StatusDeleted:
		return v.Deleted
	default:
		return v.Created
	}
}

// Len returns the total number of tasks across all lists
func (v Views) Len() int {
	return len(v.Created) + len(v.Done) + len(v.Deleted)
}
