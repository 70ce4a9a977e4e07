package models

import "fmt"

// Transition is a requested status change
type Transition int

const (
	MarkDone Transition = iota
	MarkDeleted
	MarkCreated
)

func (tr Transition) String() string {
	switch tr {
	case MarkDone:
		return "mark done"
	case MarkDeleted:
		return "mark deleted"
	case MarkCreated:
		return "mark created"
	default:
		return fmt.Sprintf("transition(%d)", int(tr))
	}
}

// Target returns the status a transition moves a task into
func (tr Transition) Target() Status {
	switch tr {
	case MarkDone:
		return StatusDone
	case MarkDeleted:
		return StatusDeleted
	default:
		return StatusCreated
	}
}

// allowedTransitions holds the forward lifecycle plus the restore edges back to Created.
var allowedTransitions = map[Status]map[Transition]struct{}{
	StatusCreated: {
		MarkDone:    {},
		MarkDeleted: {},
	},
	StatusDone: {
		MarkDeleted: {},
		MarkCreated: {}, // reopen
	},
	StatusDeleted: {
		MarkCreated: {}, // restore
	},
}

// CanTransition reports whether tr may be applied to a task in status from
func CanTransition(from Status, tr Transition) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	_, ok = next[tr]
	return ok
}

// Apply returns the status that results from applying tr to current,
// or ErrIllegalTransition when the lifecycle does not allow it.
func Apply(current Status, tr Transition) (Status, error) {
	if !CanTransition(current, tr) {
		return current, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, tr.Target())
	}
	return tr.Target(), nil
}
