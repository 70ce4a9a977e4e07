package task

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thenoetrevino/todo/internal/cli/styles"
	"github.com/thenoetrevino/todo/internal/models"
)

// TaskResult is the output of a command that changed one task
type TaskResult struct {
	models.Task
	Action         string         `json:"action"`
	PreviousStatus *models.Status `json:"previous_status,omitempty"`
}

// Human renders the result as a single line
func (r TaskResult) Human() string {
	line := fmt.Sprintf("%s %s  %s",
		styles.SuccessStyle.Render(actionLabel(r.Action)),
		styles.SubtleStyle.Render(shortUUID(r.UUID)),
		r.Task.Task)
	if r.PreviousStatus != nil {
		line += styles.SubtleStyle.Render(fmt.Sprintf("  (was %s)", r.PreviousStatus))
	}
	return line
}

func actionLabel(action string) string {
	if action == "" {
		return ""
	}
	return strings.ToUpper(action[:1]) + action[1:]
}

// ShowResult is the detailed view of one task
type ShowResult struct {
	models.Task
}

// Human renders the task as a card
func (r ShowResult) Human() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(r.Task.Task))
	b.WriteString("\n\n")
	row := func(label, value string) {
		b.WriteString(styles.LabelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("UUID:    ", styles.ValueStyle.Render(r.UUID))
	row("Status:  ", styles.StatusBadge(r.Status))
	row("Created: ", styles.ValueStyle.Render(models.FormatLocal(r.CreatedAt)))
	row("Modified:", styles.ValueStyle.Render(models.FormatLocal(r.ModifiedAt)))
	return styles.RenderCard(strings.TrimSuffix(b.String(), "\n"))
}

// Group is the tasks sharing one status
type Group struct {
	Status models.Status
	Tasks  []models.Task
}

// ListResult is the output of list, grouped by status in display order
type ListResult struct {
	Groups []Group
}

// MarshalJSON encodes the groups as an object keyed by status name
func (r ListResult) MarshalJSON() ([]byte, error) {
	out := make(map[string][]models.Task, len(r.Groups))
	for _, g := range r.Groups {
		out[g.Status.String()] = g.Tasks
	}
	return json.Marshal(out)
}

// UUIDs returns every listed uuid in display order
func (r ListResult) UUIDs() []string {
	var ids []string
	for _, g := range r.Groups {
		for _, t := range g.Tasks {
			ids = append(ids, t.UUID)
		}
	}
	return ids
}

// Human renders one section per status
func (r ListResult) Human() string {
	if len(r.UUIDs()) == 0 {
		return styles.SubtleStyle.Render("No tasks")
	}

	var sections []string
	for _, g := range r.Groups {
		if len(g.Tasks) == 0 {
			continue
		}
		lines := []string{styles.SectionStyle.Render(fmt.Sprintf("%s (%d)", g.Status.Label(), len(g.Tasks)))}
		for _, t := range g.Tasks {
			lines = append(lines, fmt.Sprintf("  %s  %s  %s",
				styles.SubtleStyle.Render(shortUUID(t.UUID)),
				styles.StatusBadge(t.Status),
				t.Task))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n")
}

// ResetResult is the output of reset
type ResetResult struct {
	Removed int `json:"removed"`
}

// Human reports how many tasks were removed
func (r ResetResult) Human() string {
	noun := "tasks"
	if r.Removed == 1 {
		noun = "task"
	}
	return fmt.Sprintf("Removed %d %s", r.Removed, noun)
}
