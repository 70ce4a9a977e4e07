package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/todo/internal/config"
	"github.com/thenoetrevino/todo/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 72

	// Text styles
	TitleStyle   lipgloss.Style
	SubtleStyle  lipgloss.Style // uuids and timestamps
	LabelStyle   lipgloss.Style // For field labels like "Status:", "Created:"
	ValueStyle   lipgloss.Style // For field values
	SectionStyle lipgloss.Style // For section headers like "Done (2)"

	// Message styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	badgeStyles map[models.Status]lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	badge := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(hex))
	}
	badgeStyles = map[models.Status]lipgloss.Style{
		models.StatusCreated: badge(colors.Created),
		models.StatusDone:    badge(colors.Done),
		models.StatusDeleted: badge(colors.Deleted),
	}
}

// StatusBadge renders the display name of a status in its theme color
func StatusBadge(status models.Status) string {
	style, ok := badgeStyles[status]
	if !ok {
		return status.Label()
	}
	return style.Render(status.Label())
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
