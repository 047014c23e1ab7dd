package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/models"
)

// Styles holds every lipgloss style the views render with.
type Styles struct {
	Palette Palette

	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Text    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	Header     lipgloss.Style
	TableHead  lipgloss.Style
	Done       lipgloss.Style
	Overdue    lipgloss.Style
	Cursor     lipgloss.Style
	ActiveTab  lipgloss.Style
	Tab        lipgloss.Style
	InputBox   lipgloss.Style
	ProgressOn lipgloss.Style

	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style
}

// NewStyles builds the styles for a theme.
func NewStyles(t app.Theme) Styles {
	p := PaletteFor(t)
	return Styles{
		Palette: p,

		Title:   lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Subtle:  lipgloss.NewStyle().Foreground(p.Secondary),
		Text:    lipgloss.NewStyle().Foreground(p.Text),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Error:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),

		Header: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Padding(0, 1),
		TableHead: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Done:      lipgloss.NewStyle().Foreground(p.Secondary).Strikethrough(true),
		Overdue:   lipgloss.NewStyle().Foreground(p.Error),
		Cursor:    lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		ActiveTab: lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Underline(true),
		Tab:       lipgloss.NewStyle().Foreground(p.Secondary),
		InputBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(0, 1),
		ProgressOn: lipgloss.NewStyle().Foreground(p.Success),

		PriorityHigh:   lipgloss.NewStyle().Foreground(p.Error),
		PriorityMedium: lipgloss.NewStyle().Foreground(p.Warning),
		PriorityLow:    lipgloss.NewStyle().Foreground(p.Success),
	}
}

// Priority returns the style for a priority level.
func (s Styles) Priority(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return s.PriorityHigh
	case models.PriorityLow:
		return s.PriorityLow
	default:
		return s.PriorityMedium
	}
}

// Severity returns the style a notification is shown with.
func (s Styles) Severity(sev app.Severity) lipgloss.Style {
	switch sev {
	case app.SeveritySuccess:
		return s.Success
	case app.SeverityError:
		return s.Error
	default:
		return s.Text
	}
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
