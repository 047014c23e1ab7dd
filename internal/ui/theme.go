package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/TaskDeck/internal/app"
)

// Palette is the set of colors a theme draws with.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	Accent    lipgloss.Color
}

var (
	// DarkPalette targets dark terminal backgrounds.
	DarkPalette = Palette{
		Primary:   lipgloss.Color("205"), // Pink
		Secondary: lipgloss.Color("241"), // Gray
		Success:   lipgloss.Color("42"),  // Green
		Error:     lipgloss.Color("160"), // Red
		Warning:   lipgloss.Color("214"), // Orange
		Text:      lipgloss.Color("252"),
		Accent:    lipgloss.Color("87"), // Cyan
	}

	// LightPalette targets light terminal backgrounds.
	LightPalette = Palette{
		Primary:   lipgloss.Color("162"),
		Secondary: lipgloss.Color("245"),
		Success:   lipgloss.Color("28"),
		Error:     lipgloss.Color("124"),
		Warning:   lipgloss.Color("130"),
		Text:      lipgloss.Color("235"),
		Accent:    lipgloss.Color("25"),
	}
)

// PaletteFor returns the palette of a theme. Unknown themes get the light palette.
func PaletteFor(t app.Theme) Palette {
	if t.IsDark() {
		return DarkPalette
	}
	return LightPalette
}
