package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/TaskDeck/internal/utils"
)

// Table renders rows in a compact, fixed-width terminal layout.
// Widths are measured in terminal cells, so emoji and wide runes line up.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)
	Styles   *Styles
	// RowStyle, when set, picks the cell style for a row.
	RowStyle func(row int) lipgloss.Style
}

// ColumnWidths calculates column widths from headers and content.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	if t.MaxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], t.MaxWidth)
		}
	}
	return widths
}

// Render outputs the table to a string.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	st := t.Styles
	if st == nil {
		def := NewStyles("")
		st = &def
	}
	widths := t.ColumnWidths()
	var sb strings.Builder

	headerCells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headerCells[i] = st.TableHead.Render(padRight(h, widths[i]))
	}
	sb.WriteString(" " + strings.Join(headerCells, "  ") + "\n")

	sepParts := make([]string, len(widths))
	for i, w := range widths {
		sepParts[i] = st.Subtle.Render(strings.Repeat("─", w))
	}
	sb.WriteString(" " + strings.Join(sepParts, "──") + "\n")

	for r, row := range t.Rows {
		cellStyle := st.Text
		if t.RowStyle != nil {
			cellStyle = t.RowStyle(r)
		}
		cells := make([]string, len(t.Headers))
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			cells[i] = cellStyle.Render(padRight(fit(val, widths[i]), widths[i]))
		}
		sb.WriteString(" " + strings.Join(cells, "  ") + "\n")
	}

	return sb.String()
}

// fit shortens s to at most width cells, marking the cut with an ellipsis.
func fit(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// padRight pads a string to the specified cell width.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// TruncateText shortens task text for one-line displays such as prompts.
func TruncateText(s string, maxLen int) string {
	return utils.Truncate(s, maxLen)
}
