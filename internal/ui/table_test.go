package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Task", "Priority"},
		Rows: [][]string{
			{"task-1", "Buy milk", "low"},
			{"task-22", "Call the plumber about the sink", "medium"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 7, widths[0])
	assert.Equal(t, 31, widths[1])
	assert.Equal(t, 8, widths[2]) // header is the widest
}

func TestTable_ColumnWidths_WideRunes(t *testing.T) {
	table := &Table{
		Headers: []string{"P"},
		Rows:    [][]string{{"🔴 High"}},
	}
	assert.Equal(t, lipgloss.Width("🔴 High"), table.ColumnWidths()[0])
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Task"},
		Rows:     [][]string{{"a", "This is a very long description that should be truncated"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Task"},
		Rows: [][]string{
			{"1", "Buy milk"},
			{"2", "Walk dog"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Task")
	assert.Contains(t, output, "Buy milk")
	assert.Contains(t, output, "Walk dog")
	assert.Contains(t, output, "─")
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}
	assert.Empty(t, table.Render())
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long"}},
		MaxWidth: 10,
	}

	output := table.Render()
	assert.Contains(t, output, "This is w…")
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Task", "Due"},
		Rows:    [][]string{{"1", "Buy milk"}},
	}

	output := table.Render()

	assert.Contains(t, output, "Buy milk")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 3)
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"hello world", 6, "hello…"},
		{"hello", 1, "…"},
		{"héllo wörld", 4, "hél…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fit(tt.in, tt.width), "fit(%q, %d)", tt.in, tt.width)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
		{"é", 3, "é  "},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, padRight(tc.input, tc.width))
	}
}
