package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/TaskDeck/internal/task"
	"github.com/josephgoksu/TaskDeck/internal/util"
	"github.com/josephgoksu/TaskDeck/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTextWidth caps the task column in tables.
const DefaultTextWidth = 60

var titleCaser = cases.Title(language.English)

// PriorityIcon returns the marker shown next to a priority.
func PriorityIcon(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "🔴"
	case models.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}

// PriorityLabel returns "High", "Medium" or "Low".
func PriorityLabel(p models.Priority) string {
	return titleCaser.String(string(p))
}

// StatusBox renders the completion checkbox.
func StatusBox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// DueLabel renders the due date column, marking overdue active tasks.
func DueLabel(t models.Task, today time.Time) string {
	if t.DueDate == "" {
		return "-"
	}
	if t.IsOverdue(today) {
		return t.DueDate + " (Overdue)"
	}
	return t.DueDate
}

// TaskRow returns the table cells for one task.
func TaskRow(t models.Task, today time.Time) []string {
	return []string{
		StatusBox(t.Completed),
		util.ShortID(t.ID, 0),
		t.Text,
		PriorityIcon(t.Priority) + " " + PriorityLabel(t.Priority),
		DueLabel(t, today),
	}
}

// RenderTaskTable renders tasks as a table.
func RenderTaskTable(tasks []models.Task, today time.Time, st Styles) string {
	rows := make([][]string, len(tasks))
	for i, t := range tasks {
		rows[i] = TaskRow(t, today)
	}
	table := &Table{
		Headers:  []string{"", "ID", "Task", "Priority", "Due"},
		Rows:     rows,
		MaxWidth: DefaultTextWidth,
		Styles:   &st,
		RowStyle: func(r int) lipgloss.Style {
			switch {
			case tasks[r].Completed:
				return st.Done
			case tasks[r].IsOverdue(today):
				return st.Overdue
			default:
				return st.Text
			}
		},
	}
	return table.Render()
}

// ProgressBar draws a bar of width cells filled to percent.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderStats renders the one-line summary under the list.
func RenderStats(s task.Stats, st Styles) string {
	bar := st.ProgressOn.Render(ProgressBar(s.PercentComplete, 20))
	return fmt.Sprintf("%s %s %s  %s %d%%",
		st.Text.Render(fmt.Sprintf("%d total", s.Total)),
		st.Subtle.Render(fmt.Sprintf("· %d active", s.Active)),
		st.Subtle.Render(fmt.Sprintf("· %d completed", s.Completed)),
		bar, s.PercentComplete)
}

// EmptyMessage is the text shown when a view has no tasks.
func EmptyMessage(f task.Filter, query string) string {
	switch {
	case query != "":
		return fmt.Sprintf("No tasks match %q", query)
	case f == task.FilterActive:
		return "No active tasks. Nice work!"
	case f == task.FilterCompleted:
		return "No completed tasks yet"
	default:
		return "No tasks yet. Add one to get started"
	}
}
