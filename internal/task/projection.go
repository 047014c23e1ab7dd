package task

import (
	"fmt"
	"math"
	"strings"

	"github.com/josephgoksu/TaskDeck/models"
)

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// AllFilters returns the filters in tab order.
func AllFilters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilter maps user input to a Filter. Empty input yields FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, active, or completed)", s)
	}
}

// Next returns the filter after f in tab order.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func (f Filter) match(t models.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Stats summarizes completion across the list.
type Stats struct {
	Total           int `json:"total"`
	Active          int `json:"active"`
	Completed       int `json:"completed"`
	PercentComplete int `json:"percentComplete"`
}

// filterTasks applies the status filter, then a case-insensitive substring match on text.
func filterTasks(tasks []models.Task, filter Filter, query string) []models.Task {
	query = strings.ToLower(query)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !filter.match(t) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(t.Text), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func computeStats(tasks []models.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.PercentComplete = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}

// MoveOrder returns a copy of ids with id moved to the 0-based position.
// Positions outside the list are clamped. An unknown id returns the order unchanged.
func MoveOrder(ids []string, id string, position int) []string {
	from := -1
	for i, candidate := range ids {
		if candidate == id {
			from = i
			break
		}
	}
	out := make([]string, 0, len(ids))
	if from < 0 {
		return append(out, ids...)
	}
	for i, candidate := range ids {
		if i != from {
			out = append(out, candidate)
		}
	}
	position = max(0, min(position, len(out)))
	out = append(out, "")
	copy(out[position+1:], out[position:])
	out[position] = id
	return out
}
