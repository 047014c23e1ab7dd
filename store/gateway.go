package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/josephgoksu/TaskDeck/models"
)

const (
	// TasksKey is the key the task sequence is stored under.
	TasksKey = "todoTasks"
	// ThemeKey is the key the view theme is stored under.
	ThemeKey = "todoTheme"
	// MilestonesKey holds the completed-count milestones already announced.
	MilestonesKey = "todoMilestones"
)

// Gateway persists the task sequence and theme flag in a KVStore.
type Gateway struct {
	kv KVStore
}

// NewGateway wraps kv.
func NewGateway(kv KVStore) *Gateway {
	return &Gateway{kv: kv}
}

// Save writes the full ordered sequence as a JSON array.
func (g *Gateway) Save(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return &StorageError{Op: "encode", Key: TasksKey, Err: err}
	}
	if err := g.kv.Set(TasksKey, string(data)); err != nil {
		return &StorageError{Op: "write", Key: TasksKey, Err: err}
	}
	return nil
}

// Load reads the sequence. An absent key yields an empty sequence.
func (g *Gateway) Load() ([]models.Task, error) {
	raw, ok, err := g.kv.Get(TasksKey)
	if err != nil {
		if ok {
			// the value exists but could not be trusted
			return nil, &CorruptDataError{Source: TasksKey, Err: err}
		}
		return nil, &StorageError{Op: "read", Key: TasksKey, Err: err}
	}
	if !ok {
		return []models.Task{}, nil
	}
	tasks, err := DecodeTasks([]byte(raw))
	if err != nil {
		return nil, &CorruptDataError{Source: TasksKey, Err: err}
	}
	return tasks, nil
}

// SaveTheme stores the theme name.
func (g *Gateway) SaveTheme(theme string) error {
	if err := g.kv.Set(ThemeKey, theme); err != nil {
		return &StorageError{Op: "write", Key: ThemeKey, Err: err}
	}
	return nil
}

// LoadTheme returns the stored theme name. ok is false when none is stored.
func (g *Gateway) LoadTheme() (string, bool, error) {
	theme, ok, err := g.kv.Get(ThemeKey)
	if err != nil {
		return "", false, &StorageError{Op: "read", Key: ThemeKey, Err: err}
	}
	return strings.TrimSpace(theme), ok, nil
}

// SaveMilestones stores the milestone counts already announced.
func (g *Gateway) SaveMilestones(counts []int) error {
	if counts == nil {
		counts = []int{}
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return &StorageError{Op: "encode", Key: MilestonesKey, Err: err}
	}
	if err := g.kv.Set(MilestonesKey, string(data)); err != nil {
		return &StorageError{Op: "write", Key: MilestonesKey, Err: err}
	}
	return nil
}

// LoadMilestones returns the announced milestone counts. An absent key yields none.
func (g *Gateway) LoadMilestones() ([]int, error) {
	raw, ok, err := g.kv.Get(MilestonesKey)
	if err != nil {
		return nil, &StorageError{Op: "read", Key: MilestonesKey, Err: err}
	}
	if !ok {
		return nil, nil
	}
	var counts []int
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return nil, &CorruptDataError{Source: MilestonesKey, Err: err}
	}
	return counts, nil
}

// Close closes the underlying store.
func (g *Gateway) Close() error {
	return g.kv.Close()
}

// DecodeTasks parses and validates a JSON task array.
func DecodeTasks(data []byte) ([]models.Task, error) {
	if err := validateTasksJSON(data); err != nil {
		return nil, err
	}
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if err := validateTasks(tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// validateTasks applies struct validation and rejects repeated IDs.
func validateTasks(tasks []models.Task) error {
	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if err := models.ValidateStruct(t); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("task %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
