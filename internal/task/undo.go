package task

import (
	"errors"

	"github.com/josephgoksu/TaskDeck/models"
)

// DefaultUndoCapacity is the number of snapshots kept when no limit is configured.
const DefaultUndoCapacity = 10

// ErrUndoEmpty is returned by UndoLog.Pop when there is nothing to undo.
var ErrUndoEmpty = errors.New("undo history is empty")

// Snapshot is an immutable copy of the full task sequence at a point in time.
type Snapshot struct {
	tasks []models.Task
}

// NewSnapshot captures a copy of tasks.
func NewSnapshot(tasks []models.Task) Snapshot {
	return Snapshot{tasks: cloneTasks(tasks)}
}

// Tasks returns a copy of the captured sequence.
func (s Snapshot) Tasks() []models.Task {
	return cloneTasks(s.tasks)
}

// Len returns the number of tasks in the snapshot.
func (s Snapshot) Len() int {
	return len(s.tasks)
}

// UndoLog is a bounded history of snapshots. When full, the oldest entry is evicted.
type UndoLog struct {
	capacity  int
	snapshots []Snapshot
}

// NewUndoLog creates an empty log. A capacity below 1 falls back to DefaultUndoCapacity.
func NewUndoLog(capacity int) *UndoLog {
	if capacity < 1 {
		capacity = DefaultUndoCapacity
	}
	return &UndoLog{
		capacity:  capacity,
		snapshots: make([]Snapshot, 0, capacity+1),
	}
}

// Push appends a snapshot, evicting the oldest when the log exceeds its capacity.
func (u *UndoLog) Push(s Snapshot) {
	u.snapshots = append(u.snapshots, s)
	if len(u.snapshots) > u.capacity {
		u.snapshots = append(u.snapshots[:0], u.snapshots[1:]...)
	}
}

// Pop removes and returns the most recent snapshot.
func (u *UndoLog) Pop() (Snapshot, error) {
	if len(u.snapshots) == 0 {
		return Snapshot{}, ErrUndoEmpty
	}
	last := u.snapshots[len(u.snapshots)-1]
	u.snapshots[len(u.snapshots)-1] = Snapshot{}
	u.snapshots = u.snapshots[:len(u.snapshots)-1]
	return last, nil
}

// Len returns the number of stored snapshots.
func (u *UndoLog) Len() int {
	return len(u.snapshots)
}

// Cap returns the maximum number of stored snapshots.
func (u *UndoLog) Cap() int {
	return u.capacity
}

// Clear drops the whole history.
func (u *UndoLog) Clear() {
	u.snapshots = u.snapshots[:0]
}

func cloneTasks(tasks []models.Task) []models.Task {
	if tasks == nil {
		return []models.Task{}
	}
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
