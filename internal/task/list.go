// Package task holds the ordered task list, its mutations, and the undo history.
//
// A List is owned by a single session and is not safe for concurrent use.
// Every mutation that changes state pushes a snapshot of the previous
// sequence onto the undo log first; no-op paths never touch the history.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/josephgoksu/TaskDeck/internal/util"
	"github.com/josephgoksu/TaskDeck/models"
)

// ErrDuplicateID is returned when a sequence handed to the list repeats an ID.
var ErrDuplicateID = errors.New("duplicate task ID")

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a new task identifier.
type IDGenerator func() string

// maxIDAttempts bounds retries when the generator returns an ID already in use.
const maxIDAttempts = 16

// Outcome describes the effect of a mutation on a single task.
type Outcome struct {
	Task      models.Task
	Milestone *Milestone
}

// List is the authoritative ordered collection of tasks for a session.
type List struct {
	tasks   []models.Task
	undo    *UndoLog
	now     Clock
	newID   IDGenerator
	usedIDs map[string]struct{}
	fired   map[int]bool
}

// Option configures a List.
type Option func(*List)

// WithClock sets the time source used for timestamps.
func WithClock(c Clock) Option {
	return func(l *List) { l.now = c }
}

// WithIDGenerator sets the generator used for new task IDs.
func WithIDGenerator(g IDGenerator) Option {
	return func(l *List) { l.newID = g }
}

// WithUndoCapacity sets how many snapshots the undo log keeps.
func WithUndoCapacity(n int) Option {
	return func(l *List) { l.undo = NewUndoLog(n) }
}

// NewList creates an empty list.
func NewList(opts ...Option) *List {
	l := &List{
		tasks:   []models.Task{},
		undo:    NewUndoLog(DefaultUndoCapacity),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   util.NewTaskID,
		usedIDs: make(map[string]struct{}),
		fired:   make(map[int]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Replace installs a loaded sequence without recording undo history.
// It is meant for session start; the undo log is cleared.
func (l *List) Replace(tasks []models.Task) error {
	if err := checkUniqueIDs(tasks); err != nil {
		return err
	}
	l.tasks = cloneTasks(tasks)
	l.undo.Clear()
	l.remember(l.tasks)
	return nil
}

// ImportTasks replaces the sequence with imported tasks as an undoable mutation.
func (l *List) ImportTasks(tasks []models.Task) error {
	if err := checkUniqueIDs(tasks); err != nil {
		return err
	}
	l.pushUndo()
	l.tasks = cloneTasks(tasks)
	l.remember(l.tasks)
	return nil
}

// Add validates the input and inserts a new task at the front of the list.
func (l *List) Add(text string, priority models.Priority, dueDate string) (Outcome, error) {
	trimmed, err := models.ValidateText(text)
	if err != nil {
		return Outcome{}, err
	}
	priority, err = models.ParsePriority(string(priority))
	if err != nil {
		return Outcome{}, err
	}
	due, err := models.ValidateDueDate(dueDate)
	if err != nil {
		return Outcome{}, err
	}

	t := models.NewTask(l.nextID(), trimmed, priority, due, l.now())

	l.pushUndo()
	l.tasks = append([]models.Task{t}, l.tasks...)

	out := Outcome{Task: t}
	if m, ok := l.CheckMilestones(); ok {
		out.Milestone = &m
	}
	return out, nil
}

// Delete removes the task with id and returns its text.
// An unknown id is a no-op and reports false.
func (l *List) Delete(id string) (string, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return "", false
	}
	l.pushUndo()
	text := l.tasks[i].Text
	l.tasks = append(l.tasks[:i:i], l.tasks[i+1:]...)
	return text, true
}

// Toggle flips the completion state of the task with id.
// An unknown id is a no-op and reports false.
func (l *List) Toggle(id string) (Outcome, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return Outcome{}, false
	}
	l.pushUndo()
	t := &l.tasks[i]
	t.Completed = !t.Completed
	l.touch(t)

	out := Outcome{Task: *t}
	if t.Completed {
		if m, ok := l.CheckMilestones(); ok {
			out.Milestone = &m
		}
	}
	return out, true
}

// Edit replaces the text of the task with id.
// It reports false without error when the task is missing, the new text is
// blank, or the trimmed text equals the current one.
func (l *List) Edit(id, newText string) (models.Task, bool, error) {
	i := l.indexOf(id)
	if i < 0 {
		return models.Task{}, false, nil
	}
	trimmed := strings.TrimSpace(newText)
	if trimmed == "" || trimmed == l.tasks[i].Text {
		return l.tasks[i], false, nil
	}
	if _, err := models.ValidateText(trimmed); err != nil {
		return l.tasks[i], false, err
	}

	l.pushUndo()
	t := &l.tasks[i]
	t.Text = trimmed
	l.touch(t)
	return *t, true, nil
}

// Reorder rebuilds the sequence to follow ids.
// Requested ids that are not in the list are skipped and repeats keep their
// first position. Tasks missing from ids keep their relative order after the
// requested ones, so membership never changes. A caller passing a full
// permutation of the current IDs gets exactly that order.
func (l *List) Reorder(ids []string) {
	l.pushUndo()

	byID := make(map[string]models.Task, len(l.tasks))
	for _, t := range l.tasks {
		byID[t.ID] = t
	}
	placed := make(map[string]bool, len(l.tasks))
	reordered := make([]models.Task, 0, len(l.tasks))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		reordered = append(reordered, t)
	}
	for _, t := range l.tasks {
		if !placed[t.ID] {
			reordered = append(reordered, t)
		}
	}
	l.tasks = reordered
}

// ToggleAll completes every task, or reactivates every task when none is active.
// It returns the completion state applied to all tasks.
func (l *List) ToggleAll() bool {
	anyActive := false
	for _, t := range l.tasks {
		if !t.Completed {
			anyActive = true
			break
		}
	}

	l.pushUndo()
	for i := range l.tasks {
		l.tasks[i].Completed = anyActive
		l.touch(&l.tasks[i])
	}
	return anyActive
}

// ClearCompleted removes every completed task and returns how many were removed.
func (l *List) ClearCompleted() int {
	l.pushUndo()
	kept := make([]models.Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(l.tasks) - len(kept)
	l.tasks = kept
	return removed
}

// Undo restores the most recent snapshot. It reports false when there is no history.
func (l *List) Undo() bool {
	s, err := l.undo.Pop()
	if err != nil {
		return false
	}
	l.tasks = s.Tasks()
	return true
}

// CanUndo reports whether Undo would change anything.
func (l *List) CanUndo() bool {
	return l.undo.Len() > 0
}

// UndoDepth returns the number of undoable steps.
func (l *List) UndoDepth() int {
	return l.undo.Len()
}

// CheckMilestones reports a milestone when the completed count equals one of
// the fixed thresholds and that threshold has not been reported before.
func (l *List) CheckMilestones() (Milestone, bool) {
	m, ok := milestoneFor(l.Stats().Completed)
	if !ok || l.fired[m.Count] {
		return Milestone{}, false
	}
	l.fired[m.Count] = true
	return m, true
}

// FiredMilestones returns the milestone counts already reported, ascending.
func (l *List) FiredMilestones() []int {
	var counts []int
	for _, m := range milestones {
		if l.fired[m.Count] {
			counts = append(counts, m.Count)
		}
	}
	return counts
}

// MarkMilestonesFired records counts as already reported, so a list
// restored from storage does not announce them again.
func (l *List) MarkMilestonesFired(counts []int) {
	for _, c := range counts {
		l.fired[c] = true
	}
}

// View returns the tasks matching filter and query in list order.
func (l *List) View(filter Filter, query string) []models.Task {
	return filterTasks(l.tasks, filter, query)
}

// Stats returns completion counts for the whole list.
func (l *List) Stats() Stats {
	return computeStats(l.tasks)
}

// Tasks returns a copy of the full sequence.
func (l *List) Tasks() []models.Task {
	return cloneTasks(l.tasks)
}

// IDs returns the task IDs in list order.
func (l *List) IDs() []string {
	ids := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		ids[i] = t.ID
	}
	return ids
}

// Get returns the task with id.
func (l *List) Get(id string) (models.Task, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return l.tasks[i], true
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// FindTaskIDsByPrefix returns the IDs starting with prefix, in list order.
func (l *List) FindTaskIDsByPrefix(prefix string) []string {
	var matches []string
	for _, t := range l.tasks {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}
	return matches
}

func (l *List) pushUndo() {
	l.undo.Push(NewSnapshot(l.tasks))
}

func (l *List) indexOf(id string) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// touch advances UpdatedAt, staying strictly after the previous value
// even when the clock has not moved.
func (l *List) touch(t *models.Task) {
	now := l.now()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
}

func (l *List) nextID() string {
	var id string
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id = l.newID()
		if _, used := l.usedIDs[id]; !used {
			l.usedIDs[id] = struct{}{}
			return id
		}
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if _, used := l.usedIDs[candidate]; !used {
			l.usedIDs[candidate] = struct{}{}
			return candidate
		}
	}
}

func (l *List) remember(tasks []models.Task) {
	for _, t := range tasks {
		l.usedIDs[t.ID] = struct{}{}
	}
}

func checkUniqueIDs(tasks []models.Task) error {
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
