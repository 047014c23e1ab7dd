// Package app provides the session that sits between the CLI/TUI and the task core.
// Frontends call intents on a Session; the session mutates the list, persists,
// and reports back through a Notifier. Core operations never return errors
// to the caller; failures become notifications.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/josephgoksu/TaskDeck/internal/task"
	"github.com/josephgoksu/TaskDeck/internal/util"
	"github.com/josephgoksu/TaskDeck/models"
	"github.com/josephgoksu/TaskDeck/store"
)

// User-facing messages.
const (
	MsgEmptyText       = "Please enter a task description"
	MsgTooLong         = "Task description is too long (max 200 characters)"
	MsgInvalidPriority = "Priority must be one of high, medium, low"
	MsgInvalidDueDate  = "Due date must be a date in YYYY-MM-DD form"
	MsgAdded           = "Task added successfully!"
	MsgUpdated         = "Task updated successfully!"
	MsgOrderUpdated    = "Task order updated"
	MsgAllComplete     = "All tasks marked as complete"
	MsgAllActive       = "All tasks marked as active"
	MsgUndone          = "Last action undone"
	MsgNothingToUndo   = "Nothing to undo"
	MsgExported        = "Tasks exported successfully!"
	MsgExportFailed    = "Failed to export tasks"
	MsgImportFailed    = "Failed to import tasks"
	MsgSaveFailed      = "Failed to save tasks"
	MsgLoadFailed      = "Failed to load saved tasks"
	MsgNotFound        = "Task not found"
	MsgNoChange        = "No changes made"
)

// Result is the outcome of a session intent.
// This is the canonical response type used by both the CLI and the TUI.
type Result struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Task      *models.Task    `json:"task,omitempty"`
	Count     int             `json:"count,omitempty"`
	Path      string          `json:"path,omitempty"`
	Milestone *task.Milestone `json:"milestone,omitempty"`
}

// Options configures a Session.
type Options struct {
	UndoLimit    int
	DefaultTheme Theme
	ExportDir    string
	ExportFormat string
	Archive      *store.ArchiveStore
	Notifier     Notifier
	Logger       *slog.Logger
	Clock        task.Clock
	IDGenerator  task.IDGenerator
}

// Session owns the task list for one run of the application.
// It is not safe for concurrent use; frontends call it from a single goroutine.
type Session struct {
	list     *task.List
	gw       *store.Gateway
	archive  *store.ArchiveStore
	notifier Notifier
	log      *slog.Logger
	now      task.Clock

	filter task.Filter
	query  string
	theme  Theme

	// loadFailed holds until the first successful save so Close does not
	// overwrite unreadable data with an empty list.
	loadFailed bool

	exportDir    string
	exportFormat string
}

// Open loads persisted state through gw and returns a ready session.
// Unreadable or corrupt data is reported and the session starts empty.
func Open(gw *store.Gateway, opts Options) *Session {
	s := &Session{
		gw:           gw,
		archive:      opts.Archive,
		notifier:     opts.Notifier,
		log:          opts.Logger,
		now:          opts.Clock,
		filter:       task.FilterAll,
		theme:        opts.DefaultTheme,
		exportDir:    opts.ExportDir,
		exportFormat: opts.ExportFormat,
	}
	if s.notifier == nil {
		s.notifier = discardNotifier{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.archive == nil {
		s.archive = store.NewArchiveStore(nil)
	}
	if s.exportDir == "" {
		s.exportDir = "."
	}
	if !s.theme.Valid() {
		s.theme = ThemeLight
	}

	listOpts := []task.Option{task.WithUndoCapacity(opts.UndoLimit), task.WithClock(s.now)}
	if opts.IDGenerator != nil {
		listOpts = append(listOpts, task.WithIDGenerator(opts.IDGenerator))
	}
	s.list = task.NewList(listOpts...)

	s.load()
	return s
}

func (s *Session) load() {
	tasks, err := s.gw.Load()
	if err == nil {
		err = s.list.Replace(tasks)
	}
	if err != nil {
		s.log.Error("failed to load tasks", "error", err)
		s.loadFailed = true
		s.notify(MsgLoadFailed, SeverityError)
	} else {
		s.log.Debug("tasks loaded", "count", len(tasks))
	}

	if fired, err := s.gw.LoadMilestones(); err != nil {
		s.log.Warn("failed to load milestones", "error", err)
	} else {
		s.list.MarkMilestonesFired(fired)
	}

	theme, ok, err := s.gw.LoadTheme()
	switch {
	case err != nil:
		s.log.Warn("failed to load theme", "error", err)
	case ok:
		if t, parseErr := ParseTheme(theme); parseErr == nil {
			s.theme = t
		} else {
			s.log.Warn("ignoring stored theme", "theme", theme)
		}
	}
}

// Close persists the current state one last time and releases the store.
func (s *Session) Close() error {
	var saveErr error
	if !s.loadFailed {
		saveErr = s.gw.Save(s.list.Tasks())
	}
	if saveErr != nil {
		s.log.Error("failed to save tasks on close", "error", saveErr)
	}
	closeErr := s.gw.Close()
	return errors.Join(saveErr, closeErr)
}

// Add creates a task at the front of the list.
func (s *Session) Add(text, priority, dueDate string) Result {
	out, err := s.list.Add(text, models.Priority(priority), dueDate)
	if err != nil {
		msg := ValidationMessage(err)
		s.notify(msg, SeverityError)
		return Result{Message: msg}
	}
	s.log.Debug("task added", "id", out.Task.ID, "priority", out.Task.Priority)
	s.persist()
	s.notify(MsgAdded, SeveritySuccess)
	s.notifyMilestone(out.Milestone)
	return Result{Success: true, Message: MsgAdded, Task: &out.Task, Milestone: out.Milestone}
}

// Delete removes a task. An unknown id is a silent no-op.
func (s *Session) Delete(id string) Result {
	text, ok := s.list.Delete(id)
	if !ok {
		return Result{Message: MsgNotFound}
	}
	s.log.Debug("task deleted", "id", id)
	s.persist()
	msg := fmt.Sprintf("Task %q deleted", text)
	s.notify(msg, SeverityInfo)
	return Result{Success: true, Message: msg}
}

// Toggle flips a task between active and completed.
func (s *Session) Toggle(id string) Result {
	out, ok := s.list.Toggle(id)
	if !ok {
		return Result{Message: MsgNotFound}
	}
	s.log.Debug("task toggled", "id", id, "completed", out.Task.Completed)
	s.persist()
	msg := "Task marked as active"
	if out.Task.Completed {
		msg = "Task completed"
	}
	s.notify(msg, SeveritySuccess)
	s.notifyMilestone(out.Milestone)
	return Result{Success: true, Message: msg, Task: &out.Task, Milestone: out.Milestone}
}

// Edit changes a task's text. Blank or unchanged text is a silent no-op.
func (s *Session) Edit(id, text string) Result {
	updated, changed, err := s.list.Edit(id, text)
	if err != nil {
		msg := ValidationMessage(err)
		s.notify(msg, SeverityError)
		return Result{Message: msg}
	}
	if !changed {
		if _, ok := s.list.Get(id); !ok {
			return Result{Message: MsgNotFound}
		}
		return Result{Message: MsgNoChange}
	}
	s.log.Debug("task edited", "id", id)
	s.persist()
	s.notify(MsgUpdated, SeveritySuccess)
	return Result{Success: true, Message: MsgUpdated, Task: &updated}
}

// Reorder rearranges the list to follow ids.
func (s *Session) Reorder(ids []string) Result {
	s.list.Reorder(ids)
	s.log.Debug("tasks reordered", "requested", len(ids))
	s.persist()
	s.notify(MsgOrderUpdated, SeverityInfo)
	return Result{Success: true, Message: MsgOrderUpdated, Count: s.list.Len()}
}

// Move places one task at a 0-based position in the full list.
func (s *Session) Move(id string, position int) Result {
	if _, ok := s.list.Get(id); !ok {
		return Result{Message: MsgNotFound}
	}
	return s.Reorder(task.MoveOrder(s.list.IDs(), id, position))
}

// ToggleAll completes every task, or reactivates all when none is active.
func (s *Session) ToggleAll() Result {
	completed := s.list.ToggleAll()
	s.persist()
	if completed {
		s.notify(MsgAllComplete, SeveritySuccess)
		return Result{Success: true, Message: MsgAllComplete, Count: s.list.Len()}
	}
	s.notify(MsgAllActive, SeverityInfo)
	return Result{Success: true, Message: MsgAllActive, Count: s.list.Len()}
}

// ClearCompleted removes every completed task.
func (s *Session) ClearCompleted() Result {
	n := s.list.ClearCompleted()
	s.log.Debug("completed tasks cleared", "count", n)
	s.persist()
	msg := fmt.Sprintf("%d completed tasks cleared", n)
	s.notify(msg, SeverityInfo)
	return Result{Success: true, Message: msg, Count: n}
}

// Undo reverts the most recent mutation.
func (s *Session) Undo() Result {
	if !s.list.Undo() {
		return Result{Message: MsgNothingToUndo}
	}
	s.log.Debug("undo applied", "remaining", s.list.UndoDepth())
	s.persist()
	s.notify(MsgUndone, SeverityInfo)
	return Result{Success: true, Message: MsgUndone}
}

// Export writes the full list to the configured export directory.
// The error is returned as well so callers can set an exit status.
func (s *Session) Export() (Result, error) {
	return s.ExportTo(s.exportDir, s.exportFormat)
}

// ExportTo writes the full list to dir in the given format.
func (s *Session) ExportTo(dir, format string) (Result, error) {
	path, err := s.archive.Export(s.list.Tasks(), dir, format, s.now())
	if err != nil {
		s.log.Error("export failed", "dir", dir, "format", format, "error", err)
		s.notify(MsgExportFailed, SeverityError)
		return Result{Message: MsgExportFailed}, err
	}
	s.log.Debug("tasks exported", "path", path)
	s.notify(MsgExported, SeveritySuccess)
	return Result{Success: true, Message: MsgExported, Path: path, Count: s.list.Len()}, nil
}

// Import replaces the list with the tasks in an export file. It can be undone.
func (s *Session) Import(path string) (Result, error) {
	tasks, err := s.archive.Import(path)
	if err == nil {
		err = s.list.ImportTasks(tasks)
	}
	if err != nil {
		s.log.Error("import failed", "path", path, "error", err)
		s.notify(MsgImportFailed, SeverityError)
		return Result{Message: MsgImportFailed}, err
	}
	s.persist()
	msg := fmt.Sprintf("Imported %d tasks", len(tasks))
	s.notify(msg, SeveritySuccess)
	return Result{Success: true, Message: msg, Count: len(tasks), Path: path}, nil
}

// SetFilter changes the status filter used by Visible.
func (s *Session) SetFilter(f task.Filter) {
	s.filter = f
}

// CycleFilter advances to the next status filter and returns it.
func (s *Session) CycleFilter() task.Filter {
	s.filter = s.filter.Next()
	return s.filter
}

// SetSearch changes the search query used by Visible. Matching ignores case.
func (s *Session) SetSearch(query string) {
	s.query = strings.ToLower(strings.TrimSpace(query))
}

// ToggleTheme switches between light and dark and persists the choice.
func (s *Session) ToggleTheme() Result {
	return s.SetTheme(s.theme.Toggle())
}

// SetTheme selects a theme and persists it.
func (s *Session) SetTheme(t Theme) Result {
	if !t.Valid() {
		return Result{Message: fmt.Sprintf("unknown theme %q", t)}
	}
	s.theme = t
	if err := s.gw.SaveTheme(string(t)); err != nil {
		s.log.Warn("failed to save theme", "error", err)
	}
	msg := fmt.Sprintf("Switched to %s theme", t)
	s.notify(msg, SeverityInfo)
	return Result{Success: true, Message: msg}
}

// ApplyTheme changes the theme for display only, without persisting or notifying.
func (s *Session) ApplyTheme(t Theme) {
	if t.Valid() {
		s.theme = t
	}
}

// Visible returns the tasks that pass the current filter and search.
func (s *Session) Visible() []models.Task { return s.list.View(s.filter, s.query) }

// View returns the tasks for an explicit filter and query.
func (s *Session) View(f task.Filter, query string) []models.Task {
	return s.list.View(f, strings.ToLower(strings.TrimSpace(query)))
}

func (s *Session) Stats() task.Stats { return s.list.Stats() }

func (s *Session) CanUndo() bool { return s.list.CanUndo() }

// Tasks returns a copy of the full list.
func (s *Session) Tasks() []models.Task { return s.list.Tasks() }

func (s *Session) Filter() task.Filter { return s.filter }

func (s *Session) Query() string { return s.query }

func (s *Session) Theme() Theme { return s.theme }

// Get returns the task with id.
func (s *Session) Get(id string) (models.Task, bool) { return s.list.Get(id) }

// ResolveID maps a full ID or unique prefix to a task ID.
func (s *Session) ResolveID(idOrPrefix string) (string, error) {
	return util.ResolveTaskID(s.list, idOrPrefix)
}

// persist saves the whole list. Failures are reported but the in-memory
// state stays authoritative.
func (s *Session) persist() {
	if err := s.gw.Save(s.list.Tasks()); err != nil {
		s.log.Error("failed to save tasks", "error", err)
		s.notify(MsgSaveFailed, SeverityError)
		return
	}
	s.loadFailed = false
}

func (s *Session) notify(msg string, sev Severity) {
	s.notifier.Notify(Notification{Message: msg, Severity: sev})
}

func (s *Session) notifyMilestone(m *task.Milestone) {
	if m == nil {
		return
	}
	s.log.Info("milestone reached", "completed", m.Count)
	if err := s.gw.SaveMilestones(s.list.FiredMilestones()); err != nil {
		s.log.Warn("failed to save milestones", "error", err)
	}
	s.notifier.Notify(Notification{Message: m.Message, Severity: SeveritySuccess, Milestone: m.Count})
}

// ValidationMessage returns the user-facing text for a task validation error.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyText):
		return MsgEmptyText
	case errors.Is(err, models.ErrTooLong):
		return MsgTooLong
	case errors.Is(err, models.ErrInvalidPriority):
		return MsgInvalidPriority
	case errors.Is(err, models.ErrInvalidDueDate):
		return MsgInvalidDueDate
	default:
		return err.Error()
	}
}
