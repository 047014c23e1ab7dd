package app

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/TaskDeck/internal/task"
	"github.com/josephgoksu/TaskDeck/store"
)

// flakyKV fails writes while broken is set.
type flakyKV struct {
	store.KVStore
	broken bool
}

func (f *flakyKV) Set(key, value string) error {
	if f.broken {
		return store.ErrQuotaExceeded
	}
	return f.KVStore.Set(key, value)
}

type harness struct {
	kv       store.KVStore
	rec      *Recorder
	archive  *store.ArchiveStore
	exportFs afero.Fs
	clock    time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fsys := afero.NewMemMapFs()
	return &harness{
		kv:       store.NewMemoryKVStore(),
		rec:      &Recorder{},
		archive:  store.NewArchiveStore(fsys),
		exportFs: fsys,
		clock:    time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (h *harness) open() *Session {
	n := 0
	return Open(store.NewGateway(h.kv), Options{
		UndoLimit:    10,
		DefaultTheme: ThemeLight,
		ExportDir:    "/exports",
		ExportFormat: store.FormatJSON,
		Archive:      h.archive,
		Notifier:     h.rec,
		Clock:        func() time.Time { return h.clock },
		IDGenerator: func() string {
			n++
			return fmt.Sprintf("task-%04d", n)
		},
	})
}

func TestSession_BuyMilkScenario(t *testing.T) {
	h := newHarness(t)
	s := h.open()

	res := s.Add("Buy milk", "", "")
	require.True(t, res.Success)
	require.NotNil(t, res.Task)
	id := res.Task.ID
	assert.Equal(t, 1, s.Stats().Total)

	res = s.Toggle(id)
	require.True(t, res.Success)
	assert.Nil(t, res.Milestone, "one completion is not a milestone")

	res = s.Delete(id)
	require.True(t, res.Success)

	assert.Equal(t, task.Stats{}, s.Stats())
	assert.Equal(t, []string{
		MsgAdded,
		"Task completed",
		`Task "Buy milk" deleted`,
	}, h.rec.Messages())
}

func TestSession_FiveCompletionsMilestone(t *testing.T) {
	h := newHarness(t)
	s := h.open()

	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, s.Add(fmt.Sprintf("task %d", i), "", "").Task.ID)
	}

	var milestones []Notification
	for i, id := range ids {
		h.rec.Reset()
		res := s.Toggle(id)
		require.True(t, res.Success)
		for _, n := range h.rec.Notifications {
			if n.Milestone != 0 {
				milestones = append(milestones, n)
				assert.Equal(t, 4, i, "fires after the fifth completion")
			}
		}
	}
	require.Len(t, milestones, 1)
	assert.Equal(t, 5, milestones[0].Milestone)
	assert.Equal(t, SeveritySuccess, milestones[0].Severity)
	assert.Contains(t, milestones[0].Message, "5 tasks")
}

func TestSession_MilestoneNotRepeatedAfterReopen(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, s.Add(fmt.Sprintf("task %d", i), "", "").Task.ID)
	}
	for _, id := range ids {
		s.Toggle(id)
	}
	require.NoError(t, s.Close())

	h.rec.Reset()
	reopened := h.open()
	reopened.Toggle(ids[0])
	reopened.Toggle(ids[0])
	reopened.Add("one more", "", "")
	for _, n := range h.rec.Notifications {
		assert.Zero(t, n.Milestone, n.Message)
	}
}

func TestSession_ValidationMessages(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		priority string
		due      string
		want     string
	}{
		{name: "empty", text: "  ", want: MsgEmptyText},
		{name: "too long", text: strings.Repeat("a", 201), want: MsgTooLong},
		{name: "priority", text: "ok", priority: "asap", want: MsgInvalidPriority},
		{name: "due date", text: "ok", due: "31/12/2026", want: MsgInvalidDueDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			s := h.open()

			res := s.Add(tt.text, tt.priority, tt.due)
			assert.False(t, res.Success)
			last, ok := h.rec.Last()
			require.True(t, ok)
			assert.Equal(t, tt.want, last.Message)
			assert.Equal(t, SeverityError, last.Severity)
			assert.Zero(t, s.Stats().Total)
		})
	}
}

func TestSession_PersistsAfterEveryMutation(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	a := s.Add("alpha", "high", "2026-06-01").Task
	s.Add("beta", "", "")
	s.Toggle(a.ID)

	reopened := h.open()
	assert.Equal(t, s.Tasks(), reopened.Tasks())
}

func TestSession_EditNoOpsAreSilent(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	a := s.Add("alpha", "", "").Task
	h.rec.Reset()

	assert.Equal(t, MsgNoChange, s.Edit(a.ID, " alpha ").Message)
	assert.Equal(t, MsgNoChange, s.Edit(a.ID, "   ").Message)
	assert.Equal(t, MsgNotFound, s.Edit("task-nope", "x").Message)
	assert.Empty(t, h.rec.Notifications)

	res := s.Edit(a.ID, "gamma")
	assert.True(t, res.Success)
	assert.Equal(t, "gamma", res.Task.Text)
	assert.Equal(t, []string{MsgUpdated}, h.rec.Messages())

	res = s.Edit(a.ID, strings.Repeat("z", 201))
	assert.False(t, res.Success)
	assert.Equal(t, MsgTooLong, res.Message)
}

func TestSession_UnknownIDsAreSilent(t *testing.T) {
	h := newHarness(t)
	s := h.open()

	assert.False(t, s.Delete("task-x").Success)
	assert.False(t, s.Toggle("task-x").Success)
	assert.False(t, s.Move("task-x", 0).Success)
	assert.Empty(t, h.rec.Notifications)
}

func TestSession_UndoPersists(t *testing.T) {
	h := newHarness(t)
	s := h.open()

	assert.False(t, s.CanUndo())
	assert.Equal(t, MsgNothingToUndo, s.Undo().Message)

	s.Add("alpha", "", "")
	s.Add("beta", "", "")
	require.True(t, s.CanUndo())
	require.True(t, s.Undo().Success)

	reopened := h.open()
	require.Len(t, reopened.Tasks(), 1)
	assert.Equal(t, "alpha", reopened.Tasks()[0].Text)
	assert.False(t, reopened.CanUndo(), "history does not survive a restart")
}

func TestSession_BulkOperations(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	a := s.Add("a", "", "").Task
	s.Add("b", "", "")
	s.Toggle(a.ID)
	h.rec.Reset()

	assert.Equal(t, MsgAllComplete, s.ToggleAll().Message)
	assert.Equal(t, MsgAllActive, s.ToggleAll().Message)
	s.Toggle(a.ID)
	res := s.ClearCompleted()
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "1 completed tasks cleared", res.Message)
	assert.Equal(t, 1, s.Stats().Total)
}

func TestSession_MoveAndReorder(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	a := s.Add("a", "", "").Task
	b := s.Add("b", "", "").Task
	c := s.Add("c", "", "").Task

	res := s.Move(a.ID, 0)
	require.True(t, res.Success)
	assert.Equal(t, []string{a.ID, c.ID, b.ID}, ids(s))

	res = s.Reorder([]string{b.ID, a.ID})
	require.True(t, res.Success)
	assert.Equal(t, []string{b.ID, a.ID, c.ID}, ids(s))

	last, _ := h.rec.Last()
	assert.Equal(t, MsgOrderUpdated, last.Message)
	assert.Equal(t, SeverityInfo, last.Severity)
}

func TestSession_FilterAndSearch(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	milk := s.Add("Buy milk", "", "").Task
	s.Add("Walk dog", "", "")
	s.Toggle(milk.ID)

	s.SetFilter(task.FilterCompleted)
	require.Len(t, s.Visible(), 1)
	assert.Equal(t, milk.ID, s.Visible()[0].ID)

	s.SetFilter(task.FilterAll)
	s.SetSearch("  DOG ")
	assert.Equal(t, "dog", s.Query())
	require.Len(t, s.Visible(), 1)

	assert.Equal(t, task.FilterActive, s.CycleFilter())
	s.SetSearch("")
	assert.Len(t, s.Visible(), 1)
}

func TestSession_LoadCorruptStartsEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.kv.Set(store.TasksKey, `{"broken":`))

	s := h.open()
	assert.Zero(t, s.Stats().Total)
	last, ok := h.rec.Last()
	require.True(t, ok)
	assert.Equal(t, MsgLoadFailed, last.Message)
	assert.Equal(t, SeverityError, last.Severity)

	// the session is usable afterwards
	assert.True(t, s.Add("fresh start", "", "").Success)
}

func TestSession_CloseKeepsUnreadableData(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.kv.Set(store.TasksKey, `{"broken":`))

	s := h.open()
	require.NoError(t, s.Close())

	raw, ok, err := h.kv.Get(store.TasksKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"broken":`, raw)
}

func TestSession_SaveFailureKeepsMemoryState(t *testing.T) {
	h := newHarness(t)
	flaky := &flakyKV{KVStore: h.kv}
	h.kv = flaky
	s := h.open()

	flaky.broken = true
	res := s.Add("kept in memory", "", "")
	assert.True(t, res.Success)
	assert.Equal(t, 1, s.Stats().Total, "no rollback on a failed save")
	assert.Contains(t, h.rec.Messages(), MsgSaveFailed)

	flaky.broken = false
	require.NoError(t, s.Close())
	reopened := h.open()
	assert.Equal(t, 1, reopened.Stats().Total, "close flushes the in-memory state")
}

func TestSession_Theme(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	assert.Equal(t, ThemeLight, s.Theme())

	res := s.ToggleTheme()
	assert.Equal(t, "Switched to dark theme", res.Message)
	assert.Equal(t, ThemeDark, s.Theme())

	assert.Equal(t, ThemeDark, h.open().Theme(), "theme survives a restart")

	assert.False(t, s.SetTheme("sepia").Success)
	s.ApplyTheme(ThemeLight)
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestSession_ExportImport(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	s.Add("one", "high", "")
	s.Add("two", "low", "2026-05-03")

	res, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "/exports/todo-backup-2026-05-01.json", res.Path)
	assert.Equal(t, MsgExported, res.Message)
	exported := s.Tasks()

	s.ClearCompleted()
	s.ToggleAll()
	s.ClearCompleted()
	require.Zero(t, s.Stats().Total)

	res, err = s.Import(res.Path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, exported, s.Tasks())

	require.True(t, s.Undo().Success)
	assert.Zero(t, s.Stats().Total, "import can be undone")
}

func TestSession_ImportInvalid(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.exportFs, "/bad.json", []byte(`[]`), 0o644))
	s := h.open()
	s.Add("existing", "", "")

	_, err := s.Import("/bad.json")
	assert.ErrorIs(t, err, store.ErrCorruptData)
	assert.Equal(t, 1, s.Stats().Total)
	last, _ := h.rec.Last()
	assert.Equal(t, MsgImportFailed, last.Message)
}

func TestSession_ExportBadFormat(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	_, err := s.ExportTo("/exports", "xml")
	assert.Error(t, err)
	last, _ := h.rec.Last()
	assert.Equal(t, MsgExportFailed, last.Message)
}

func TestSession_ResolveID(t *testing.T) {
	h := newHarness(t)
	s := h.open()
	a := s.Add("a", "", "").Task

	got, err := s.ResolveID("0001")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got)

	_, err = s.ResolveID("9999")
	assert.Error(t, err)
}

func ids(s *Session) []string {
	var out []string
	for _, t := range s.Tasks() {
		out = append(out, t.ID)
	}
	return out
}
