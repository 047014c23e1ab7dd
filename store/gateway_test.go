package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/TaskDeck/models"
)

// failingKV rejects every write and optionally every read.
type failingKV struct {
	KVStore
	failGet bool
}

func (f *failingKV) Set(string, string) error { return ErrQuotaExceeded }

func (f *failingKV) Get(key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("disk unplugged")
	}
	return f.KVStore.Get(key)
}

func sampleTasks() []models.Task {
	created := time.Date(2026, 2, 3, 4, 5, 6, 789000000, time.UTC)
	a := models.NewTask("task-a", "Buy milk", models.PriorityHigh, "2026-02-10", created)
	b := models.NewTask("task-b", "Walk dog", models.PriorityLow, "", created.Add(time.Minute))
	b.Completed = true
	b.UpdatedAt = b.UpdatedAt.Add(123 * time.Nanosecond)
	return []models.Task{a, b}
}

func TestGateway_RoundTrip(t *testing.T) {
	for name, factory := range kvFactories(t) {
		t.Run(name, func(t *testing.T) {
			gw := NewGateway(factory())
			defer func() { _ = gw.Close() }()

			tasks := sampleTasks()
			require.NoError(t, gw.Save(tasks))

			got, err := gw.Load()
			require.NoError(t, err)
			assert.Equal(t, tasks, got)
		})
	}
}

func TestGateway_LoadAbsentIsEmpty(t *testing.T) {
	gw := NewGateway(NewMemoryKVStore())
	got, err := gw.Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGateway_SaveEmptyWritesArray(t *testing.T) {
	kv := NewMemoryKVStore()
	gw := NewGateway(kv)
	require.NoError(t, gw.Save(nil))

	raw, ok, err := kv.Get(TasksKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestGateway_LoadCorrupt(t *testing.T) {
	valid := `{"id":"task-1","text":"ok","completed":false,"priority":"medium","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{{{`},
		{name: "object instead of array", raw: `{"tasks":[]}`},
		{name: "null", raw: `null`},
		{name: "missing field", raw: `[{"id":"task-1","text":"ok"}]`},
		{name: "bad priority", raw: strings.Replace("["+valid+"]", `"medium"`, `"urgent"`, 1)},
		{name: "text too long", raw: strings.Replace("["+valid+"]", `"ok"`, `"`+strings.Repeat("x", 201)+`"`, 1)},
		{name: "bad timestamp", raw: strings.Replace("["+valid+"]", `"2026-01-01T00:00:00Z",`, `"yesterday",`, 1)},
		{name: "bad due date", raw: strings.Replace("["+valid+"]", `"completed"`, `"dueDate":"soon","completed"`, 1)},
		{name: "duplicate ids", raw: "[" + valid + "," + valid + "]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKVStore()
			require.NoError(t, kv.Set(TasksKey, tt.raw))

			_, err := NewGateway(kv).Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCorruptData)

			var cde *CorruptDataError
			assert.ErrorAs(t, err, &cde)
		})
	}
}

func TestGateway_LoadLegacyRecord(t *testing.T) {
	kv := NewMemoryKVStore()
	require.NoError(t, kv.Set(TasksKey, `[{"id":"1700000000000","text":"Old","completed":true,"priority":"low","dueDate":null,"createdAt":"2023-11-14T22:13:20.000Z","updatedAt":"2023-11-14T22:13:20.000Z"}]`))

	got, err := NewGateway(kv).Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1700000000000", got[0].ID)
	assert.Empty(t, got[0].DueDate)
}

func TestGateway_StorageErrors(t *testing.T) {
	gw := NewGateway(&failingKV{KVStore: NewMemoryKVStore()})
	err := gw.Save(sampleTasks())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, ErrQuotaExceeded, "the backend cause stays reachable")

	gw = NewGateway(&failingKV{KVStore: NewMemoryKVStore(), failGet: true})
	_, err = gw.Load()
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrCorruptData)
}

func TestGateway_Theme(t *testing.T) {
	gw := NewGateway(NewMemoryKVStore())

	_, ok, err := gw.LoadTheme()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, gw.SaveTheme("dark"))
	theme, ok, err := gw.LoadTheme()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", theme)
}

func TestGateway_Milestones(t *testing.T) {
	kv := NewMemoryKVStore()
	gw := NewGateway(kv)

	counts, err := gw.LoadMilestones()
	require.NoError(t, err)
	assert.Empty(t, counts)

	require.NoError(t, gw.SaveMilestones([]int{5, 10}))
	counts, err = gw.LoadMilestones()
	require.NoError(t, err)
	assert.Equal(t, []int{5, 10}, counts)

	require.NoError(t, kv.Set(MilestonesKey, `five`))
	_, err = gw.LoadMilestones()
	assert.ErrorIs(t, err, ErrCorruptData)
}
