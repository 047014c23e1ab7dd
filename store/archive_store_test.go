package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveStore_ExportImportFormats(t *testing.T) {
	now := time.Date(2026, 7, 4, 23, 30, 0, 0, time.UTC)

	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			s := NewArchiveStore(fsys)
			tasks := sampleTasks()

			path, err := s.Export(tasks, "/exports", format, now)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join("/exports", "todo-backup-2026-07-04."+format), path)

			got, err := s.Import(path)
			require.NoError(t, err)
			require.Len(t, got, len(tasks))
			for i := range tasks {
				assert.Equal(t, tasks[i].ID, got[i].ID)
				assert.Equal(t, tasks[i].Text, got[i].Text)
				assert.Equal(t, tasks[i].Completed, got[i].Completed)
				assert.Equal(t, tasks[i].Priority, got[i].Priority)
				assert.Equal(t, tasks[i].DueDate, got[i].DueDate)
				assert.True(t, tasks[i].CreatedAt.Equal(got[i].CreatedAt))
			}
		})
	}
}

func TestArchiveStore_ExportDocumentShape(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewArchiveStore(fsys)
	now := time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC)

	path, err := s.Export(sampleTasks(), "/out", "", now)
	require.NoError(t, err)
	assert.Equal(t, ".json", filepath.Ext(path), "json is the default format")

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.EqualValues(t, 2, doc["totalTasks"])
	assert.EqualValues(t, 1, doc["completedTasks"])
	assert.Equal(t, "2026-07-04T10:00:00Z", doc["exportDate"])
	assert.Len(t, doc["tasks"], 2)
	assert.Contains(t, string(data), "\n  \"tasks\"", "indented two spaces")
}

func TestArchiveStore_ExportEmpty(t *testing.T) {
	s := NewArchiveStore(afero.NewMemMapFs())
	for _, format := range Formats() {
		path, err := s.Export(nil, "/out", format, time.Now())
		require.NoError(t, err, format)

		got, err := s.Import(path)
		require.NoError(t, err, format)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestArchiveStore_ExportUnknownFormat(t *testing.T) {
	s := NewArchiveStore(afero.NewMemMapFs())
	_, err := s.Export(sampleTasks(), "/out", "csv", time.Now())
	assert.Error(t, err)
}

func TestArchiveStore_ImportInvalid(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "garbage json", path: "/in/a.json", body: `not json`},
		{name: "missing fields", path: "/in/b.json", body: `{"tasks":[]}`},
		{name: "invalid task", path: "/in/c.json", body: `{"tasks":[{"id":"","text":"","completed":false,"priority":"x","createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}],"exportDate":"2026-01-01T00:00:00Z","totalTasks":1,"completedTasks":0}`},
		{name: "garbage yaml", path: "/in/d.yaml", body: "tasks: [unclosed"},
		{name: "yaml bad priority", path: "/in/e.yml", body: "tasks:\n  - id: t1\n    text: hi\n    completed: false\n    priority: urgent\n    createdAt: 2026-01-01T00:00:00Z\n    updatedAt: 2026-01-01T00:00:00Z\nexportDate: 2026-01-01T00:00:00Z\ntotalTasks: 1\ncompletedTasks: 0\n"},
		{name: "unknown extension", path: "/in/f.csv", body: "id,text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, tt.path, []byte(tt.body), 0o644))

			_, err := NewArchiveStore(fsys).Import(tt.path)
			assert.ErrorIs(t, err, ErrCorruptData)
		})
	}
}

func TestArchiveStore_ImportMissingFile(t *testing.T) {
	_, err := NewArchiveStore(afero.NewMemMapFs()).Import("/nope.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptData)
}

func TestArchiveStore_List(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewArchiveStore(fsys)
	day1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	_, err := s.Export(nil, "/b", FormatJSON, day1)
	require.NoError(t, err)
	_, err = s.Export(nil, "/b", FormatYAML, day2)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, "/b/notes.txt", []byte("x"), 0o644))

	paths, err := s.List("/b")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/b", "todo-backup-2026-01-02.yaml"),
		filepath.Join("/b", "todo-backup-2026-01-01.json"),
	}, paths)
}

func TestBackupFileName(t *testing.T) {
	local := time.Date(2026, 3, 9, 23, 0, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "todo-backup-2026-03-10.json", BackupFileName(local, FormatJSON), "the date is taken in UTC")
}
