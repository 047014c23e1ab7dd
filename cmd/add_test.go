package cmd

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/internal/logger"
	"github.com/josephgoksu/TaskDeck/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAddCmd(t *testing.T) {
	setupCLI(t)

	out, _, err := runCLI(t, "add", "Buy", "milk", "--priority", "HIGH", "--due", "2026-06-01")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+app.MsgAdded)
	assert.Contains(t, out, "Buy milk")

	tasks := listTasks(t)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, "2026-06-01", tasks[0].DueDate)
	assert.False(t, tasks[0].Completed)
	assert.True(t, strings.HasPrefix(tasks[0].ID, "task-"))
}

func TestAddCmdNewestFirst(t *testing.T) {
	setupCLI(t)

	for _, text := range []string{"first", "second"} {
		_, _, err := runCLI(t, "add", text)
		require.NoError(t, err)
	}

	tasks := listTasks(t)
	require.Len(t, tasks, 2)
	assert.Equal(t, "second", tasks[0].Text)
	assert.Equal(t, models.PriorityMedium, tasks[1].Priority, "flag default must not leak between runs")
}

func TestAddCmdValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"blank", []string{"add", "   "}, app.MsgEmptyText},
		{"too long", []string{"add", strings.Repeat("x", 201)}, app.MsgTooLong},
		{"bad priority", []string{"add", "x", "--priority", "urgent"}, app.MsgInvalidPriority},
		{"bad due date", []string{"add", "x", "--due", "tomorrow"}, app.MsgInvalidDueDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)

			_, errOut, err := runCLI(t, tt.args...)
			require.ErrorIs(t, err, errReported)
			assert.Contains(t, errOut, tt.want)
			assert.Empty(t, listTasks(t))
		})
	}
}

func TestAddCmdJSON(t *testing.T) {
	setupCLI(t)

	out, _, err := runCLI(t, "add", "Walk dog", "--json")
	require.NoError(t, err)

	var r app.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.True(t, r.Success)
	assert.Equal(t, app.MsgAdded, r.Message)
	require.NotNil(t, r.Task)
	assert.Equal(t, "Walk dog", r.Task.Text)
}

func TestAddCmdQuiet(t *testing.T) {
	setupCLI(t)

	out, _, err := runCLI(t, "add", "Walk dog", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAddCmd_Backends(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			setupCLI(t)
			viper.Set("storage.backend", backend)

			addTasks(t, "Buy milk", "Walk dog")
			tasks := listTasks(t)
			require.Len(t, tasks, 2)
			assert.Equal(t, "Walk dog", tasks[0].Text)
		})
	}
}

func TestAddCmdRecordsInputForCrashLogs(t *testing.T) {
	setupCLI(t)
	addTasks(t, "Buy milk")

	path, err := logger.RecordPanic("boom")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "LAST USER INPUT")
	assert.Contains(t, string(data), "Buy milk")
}
