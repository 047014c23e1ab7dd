package cmd

import (
	"encoding/json"
	"testing"

	"github.com/josephgoksu/TaskDeck/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Empty(t *testing.T) {
	setupCLI(t)

	out, _, err := runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks yet")
	assert.Contains(t, out, "Add one with")
}

func TestListCmd_FilterAndSearch(t *testing.T) {
	setupCLI(t)
	for _, text := range []string{"Buy milk", "Walk dog", "Buy bread"} {
		_, _, err := runCLI(t, "add", text)
		require.NoError(t, err)
	}
	tasks := listTasks(t)
	_, _, err := runCLI(t, "toggle", tasks[0].ID) // "Buy bread"
	require.NoError(t, err)

	out, _, err := runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Walk dog")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "33%")

	out, _, err = runCLI(t, "list", "--filter", "completed", "--json")
	require.NoError(t, err)
	var resp listResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, task.FilterCompleted, resp.Filter)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "Buy bread", resp.Tasks[0].Text)
	assert.Equal(t, 3, resp.Stats.Total)

	out, _, err = runCLI(t, "list", "--search", "BUY", "--filter", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.NotContains(t, out, "Walk dog")
	assert.NotContains(t, out, "Buy bread")

	out, _, err = runCLI(t, "list", "--search", "zebra")
	require.NoError(t, err)
	assert.Contains(t, out, `No tasks match "zebra"`)
}

func TestListCmd_BadFilter(t *testing.T) {
	setupCLI(t)

	_, _, err := runCLI(t, "list", "--filter", "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter")
}
