package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetupWritesToFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "logs", "taskdeck.log")
	logger, closeFn, err := Setup(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Debug("hidden detail")
	logger.Info("task added", "id", "task-1")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "task added")
	assert.Contains(t, string(data), "task-1")
	assert.Contains(t, string(data), "taskdeck")
	assert.NotContains(t, string(data), "hidden detail")
}

func TestSetupVerboseMirrorsToStderr(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "taskdeck.log")
	logger, closeFn, err := Setup(Options{Level: "error", File: path, Verbose: true, Stderr: &stderr})
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("loading tasks")
	assert.Contains(t, stderr.String(), "loading tasks")
	assert.Same(t, logger, slog.Default())
}

func TestSetupWithoutFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	logger, closeFn, err := Setup(Options{})
	require.NoError(t, err)
	logger.Info("discarded")
	assert.NoError(t, closeFn())
}
