// Package logger configures diagnostic logging and crash reporting for TaskDeck.
//
// Diagnostics go through log/slog backed by a charmbracelet/log handler.
// User-facing output never goes through the logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options controls where and how much is logged.
type Options struct {
	Level   string
	File    string
	Verbose bool
	// Stderr receives a copy of every record when Verbose is set.
	Stderr io.Writer
}

// ParseLevel maps a level name to a charmbracelet/log level. Unknown names mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Setup opens the log file and installs a slog default logger writing to it.
// The returned close function flushes and closes the file.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	var (
		writers []io.Writer
		file    *os.File
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}

	level := ParseLevel(opts.Level)
	if opts.Verbose {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, stderr)
		level = log.DebugLevel
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	logger := slog.New(New(w, level))
	slog.SetDefault(logger)

	closeFn := func() error {
		if file == nil {
			return nil
		}
		return file.Close()
	}
	return logger, closeFn, nil
}

// New returns a charmbracelet/log handler writing text records to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: true,
		Prefix:          "taskdeck",
	})
}
