package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the directory for crash logs relative to the data directory
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep
	MaxCrashLogs = 10

	crashPrefix = "crash_"
	crashSuffix = ".log"
)

// CrashContext stores what was happening when a panic hit.
type CrashContext struct {
	mu         sync.RWMutex
	command    string
	version    string
	basePath   string
	lastInput  string
	lastAction string
}

var globalContext = &CrashContext{}

// SetBasePath sets the directory crash logs are written under (typically the data dir).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetLastInput records the last text the user typed.
func SetLastInput(input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastInput = truncateForLog(strings.TrimSpace(input), 500)
}

// SetLastAction records the last session intent, e.g. "toggle task-1234".
func SetLastAction(action string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastAction = truncateForLog(action, 200)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	LastInput  string    `json:"last_input,omitempty"`
	LastAction string    `json:"last_action,omitempty"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// HandlePanic is a deferred function that recovers from panics, writes a
// crash log, and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	path, err := RecordPanic(r)
	reportCrash(os.Stderr, r, path, err)
	os.Exit(1)
}

// RecordPanic writes a crash log for panicValue and returns its path.
func RecordPanic(panicValue any) (string, error) {
	log := createCrashLog(panicValue)
	if err := writeCrashLog(log); err != nil {
		return "", err
	}
	return getCrashLogPath(log.Timestamp), nil
}

func reportCrash(w io.Writer, panicValue any, path string, writeErr error) {
	if writeErr != nil {
		fmt.Fprintf(w, "\n[CRASH] Failed to write crash log: %v\n", writeErr)
		fmt.Fprintf(w, "[CRASH] Panic: %v\n%s\n", panicValue, debug.Stack())
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╭──────────────────────────────────────────────────────╮")
	fmt.Fprintln(w, "│ 🔴 TaskDeck encountered an unexpected error         │")
	fmt.Fprintln(w, "╰──────────────────────────────────────────────────────╯")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A crash log has been saved to:")
	fmt.Fprintf(w, "  %s\n\n", path)
	fmt.Fprintln(w, "Your tasks were saved after the last successful change.")
}

func createCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  globalContext.lastInput,
		LastAction: globalContext.lastAction,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

func writeCrashLog(log CrashLog) error {
	dir := getCrashLogDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create crash log dir: %w", err)
	}

	// make room for the new file first so the directory never exceeds the cap
	if err := cleanOldCrashLogs(dir, MaxCrashLogs-1); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	path := getCrashLogPath(log.Timestamp)
	if err := os.WriteFile(path, []byte(formatCrashLog(log)), 0o644); err != nil {
		return fmt.Errorf("write crash log: %w", err)
	}
	return nil
}

func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = ".taskdeck"
	}
	return filepath.Join(basePath, CrashLogDir)
}

func getCrashLogPath(t time.Time) string {
	filename := fmt.Sprintf("%s%s%s", crashPrefix, t.Format("20060102_150405"), crashSuffix)
	return filepath.Join(getCrashLogDir(), filename)
}

func formatCrashLog(log CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)
	section := func(title, body string) {
		fmt.Fprintf(&sb, "\n%s\n%s\n%s\n%s", thin, title, thin, body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString("\n")
		}
	}

	fmt.Fprintf(&sb, "%s\nTASKDECK CRASH LOG\n%s\n\n", rule, rule)
	fmt.Fprintf(&sb, "Timestamp: %s\n", log.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", log.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", log.Command)
	fmt.Fprintf(&sb, "Go:        %s\n", log.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", log.OS, log.Arch)

	section("PANIC VALUE", log.PanicValue)
	section("STACK TRACE", log.StackTrace)
	if log.LastAction != "" {
		section("LAST ACTION", log.LastAction)
	}
	if log.LastInput != "" {
		section("LAST USER INPUT", log.LastInput)
	}

	fmt.Fprintf(&sb, "\n%s\nEND OF CRASH LOG\n%s\n", rule, rule)
	return sb.String()
}

// cleanOldCrashLogs removes the oldest crash logs until at most keep remain.
func cleanOldCrashLogs(dir string, keep int) error {
	logs, err := listCrashLogs(dir)
	if err != nil {
		return err
	}
	if len(logs) <= keep {
		return nil
	}
	for _, path := range logs[:len(logs)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// ListCrashLogs returns all crash logs, oldest first.
func ListCrashLogs() ([]string, error) {
	return listCrashLogs(getCrashLogDir())
}

func listCrashLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), crashPrefix) && strings.HasSuffix(e.Name(), crashSuffix) {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	// names embed the timestamp, so lexical order is chronological
	sort.Strings(logs)
	return logs, nil
}

// ReadCrashLog reads a crash log file.
func ReadCrashLog(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
