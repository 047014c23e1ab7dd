package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.taskdeck).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskdeck"), nil
}

// GetDataDir returns the directory the task store lives in.
// Resolution order (first match wins):
// 1. Explicit config via "storage.dir" (Viper/env/flag)
// 2. Local project directory: .taskdeck/data (if exists)
// 3. XDG_DATA_HOME/taskdeck (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.taskdeck/data
func GetDataDir() string {
	if path := viper.GetString("storage.dir"); path != "" {
		return path
	}

	localData := filepath.Join(LocalDir, "data")
	if info, err := os.Stat(localData); err == nil && info.IsDir() {
		return localData
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "taskdeck")
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(dir, "data")
}

// GetLogPath returns the diagnostic log file, defaulting to <data dir>/logs/taskdeck.log.
func GetLogPath() string {
	if path := viper.GetString("log.file"); path != "" {
		return path
	}
	return filepath.Join(GetDataDir(), "logs", "taskdeck.log")
}

// GetCrashLogDir returns where panic reports are written.
func GetCrashLogDir() string {
	return filepath.Join(GetDataDir(), "crash_logs")
}
