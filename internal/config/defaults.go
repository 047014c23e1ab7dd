// Package config provides centralized configuration constants for TaskDeck.
// All default values should be defined here to ensure a single source of truth.
package config

import "github.com/spf13/viper"

const (
	// ConfigName is the config file name without extension (.taskdeck.yaml).
	ConfigName = ".taskdeck"

	// EnvPrefix prefixes environment overrides, e.g. TASKDECK_STORAGE_BACKEND.
	EnvPrefix = "TASKDECK"

	// LocalDir is the per-project directory checked before global locations.
	LocalDir = ".taskdeck"
)

// Storage defaults
const (
	DefaultBackend = "file"

	// DefaultMaxBytes mirrors the usual 5 MiB browser localStorage quota.
	DefaultMaxBytes int64 = 5 << 20
)

const (
	DefaultUndoLimit    = 10
	DefaultExportDir    = "."
	DefaultExportFormat = "json"
	DefaultTheme        = "light"
	DefaultLogLevel     = "info"
)

// SetDefaults registers every default with viper. Keys that depend on the
// environment (storage.dir, log.file) are resolved after the config is read.
func SetDefaults() {
	viper.SetDefault("storage.backend", DefaultBackend)
	viper.SetDefault("storage.maxBytes", DefaultMaxBytes)
	viper.SetDefault("undo.limit", DefaultUndoLimit)
	viper.SetDefault("export.dir", DefaultExportDir)
	viper.SetDefault("export.format", DefaultExportFormat)
	viper.SetDefault("ui.theme", DefaultTheme)
	viper.SetDefault("log.level", DefaultLogLevel)
}
