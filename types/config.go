/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Undo    UndoConfig    `mapstructure:"undo"`
	Export  ExportConfig  `mapstructure:"export" validate:"required"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig selects where tasks are persisted
type StorageConfig struct {
	Backend  string `mapstructure:"backend" validate:"required,oneof=file sqlite memory"`
	Dir      string `mapstructure:"dir" validate:"required"`
	MaxBytes int64  `mapstructure:"maxBytes" validate:"min=0"`
}

// UndoConfig bounds the undo history
type UndoConfig struct {
	Limit int `mapstructure:"limit" validate:"min=1,max=100"`
}

// ExportConfig holds defaults for the export command
type ExportConfig struct {
	Dir    string `mapstructure:"dir" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	Theme string `mapstructure:"theme" validate:"required,oneof=light dark"`
}

// LogConfig controls the diagnostic log
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

var validate = validator.New()

// Validate checks every field rule and reports all violations at once.
func (c *AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", configKey(fe.Namespace()), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// configKey maps a struct namespace like AppConfig.Storage.MaxBytes to storage.maxBytes.
func configKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p == "UI" {
			parts[i] = "ui"
			continue
		}
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}
