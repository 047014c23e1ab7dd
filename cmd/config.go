package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/josephgoksu/TaskDeck/internal/config"
	"github.com/josephgoksu/TaskDeck/types"
	"github.com/spf13/viper"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// InitConfig reads in config file and ENV variables if set, then resolves
// the paths that depend on the environment and validates the result.
func InitConfig() error {
	// It's okay if .env file doesn't exist.
	_ = godotenv.Load()

	// Environment variable handling must be set up before reading the config file.
	viper.SetEnvPrefix(config.EnvPrefix)                   // e.g., TASKDECK_STORAGE_BACKEND
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // storage.dir -> TASKDECK_STORAGE_DIR
	viper.AutomaticEnv()
	config.SetDefaults()

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		// Project-specific config wins over the global one.
		if info, err := os.Stat(config.LocalDir); err == nil && info.IsDir() {
			viper.AddConfigPath(config.LocalDir) // ./.taskdeck/.taskdeck.yaml
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home) // $HOME/.taskdeck.yaml
		}
		viper.AddConfigPath(".") // ./.taskdeck.yaml
		viper.SetConfigName(config.ConfigName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Found but unreadable, or the --config file does not exist.
			return fmt.Errorf("read config %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	GlobalAppConfig = types.AppConfig{}
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// storage.dir and log.file have no static default; resolve them now.
	if GlobalAppConfig.Storage.Dir == "" {
		GlobalAppConfig.Storage.Dir = config.GetDataDir()
	}
	if GlobalAppConfig.Log.File == "" {
		GlobalAppConfig.Log.File = config.GetLogPath()
	}

	if err := GlobalAppConfig.Validate(); err != nil {
		return err
	}
	return nil
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
