// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/constants"
)

// Configuration holds all configuration for collectors-hub.
type Configuration struct {
	Storage  Storage
	Logging  Logging
	Server   Server
	Statuses []string
}

// Storage holds the database settings.
type Storage struct {
	Path string
}

// Logging holds the log output settings.
type Logging struct {
	Level      string
	Format     string
	OutputFile string
}

// Server holds the HTTP server settings.
type Server struct {
	Address        string
	MaxUploadBytes int64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Missing settings fall back to defaults; an empty
// configPath skips the file entirely and returns defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetConfigType("yml")

	v.SetDefault("storage.path", constants.DefaultStoragePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxuploadbytes", constants.DefaultMaxUploadSizeBytes)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the configuration for settings no run can work with.
func (conf *Configuration) Validate() error {
	if conf.Storage.Path == "" {
		return fmt.Errorf("storage.path cannot be empty")
	}
	if conf.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.maxUploadBytes must be positive, got %d", conf.Server.MaxUploadBytes)
	}
	switch conf.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", conf.Logging.Level)
	}
	switch conf.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", conf.Logging.Format)
	}
	return nil
}
