// Package config loads and hot-reloads the service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully resolved configuration for the service.
type Config struct {
	Server     ServerConfig    `mapstructure:"server"`
	Logging    LoggingConfig   `mapstructure:"logging"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Translator ServiceEndpoint `mapstructure:"translator"`
	Aligner    ServiceEndpoint `mapstructure:"aligner"`
	Tokenizer  TokenizerConfig `mapstructure:"tokenizer"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// LoggingConfig controls pkg/logger initialization.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig points at the job store's sqlite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AuthConfig holds the JWT signing secret and the single seeded API-key
// holder's bcrypt hash that POST /api/v1/login exchanges for a token.
type AuthConfig struct {
	JWTSecret    string `mapstructure:"jwt_secret"`
	APIKeyHash   string `mapstructure:"api_key_hash"`
	TokenSubject string `mapstructure:"token_subject"`
}

// ServiceEndpoint is a reusable shape for the translator/aligner HTTP
// collaborators: base URL plus an optional bearer token.
type ServiceEndpoint struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// TokenizerConfig selects between the built-in regex tokenizer and a
// remote tokenizer service.
type TokenizerConfig struct {
	Kind string `mapstructure:"kind"` // "regex" or "http"
	URL  string `mapstructure:"url"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("database.path", "doctranslate.db")
	v.SetDefault("tokenizer.kind", "regex")
	v.SetDefault("auth.token_subject", "api-client")
}

// Load reads configuration from (in ascending priority) defaults, a
// config file (configPath, optional), and environment variables
// prefixed DOCTRANSLATE_. A sibling .env file is loaded first via
// godotenv so local development can set environment variables without
// exporting them in the shell.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)

	v.SetEnvPrefix("doctranslate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// WatchLogLevel hot-reloads cfg.Logging.Level and the log format whenever
// configPath changes on disk, invoking onChange with the updated values.
// No-op when configPath is empty: there is nothing to watch.
func WatchLogLevel(configPath string, onChange func(level, format string)) error {
	if configPath == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	if err := watcher.Add(configPath); err != nil {
		return fmt.Errorf("watching %s: %w", configPath, err)
	}

	go func() {
		for event := range watcher.Events {
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(configPath)
			if err != nil {
				continue
			}
			onChange(cfg.Logging.Level, cfg.Logging.Format)
		}
	}()
	return nil
}
