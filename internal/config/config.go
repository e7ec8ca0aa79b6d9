package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the rewind command.
type Config struct {
	Name      string `yaml:"name" json:"name" toml:"name" env:"REWIND_NAME"`
	MaxLength int    `yaml:"max_length" json:"max_length" toml:"max_length" env:"REWIND_MAX_LENGTH"`
	Tracking  bool   `yaml:"tracking" json:"tracking" toml:"tracking" env:"REWIND_TRACKING"`
	LogLevel  string `yaml:"log_level" json:"log_level" toml:"log_level" env:"REWIND_LOG_LEVEL"`

	HTTP    HTTPConfig    `yaml:"http" json:"http" toml:"http"`
	Redis   RedisConfig   `yaml:"redis" json:"redis" toml:"redis"`
	Journal JournalConfig `yaml:"journal" json:"journal" toml:"journal"`
}

// HTTPConfig configures `rewind serve`.
type HTTPConfig struct {
	Addr string `yaml:"addr" json:"addr" toml:"addr" env:"REWIND_HTTP_ADDR"`
}

// RedisConfig enables the Redis journal when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr" toml:"addr" env:"REWIND_REDIS_ADDR"`
	Password string `yaml:"password" json:"password" toml:"password" env:"REWIND_REDIS_PASSWORD"`
	DB       int    `yaml:"db" json:"db" toml:"db" env:"REWIND_REDIS_DB"`
	Prefix   string `yaml:"prefix" json:"prefix" toml:"prefix" env:"REWIND_REDIS_PREFIX"`
	MaxLen   int64  `yaml:"max_len" json:"max_len" toml:"max_len" env:"REWIND_REDIS_MAX_LEN"`
}

// JournalConfig selects the journal used when Redis is not configured.
// A non-empty Path writes JSON lines to that file; otherwise entries are kept
// in memory, bounded by Capacity.
type JournalConfig struct {
	Capacity int    `yaml:"capacity" json:"capacity" toml:"capacity" env:"REWIND_JOURNAL_CAPACITY"`
	Path     string `yaml:"path" json:"path" toml:"path" env:"REWIND_JOURNAL_PATH"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Name:     "rewind",
		Tracking: true,
		LogLevel: "info",
		HTTP:     HTTPConfig{Addr: ":8080"},
		Redis:    RedisConfig{Prefix: "rewind:", MaxLen: 10000},
		Journal:  JournalConfig{Capacity: 1000},
	}
}

// Load builds the configuration from defaults, then the file at path (if
// any), then REWIND_* environment variables.
// The file format is chosen by extension: .json, .toml, or YAML otherwise.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	var errs []error
	if c.MaxLength < 0 {
		errs = append(errs, fmt.Errorf("max_length must not be negative, got %d", c.MaxLength))
	}
	if c.Journal.Capacity < 0 {
		errs = append(errs, fmt.Errorf("journal.capacity must not be negative, got %d", c.Journal.Capacity))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
