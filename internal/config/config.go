// Package config loads drillq settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Catalog CatalogConfig `yaml:"catalog"`
	Drill   DrillConfig   `yaml:"drill"`
	Log     LogConfig     `yaml:"log"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	DBPath string `yaml:"db_path" env:"DRILLQ_DB"`
}

// CatalogConfig selects the scenario dataset. An empty path uses the
// built-in catalog.
type CatalogConfig struct {
	Path string `yaml:"path" env:"DRILLQ_CATALOG"`
}

// DrillConfig holds drill loop settings.
type DrillConfig struct {
	AnswerTimeout time.Duration `yaml:"answer_timeout" env:"DRILLQ_ANSWER_TIMEOUT" env-default:"20s"`
	KeepSessions  int           `yaml:"keep_sessions"  env:"DRILLQ_KEEP_SESSIONS"  env-default:"5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"DRILLQ_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"DRILLQ_LOG_FORMAT" env-default:"console"`
	File   string `yaml:"file"   env:"DRILLQ_LOG_FILE"`
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"console", "json"}
)

// Load reads configuration. Priority: ENV > YAML > defaults.
// .env in the working directory is loaded into the environment first.
// The YAML path comes from DRILLQ_CONFIG, falling back to
// $XDG_CONFIG_HOME/drillq/config.yaml; a missing default file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	path := os.Getenv("DRILLQ_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		path = defaultPath()
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func defaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "drillq", "config.yaml")
}

// Validate checks settings that defaults cannot guarantee.
func (c *Config) Validate() error {
	if c.Drill.AnswerTimeout <= 0 {
		return fmt.Errorf("drill.answer_timeout must be positive, got %s", c.Drill.AnswerTimeout)
	}
	if c.Drill.KeepSessions < 1 {
		return fmt.Errorf("drill.keep_sessions must be at least 1, got %d", c.Drill.KeepSessions)
	}
	if !slices.Contains(validLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v, got %q", validLevels, c.Log.Level)
	}
	if !slices.Contains(validFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v, got %q", validFormats, c.Log.Format)
	}
	return nil
}
