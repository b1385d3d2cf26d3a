package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/klabast/wb-services/geo-events/internal/storage"
)

// Constants
const (
	DefaultConfigFile = "geo-events.yml"
	DefaultDataDir    = ".geo-events"
	SQLiteFile        = "events.db"

	// Storage backends
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	// Log formats
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// StorageConfig selects where the collection is persisted
type StorageConfig struct {
	Backend   string `yaml:"backend" env:"GEO_EVENTS_STORAGE_BACKEND"`
	Dir       string `yaml:"dir" env:"GEO_EVENTS_DATA_DIR"`
	Namespace string `yaml:"namespace" env:"GEO_EVENTS_NAMESPACE"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `yaml:"level" env:"GEO_EVENTS_LOG_LEVEL"`
	Format string `yaml:"format" env:"GEO_EVENTS_LOG_FORMAT"`
}

// MetricsConfig controls the metrics snapshot. An empty Textfile disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" env:"GEO_EVENTS_METRICS_TEXTFILE"`
}

// DisplayConfig controls CLI rendering
type DisplayConfig struct {
	Currency string `yaml:"currency" env:"GEO_EVENTS_CURRENCY"`
	Locale   string `yaml:"locale" env:"GEO_EVENTS_LOCALE"`
	Timezone string `yaml:"timezone" env:"GEO_EVENTS_TIMEZONE"`
}

// Config is the complete tool configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Display DisplayConfig `yaml:"display"`
}

// LoadConfig reads the YAML file at path (a missing file is fine when
// required is false), applies environment overrides and fills defaults
func LoadConfig(path string, required bool) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = defaultDataDir()
	}
	if c.Storage.Namespace == "" {
		c.Storage.Namespace = storage.DefaultNamespace
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = LogFormatConsole
	}
	if c.Display.Currency == "" {
		c.Display.Currency = "USD"
	}
	if c.Display.Locale == "" {
		c.Display.Locale = "en-US"
	}
	if c.Display.Timezone == "" {
		c.Display.Timezone = "Local"
	}
}

// Validate rejects unknown enum values
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Log.Format {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the display timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Display.Timezone, err)
	}
	return loc, nil
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, DefaultDataDir)
	}
	return DefaultDataDir
}
