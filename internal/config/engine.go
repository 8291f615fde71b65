package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config file path.
const EnvPath = "ISOWORLD_CONFIG"

// DefaultPath is used when EnvPath is unset.
const DefaultPath = "config/isoworld.yaml"

// Engine holds all configuration for the world engine.
type Engine struct {
	LogLevel   string `yaml:"log_level"` // debug|info|warn|error
	ShapesPath string `yaml:"shapes_path"`

	// Maps to create at startup; the first one is current.
	Maps []int `yaml:"maps"`

	TickInterval time.Duration `yaml:"tick_interval"`
	// SaveInterval between fixed-object flushes (0 disables periodic saves).
	SaveInterval time.Duration `yaml:"save_interval"`

	// CombatTrace logs every hit at info level.
	CombatTrace bool `yaml:"combat_trace"`

	Database DatabaseConfig `yaml:"database"`
	Studio   StudioConfig   `yaml:"studio"`
}

// DefaultEngine returns Engine config with sensible defaults.
func DefaultEngine() Engine {
	return Engine{
		LogLevel:     "info",
		ShapesPath:   "config/shapes.yaml",
		Maps:         []int{0},
		TickInterval: 100 * time.Millisecond,
		SaveInterval: time.Minute,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "isoworld",
			Password: "isoworld",
			DBName:   "isoworld",
			SSLMode:  "disable",
		},
		Studio: StudioConfig{
			ListenAddress: "127.0.0.1:7680",
			Path:          "/studio",
			QueueSize:     64,
			MapEditor:     true,
		},
	}
}

// Validate checks values the engine cannot start with.
func (e Engine) Validate() error {
	var errs []error
	if len(e.Maps) == 0 {
		errs = append(errs, errors.New("maps: at least one map is required"))
	}
	for _, m := range e.Maps {
		if m < 0 {
			errs = append(errs, fmt.Errorf("maps: negative map number %d", m))
		}
	}
	if e.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval: must be positive, got %v", e.TickInterval))
	}
	if e.SaveInterval < 0 {
		errs = append(errs, fmt.Errorf("save_interval: must not be negative, got %v", e.SaveInterval))
	}
	if _, err := ParseLevel(e.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if e.Studio.Enabled && e.Studio.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("studio.queue_size: must be positive, got %d", e.Studio.QueueSize))
	}
	for _, o := range e.Studio.AllowedOrigins {
		if u, err := url.Parse(o); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("studio.allowed_origins: %q is not scheme://host", o))
		}
	}
	return errors.Join(errs...)
}

// ParseLevel maps a log_level value to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Path returns the config path from ISOWORLD_CONFIG or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadEngine loads engine config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEngine(path string) (Engine, error) {
	cfg := DefaultEngine()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
