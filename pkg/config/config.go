// Package config loads toolkit configuration from YAML with the usual
// precedence: built-in defaults, then the user file, then the project
// file, then environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default configuration values exported for documentation and validation.
const (
	DefaultBackend = "tcell"
	DefaultTitle   = "slate"
)

// Config is the complete toolkit configuration.
type Config struct {
	UI        UIConfig        `yaml:"ui"`
	Styles    StylesConfig    `yaml:"styles"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// UIConfig controls the window and rendering backend.
type UIConfig struct {
	Title      string  `yaml:"title"`
	Backend    string  `yaml:"backend"` // "tcell" or "sim"
	Scale      float64 `yaml:"scale"`   // DPI scale override, 0 = host default
	Background string  `yaml:"background"`
}

// StylesConfig controls stylesheet loading.
type StylesConfig struct {
	// Paths are stylesheet files loaded in order at startup.
	Paths []string `yaml:"paths"`
	// Watch reloads stylesheets when the files change on disk.
	Watch bool `yaml:"watch"`
	// Inline defines classes directly in the config file, applied after
	// the files so they win.
	Inline map[string]map[string]string `yaml:"inline"`
}

// TelemetryConfig controls event publication.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Title:   DefaultTitle,
			Backend: DefaultBackend,
		},
		Telemetry: TelemetryConfig{Enabled: true},
	}
}

// Load loads configuration from the default locations with proper
// precedence: defaults, ~/.slate/config.yaml, ./.slate/config.yaml, then
// environment overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userPath := filepath.Join(home, ".slate", "config.yaml")
		if err := loadAndMerge(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	projectPath := filepath.Join(".", ".slate", "config.yaml")
	if err := loadAndMerge(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from one specific file.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := loadAndMerge(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SLATE_TITLE"); v != "" {
		cfg.UI.Title = v
	}
	if v := os.Getenv("SLATE_BACKEND"); v != "" {
		cfg.UI.Backend = v
	}
	if v := os.Getenv("SLATE_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.UI.Scale = f
		}
	}
	if v := os.Getenv("SLATE_STYLES"); v != "" {
		cfg.Styles.Paths = append(cfg.Styles.Paths, v)
	}
}

// Validate checks the configuration for values the toolkit cannot run
// with.
func (c *Config) Validate() error {
	switch c.UI.Backend {
	case "tcell", "sim":
	default:
		return fmt.Errorf("unknown backend %q", c.UI.Backend)
	}
	if c.UI.Scale < 0 {
		return fmt.Errorf("scale must not be negative, got %v", c.UI.Scale)
	}
	for _, p := range c.Styles.Paths {
		if p == "" {
			return fmt.Errorf("empty stylesheet path")
		}
	}
	return nil
}
