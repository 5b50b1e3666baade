// Package config loads signify client configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all signify client configuration.
type Config struct {
	// API configures the connection to the Signify backend.
	API APIConfig `yaml:"api"`

	// UI configures the interactive dashboard.
	UI UIConfig `yaml:"ui"`

	// Logging controls the client log output.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// UIConfig configures dashboard appearance.
type UIConfig struct {
	// Theme is "auto", "light" or "dark".
	Theme string `yaml:"theme"`
}

// LoggingConfig controls log level and destination.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File is the log destination for interactive mode. Empty means the
	// default path under the signify config directory.
	File string `yaml:"file"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3005",
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Dir returns the signify configuration directory, creating nothing.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "signify"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = Default().API.Timeout
	}
	return cfg, nil
}

// applyEnvOverrides applies SIGNIFY_* environment variables on top of the
// loaded values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SIGNIFY_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SIGNIFY_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("SIGNIFY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SIGNIFY_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// LogFile resolves the effective log file for interactive mode.
func (c *Config) LogFile() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "signify.log"), nil
}
