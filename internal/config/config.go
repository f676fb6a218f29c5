// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variables read by FromEnv.
const (
	EnvTheme       = "RESUME_THEME"
	EnvTemplate    = "RESUME_TEMPLATE"
	EnvOutputDir   = "RESUME_OUTPUT_DIR"
	EnvDatabaseURL = "DATABASE_URL"
	EnvPort        = "PORT"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Paths
	Theme     string `json:"theme,omitempty"`      // Path to theme YAML
	Template  string `json:"template,omitempty"`   // Path to LaTeX template override
	OutputDir string `json:"output_dir,omitempty"` // Directory for generated PDFs
	TempDir   string `json:"temp_dir,omitempty"`   // Parent directory for scratch files

	// Rendering
	CompileTimeout string `json:"compile_timeout,omitempty"` // LaTeX timeout, e.g. "30s"

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for render history

	// Behavior
	Concurrency int  `json:"concurrency,omitempty"` // Parallel parses in batch mode
	Verbose     bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Theme:          "theme.yaml",
		OutputDir:      "output",
		CompileTimeout: "30s",
		Port:           8080,
		Concurrency:    4,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		Theme:       os.Getenv(EnvTheme),
		Template:    os.Getenv(EnvTemplate),
		OutputDir:   os.Getenv(EnvOutputDir),
		DatabaseURL: os.Getenv(EnvDatabaseURL),
	}
	if port := os.Getenv(EnvPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return cfg, fmt.Errorf("config error: %s must be a number: %w", EnvPort, err)
		}
		cfg.Port = p
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.CompileTimeout != "" {
		d, err := time.ParseDuration(c.CompileTimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'compile_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'compile_timeout' must be positive")
		}
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_dir is not a directory: %s", c.OutputDir)
		}
	}

	return nil
}

// Timeout returns CompileTimeout as a duration, or zero when unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.CompileTimeout)
	if err != nil {
		return 0
	}
	return d
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Theme == "" {
		result.Theme = defaults.Theme
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.TempDir == "" {
		result.TempDir = defaults.TempDir
	}
	if result.CompileTimeout == "" {
		result.CompileTimeout = defaults.CompileTimeout
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
