// Package config loads the qconnect CLI configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/hupe1980/qconnect/client"
	"github.com/hupe1980/qconnect/logging"
	"gopkg.in/yaml.v3"
)

// Config holds all qconnect configuration.
type Config struct {
	Region      string            `yaml:"region"`
	EndpointURL string            `yaml:"endpoint_url,omitempty"`
	Output      string            `yaml:"output"` // json, yaml, text
	Timeout     string            `yaml:"timeout"`
	Headers     map[string]string `yaml:"headers,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ValidOutputs lists the supported output formats.
var ValidOutputs = []string{"json", "yaml", "text"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Region:  client.DefaultRegion,
		Output:  "json",
		Timeout: "90s",
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// DefaultPath returns ~/.qconnect/config.yaml, or a relative path when the
// home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".qconnect", "config.yaml")
	}
	return filepath.Join(home, ".qconnect", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// QCONNECT_REGION wins over AWS_REGION
	if region := os.Getenv("AWS_REGION"); region != "" {
		c.Region = region
	}
	if region := os.Getenv("QCONNECT_REGION"); region != "" {
		c.Region = region
	}
	if u := os.Getenv("QCONNECT_ENDPOINT_URL"); u != "" {
		c.EndpointURL = u
	}
	if out := os.Getenv("QCONNECT_OUTPUT"); out != "" {
		c.Output = out
	}
}

// GetTimeout returns the request timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 90 * time.Second
	}
	return d
}

// LogLevel returns the configured log level, falling back to warn.
func (c *Config) LogLevel() logging.LogLevel {
	if l, ok := logging.ParseLevel(c.Logging.Level); ok {
		return l
	}
	return logging.LogLevelWarn
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Region == "" && c.EndpointURL == "" {
		return fmt.Errorf("region not configured (set region in the config file, QCONNECT_REGION or AWS_REGION)")
	}

	if !slices.Contains(ValidOutputs, c.Output) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output, ValidOutputs)
	}

	if c.EndpointURL != "" {
		u, err := url.Parse(c.EndpointURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid endpoint_url: %q", c.EndpointURL)
		}
	}

	if d, err := time.ParseDuration(c.Timeout); err != nil || d < 0 {
		return fmt.Errorf("invalid timeout: %q", c.Timeout)
	}

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	return nil
}
