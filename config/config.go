// Package config provides YAML configuration parsing for devicepulse.
//
// This package enables running devicepulse as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	base_url: https://status.example.com/limited
//	token: ${STATUS_TOKEN}
//	policy: windowed
//	timeout: 10s
//
//	devices:
//	  - "10"
//	  - "11"
//	  - "12"
//
//	watch_interval: 30s
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/devicepulse"
)

// Config is the root configuration structure for devicepulse.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// BaseURL is the status backend route; device ids are appended as the
	// final path segment. Supports environment variable substitution:
	// ${VAR} or ${VAR:-default}.
	BaseURL string `yaml:"base_url"`

	// Token is the bearer token sent with every status query.
	// Supports environment variable substitution. Optional.
	Token string `yaml:"token"`

	// Policy selects the admission policy: sequential, parallel, batched,
	// or windowed. Defaults to windowed.
	Policy string `yaml:"policy"`

	// Timeout is the per-request timeout. Accepts duration strings like
	// "10s", "1m", "500ms". Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// BatchWidth is the cohort size for the batched policy. Defaults to 5.
	BatchWidth int `yaml:"batch_width"`

	// WindowWidth is the pool size for the windowed policy. Defaults to 5.
	WindowWidth int `yaml:"window_width"`

	// Devices is the list of device identifiers to check.
	Devices []string `yaml:"devices"`

	// WatchInterval is the re-check interval for watch mode.
	// Must be at least 1 second if set. Defaults to 30s.
	WatchInterval Duration `yaml:"watch_interval"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in BaseURL and Token. Defaults are
// applied for Policy (windowed), Timeout (10s), BatchWidth and WindowWidth
// (5), and WatchInterval (30s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Policy == "" {
		cfg.Policy = devicepulse.PolicyWindowed.String()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(10 * time.Second)
	}
	if cfg.BatchWidth == 0 {
		cfg.BatchWidth = 5
	}
	if cfg.WindowWidth == 0 {
		cfg.WindowWidth = 5
	}
	if cfg.WatchInterval == 0 {
		cfg.WatchInterval = Duration(30 * time.Second)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	expanded, err := expandEnvVars(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	c.BaseURL = expanded

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", parsedURL.Scheme)
	}

	expanded, err = expandEnvVars(c.Token)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	c.Token = expanded

	if _, err := devicepulse.ParsePolicy(c.Policy); err != nil {
		return err
	}

	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
	}
	if c.BatchWidth < 0 {
		return fmt.Errorf("batch_width cannot be negative, got %d", c.BatchWidth)
	}
	if c.WindowWidth < 0 {
		return fmt.Errorf("window_width cannot be negative, got %d", c.WindowWidth)
	}
	if c.WatchInterval.Duration() < time.Second {
		return fmt.Errorf("watch_interval must be at least 1s, got %s", c.WatchInterval.Duration())
	}

	if len(c.Devices) == 0 {
		return errors.New("at least one device must be defined")
	}
	seen := make(map[string]struct{}, len(c.Devices))
	for i, id := range c.Devices {
		if id == "" {
			return fmt.Errorf("devices[%d]: id cannot be empty", i)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("devices[%d]: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
