package config

import (
	"fmt"
	"time"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the configuration for slackctl.
type Config struct {
	Output    string          `koanf:"output"`
	Log       LogConfig       `koanf:"log"`
	API       APIConfig       `koanf:"api"`
	Batch     BatchConfig     `koanf:"batch"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Shell     ShellConfig     `koanf:"shell"`
}

// LogConfig configures diagnostic logging on stderr.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// APIConfig configures the Slack Web API client.
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
	Timeout string `koanf:"timeout"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	MaxCommands int     `koanf:"max_commands"`
	RateLimit   float64 `koanf:"rate_limit"`
}

// TelemetryConfig configures metrics output.
type TelemetryConfig struct {
	MetricsFile string `koanf:"metrics_file"`
}

// ShellConfig configures the interactive shell.
type ShellConfig struct {
	HistoryFile string `koanf:"history_file"`
}

// defaults returns the built-in values as a nested map for koanf.
func defaults(home string) map[string]any {
	return map[string]any{
		"output": OutputText,
		"log": map[string]any{
			"level":  "warn",
			"format": "text",
		},
		"api": map[string]any{
			"base_url": "https://slack.com/api",
			"timeout":  "30s",
		},
		"batch": map[string]any{
			"max_commands": 50,
			"rate_limit":   0,
		},
		"telemetry": map[string]any{
			"metrics_file": "",
		},
		"shell": map[string]any{
			"history_file": historyPath(home),
		},
	}
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output: unsupported format %q", c.Output)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.Batch.MaxCommands < 1 {
		return fmt.Errorf("batch.max_commands: must be positive, got %d", c.Batch.MaxCommands)
	}
	if c.Batch.RateLimit < 0 {
		return fmt.Errorf("batch.rate_limit: must not be negative, got %v", c.Batch.RateLimit)
	}
	return nil
}

// Timeout parses api.timeout.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("api.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("api.timeout: must be positive, got %s", d)
	}
	return d, nil
}
