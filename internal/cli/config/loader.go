package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yndnr/slackctl/internal/infra/confloader"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "SLACKCTL_CONFIG"

// Dir is the per-user directory under $HOME.
const Dir = ".slackctl"

// DefaultConfigPath returns the config file path: $SLACKCTL_CONFIG, or
// ~/.slackctl/config.yaml.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, Dir, "config.yaml")
}

func historyPath(home string) string {
	return filepath.Join(home, Dir, "history")
}

// Load loads configuration from defaults, the file at path (when it
// exists) and SLACKCTL_* environment variables. An empty path means
// DefaultConfigPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	home, _ := os.UserHomeDir()

	l := confloader.NewLoader(confloader.WithConfigFile(path))
	cfg := &Config{}
	if err := l.Load(defaults(home), cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration, ignoring file and
// environment. It is used when the config file cannot be read.
func Default() *Config {
	home, _ := os.UserHomeDir()
	cfg := &Config{}
	l := confloader.NewLoader()
	if err := l.LoadMap(defaults(home)); err == nil {
		_ = l.Unmarshal(cfg)
	}
	return cfg
}
