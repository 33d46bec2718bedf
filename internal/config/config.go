// Package config loads the user's ccr configuration and resolves the
// registry packages directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvRegistry is the environment variable overriding the registry directory.
const EnvRegistry = "CCR_REGISTRY"

// DefaultRegistryDir is the registry layout used when nothing else is
// configured, relative to the current working directory.
const DefaultRegistryDir = "registry/packages"

// Config represents the user's ccr configuration file.
type Config struct {
	RegistryDir string `yaml:"registry_dir"`
}

// DefaultConfigDir returns the default configuration directory, respecting XDG_CONFIG_HOME.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccr")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "ccr")
	}

	return filepath.Join(home, ".config", "ccr")
}

// Load reads the config from the given path. An empty path means the default
// location. If the file doesn't exist, it returns a zero-value config (no error).
func Load(path string) (*Config, error) {
	if path == "" {
		path = filepath.Join(DefaultConfigDir(), "config.yaml")
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}

		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}

// ResolveRegistryDir picks the registry packages directory from, in order:
// the explicit flag value, the CCR_REGISTRY environment variable, the config
// file, and the default layout.
func ResolveRegistryDir(flagValue, configPath string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if env := os.Getenv(EnvRegistry); env != "" {
		slog.Debug("registry directory from environment", "dir", env)

		return env, nil
	}

	cfg, err := Load(configPath)
	if err != nil {
		return "", err
	}

	if cfg.RegistryDir != "" {
		slog.Debug("registry directory from config", "dir", cfg.RegistryDir)

		return cfg.RegistryDir, nil
	}

	return DefaultRegistryDir, nil
}
