// Package config loads the blobless configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFilter is the fetch filter used when none is configured:
// omit all file-content objects.
const DefaultFilter = "blob:none"

// Config holds the blobless configuration
type Config struct {
	// Filter is the partial-clone filter spec applied to the remote.
	Filter string `toml:"filter"`
	// KeepBackup retains the object-store snapshot after a successful
	// conversion instead of deleting it.
	KeepBackup bool `toml:"keep_backup"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Filter: DefaultFilter,
	}
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "blobless", "config.toml"), nil
}

// Load reads the config file, falling back to defaults when it does not
// exist. A malformed file returns the defaults together with an error so
// the caller can warn without aborting.
func Load() (Config, error) {
	cfg := Default()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Filter == "" {
		cfg.Filter = DefaultFilter
	}
	return cfg, nil
}
