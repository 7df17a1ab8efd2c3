package config

// file.go - YAML configuration file support.
//
// A config file is optional; a missing file at the default location is
// not an error, while an explicitly named file must exist.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is consulted when no --config flag is given.
const DefaultConfigPath = "companiond.yaml"

// LoadFile overlays a YAML file onto cfg.  Fields absent from the file
// keep their current values.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadDefaultFile loads DefaultConfigPath when it exists and silently
// does nothing otherwise.
func LoadDefaultFile(cfg *Config) error {
	if _, err := os.Stat(DefaultConfigPath); os.IsNotExist(err) {
		return nil
	}
	return LoadFile(cfg, DefaultConfigPath)
}
