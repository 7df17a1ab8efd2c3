// Package config defines the runtime configuration for companiond and
// provides loading from a YAML file and the environment.
package config

import (
	"fmt"

	"companiond/playlist"
)

// Config holds every tuneable for a companiond run.
type Config struct {
	// ── Socket ───────────────────────────────────────────────────────
	Host string `yaml:"host"` // bind host for the companion socket
	Port int    `yaml:"port"` // bind port for the companion socket

	// ── Playlist ─────────────────────────────────────────────────────
	PlaylistMode string `yaml:"playlist_mode"` // sequential, loop, repeat

	// ── Logging ──────────────────────────────────────────────────────
	Verbose    int    `yaml:"verbose"`
	LogFile    string `yaml:"log_file"`     // empty → stderr only
	LogMaxSize int    `yaml:"log_max_size"` // MiB before rotation
	LogBackups int    `yaml:"log_backups"`  // rotated files kept
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Host:         DefaultHost,
		Port:         DefaultPort,
		PlaylistMode: DefaultPlaylistMode,
		LogMaxSize:   DefaultLogMaxSize,
		LogBackups:   DefaultLogBackups,
	}
}

// Mode resolves the configured playlist traversal mode.
func (c *Config) Mode() playlist.Mode {
	return playlist.ParseMode(c.PlaylistMode)
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("bind host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	switch c.PlaylistMode {
	case "sequential", "loop", "repeat":
	default:
		return fmt.Errorf("playlist mode %q: want sequential, loop, or repeat", c.PlaylistMode)
	}
	if c.LogFile != "" {
		if c.LogMaxSize < 1 {
			return fmt.Errorf("log_max_size must be at least 1 MiB")
		}
		if c.LogBackups < 0 {
			return fmt.Errorf("log_backups cannot be negative")
		}
	}
	return nil
}
