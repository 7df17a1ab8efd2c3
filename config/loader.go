package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Config file  (file.go)
//   4. Defaults  (defaults.go)

import (
	"os"
	"strconv"
	"strings"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the COMPANION_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("COMPANION_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("COMPANION_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("COMPANION_PLAYLIST_MODE"); v != "" {
		cfg.PlaylistMode = strings.ToLower(v)
	}

	// Logging
	if v := envInt("COMPANION_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if v := os.Getenv("COMPANION_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := envInt("COMPANION_LOG_MAX_SIZE"); v > 0 {
		cfg.LogMaxSize = v
	}
	if v := envInt("COMPANION_LOG_BACKUPS"); v > 0 {
		cfg.LogBackups = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
