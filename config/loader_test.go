package config

import "testing"

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COMPANION_HOST", "0.0.0.0")
	t.Setenv("COMPANION_PORT", "9999")
	t.Setenv("COMPANION_PLAYLIST_MODE", "LOOP")
	t.Setenv("COMPANION_VERBOSE", "2")
	t.Setenv("COMPANION_LOG_FILE", "/tmp/companiond.log")

	cfg := New()
	LoadFromEnv(cfg)

	if cfg.Host != "0.0.0.0" {
		t.Errorf("host = %q", cfg.Host)
	}
	if cfg.Port != 9999 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.PlaylistMode != "loop" {
		t.Errorf("playlist mode = %q (should lower-case)", cfg.PlaylistMode)
	}
	if cfg.Verbose != 2 {
		t.Errorf("verbose = %d", cfg.Verbose)
	}
	if cfg.LogFile != "/tmp/companiond.log" {
		t.Errorf("log file = %q", cfg.LogFile)
	}
}

func TestLoadFromEnvIgnoresEmptyAndInvalid(t *testing.T) {
	t.Setenv("COMPANION_HOST", "")
	t.Setenv("COMPANION_PORT", "not-a-number")

	cfg := New()
	LoadFromEnv(cfg)

	if cfg.Host != DefaultHost {
		t.Errorf("empty env var should not override, host = %q", cfg.Host)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("invalid int should not override, port = %d", cfg.Port)
	}
}
