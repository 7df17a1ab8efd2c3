package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companiond.yaml")
	body := []byte("host: 192.168.1.10\nport: 8888\nplaylist_mode: repeat\nlog_file: bridge.log\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := New()
	if err := LoadFile(cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Host != "192.168.1.10" || cfg.Port != 8888 {
		t.Errorf("bind = %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.PlaylistMode != "repeat" {
		t.Errorf("playlist mode = %q", cfg.PlaylistMode)
	}
	if cfg.LogFile != "bridge.log" {
		t.Errorf("log file = %q", cfg.LogFile)
	}
	// Fields absent from the file keep their defaults.
	if cfg.LogMaxSize != DefaultLogMaxSize {
		t.Errorf("log max size = %d, want default %d", cfg.LogMaxSize, DefaultLogMaxSize)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := New()
	if err := LoadFile(cfg, filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("explicitly named missing file must error")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("host: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := New()
	if err := LoadFile(cfg, path); err == nil {
		t.Error("malformed YAML must error")
	}
}
