package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lab.Turns != nil || cfg.Log.Level != nil || cfg.Export.Dir != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[lab]
turns = 8
strength = 2.5
magnet = "ring"
sound = false
field-lines = false

[log]
level = "debug"
max-size = 5

[export]
dir = "/tmp/out"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lab.Turns == nil || *cfg.Lab.Turns != 8 {
		t.Fatalf("expected turns 8, got %v", cfg.Lab.Turns)
	}
	if cfg.Lab.Strength == nil || *cfg.Lab.Strength != 2.5 {
		t.Fatalf("expected strength 2.5, got %v", cfg.Lab.Strength)
	}
	if cfg.Lab.Sound == nil || *cfg.Lab.Sound {
		t.Fatalf("expected sound false")
	}
	if cfg.Lab.Material != nil {
		t.Fatalf("expected unset material")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level")
	}
	if cfg.Export.Dir == nil || *cfg.Export.Dir != "/tmp/out" {
		t.Fatalf("expected export dir")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[lab]\ncoils = 3\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "lab.coils") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "faraday", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "faraday", "faraday.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "faraday", "faraday.log") {
		t.Fatalf("unexpected log path %s", got)
	}
	if got := DefaultExportDir(); got != filepath.Join("/data", "faraday", "exports") {
		t.Fatalf("unexpected export dir %s", got)
	}
}
