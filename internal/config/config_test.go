package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Viewport.MinZoom != 0.1 || cfg.Viewport.MaxZoom != 3.0 {
		t.Errorf("zoom bounds = [%v, %v], want [0.1, 3]", cfg.Viewport.MinZoom, cfg.Viewport.MaxZoom)
	}
	if got := cfg.Timing.MoveThrottle(); got != 16*time.Millisecond {
		t.Errorf("MoveThrottle() = %v, want 16ms", got)
	}
	if got := cfg.Timing.PersistDebounce(); got != time.Second {
		t.Errorf("PersistDebounce() = %v, want 1s", got)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got %q", cfg.Log.Level)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := Dir(); dir != "/tmp/test-xdg/topograph" {
		t.Errorf("expected /tmp/test-xdg/topograph, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "topograph")
	if dir := Dir(); dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Timing.PersistDebounceMs = 250
	cfg.Flow.Enabled = false

	if err := Save(cfg, ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Timing.PersistDebounceMs != 250 {
		t.Errorf("expected persist debounce 250, got %d", loaded.Timing.PersistDebounceMs)
	}
	if loaded.Flow.Enabled {
		t.Error("expected flow disabled after load")
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Canvas.NodeWidth != 180 {
		t.Errorf("expected default node width, got %v", cfg.Canvas.NodeWidth)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected level debug, got %q", cfg.Log.Level)
	}
	if cfg.Viewport.MaxZoom != 3.0 {
		t.Errorf("expected default max zoom, got %v", cfg.Viewport.MaxZoom)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"max below min", func(c *Config) { c.Viewport.MaxZoom = 0.05 }, "Viewport.MaxZoom"},
		{"zero width", func(c *Config) { c.Canvas.NodeWidth = 0 }, "Canvas.NodeWidth"},
		{"wheel out above one", func(c *Config) { c.Viewport.WheelOut = 1.2 }, "Viewport.WheelOut"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "Log.Level"},
		{"zero throttle", func(c *Config) { c.Timing.MoveThrottleMs = 0 }, "Timing.MoveThrottleMs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[viewport]\nmin_zoom = 2.0\nmax_zoom = 1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for inverted zoom bounds")
	}
}
