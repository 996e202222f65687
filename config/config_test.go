package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeTempConfig(t, `
window:
  title: demo
  width: 800
shadows:
  resolution: 2048
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Window.Title != "demo" {
		t.Errorf("title = %q, want %q", cfg.Window.Title, "demo")
	}
	if cfg.Window.Width != 800 {
		t.Errorf("width = %d, want 800", cfg.Window.Width)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Window.Height != 720 {
		t.Errorf("height = %d, want default 720", cfg.Window.Height)
	}
	if cfg.Renderer.PresentMode != "vsync" {
		t.Errorf("present mode = %q, want default vsync", cfg.Renderer.PresentMode)
	}
	if cfg.Shadows.Resolution != 2048 {
		t.Errorf("shadow resolution = %d, want 2048", cfg.Shadows.Resolution)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.TickRate != 60 {
		t.Errorf("tick rate = %d, want default 60", cfg.TickRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeTempConfig(t, "window: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Window.Height = -1 }, true},
		{"bad present mode", func(c *Config) { c.Renderer.PresentMode = "mailbox" }, true},
		{"uncapped present mode", func(c *Config) { c.Renderer.PresentMode = "uncapped" }, false},
		{"bad msaa", func(c *Config) { c.Renderer.MSAASamples = 2 }, true},
		{"msaa 4", func(c *Config) { c.Renderer.MSAASamples = 4 }, false},
		{"negative frame limit", func(c *Config) { c.Renderer.FrameLimit = -1 }, true},
		{"zero shadow resolution", func(c *Config) { c.Shadows.Resolution = 0 }, true},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
