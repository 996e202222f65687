// package config loads and validates host-facing renderer configuration from
// YAML files. All fields have working defaults so a zero-value file (or no
// file at all) produces a runnable setup.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// WindowConfig controls the host window.
type WindowConfig struct {
	// Title is the window title bar text.
	Title string `yaml:"title"`
	// Width is the initial window width in pixels.
	Width int `yaml:"width"`
	// Height is the initial window height in pixels.
	Height int `yaml:"height"`
}

// RendererConfig controls the GPU backend.
type RendererConfig struct {
	// PresentMode selects frame presentation: "vsync" or "uncapped".
	PresentMode string `yaml:"present_mode"`
	// MSAASamples is the multisample count for the lit pass (1, 4, 8 or 16).
	MSAASamples int `yaml:"msaa_samples"`
	// FrameLimit caps the render loop in frames per second; 0 means unlimited.
	FrameLimit int `yaml:"frame_limit"`
	// ForceSoftware requests a fallback (software) adapter.
	ForceSoftware bool `yaml:"force_software"`
}

// ShadowConfig controls the shadow depth pass.
type ShadowConfig struct {
	// Resolution is the width and height of each shadow map layer in texels.
	Resolution int `yaml:"resolution"`
}

// LogConfig controls engine logging.
type LogConfig struct {
	// Level is the minimum log level: "debug", "info", "warn" or "error".
	Level string `yaml:"level"`
	// Development switches to the human-readable console encoder.
	Development bool `yaml:"development"`
}

// Config is the root configuration document.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Shadows  ShadowConfig   `yaml:"shadows"`
	Log      LogConfig      `yaml:"log"`
	// TickRate is the fixed engine tick rate in ticks per second.
	TickRate int `yaml:"tick_rate"`
}

// Default returns a Config populated with working defaults.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "lumen",
			Width:  1280,
			Height: 720,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			MSAASamples: 1,
			FrameLimit:  0,
		},
		Shadows: ShadowConfig{
			Resolution: 1024,
		},
		Log: LogConfig{
			Level: "info",
		},
		TickRate: 60,
	}
}

// Load reads a YAML configuration file, overlays it on the defaults, and
// validates the result.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - Config: the merged, validated configuration
//   - error: error if the file could not be read, parsed, or validated
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
//
// Returns:
//   - error: error describing the first invalid field, or nil
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Renderer.PresentMode {
	case "vsync", "uncapped":
	default:
		return errors.Errorf("unknown present mode %q", c.Renderer.PresentMode)
	}
	switch c.Renderer.MSAASamples {
	case 1, 4, 8, 16:
	default:
		return errors.Errorf("msaa_samples must be 1, 4, 8 or 16, got %d", c.Renderer.MSAASamples)
	}
	if c.Renderer.FrameLimit < 0 {
		return errors.Errorf("frame_limit must be >= 0, got %d", c.Renderer.FrameLimit)
	}
	if c.Shadows.Resolution <= 0 {
		return errors.Errorf("shadow resolution must be positive, got %d", c.Shadows.Resolution)
	}
	if c.TickRate <= 0 {
		return errors.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	return nil
}
