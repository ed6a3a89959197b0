// Package config loads and saves topograph settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config holds topograph configuration.
type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Viewport ViewportConfig `toml:"viewport"`
	Timing   TimingConfig   `toml:"timing"`
	Flow     FlowConfig     `toml:"flow"`
	Log      LogConfig      `toml:"log"`
}

// CanvasConfig controls node geometry in world units.
type CanvasConfig struct {
	NodeWidth    float64 `toml:"node_width" validate:"gt=0"`
	NodeHeight   float64 `toml:"node_height" validate:"gt=0"`
	AnchorRadius float64 `toml:"anchor_radius" validate:"gt=0"`
	GridSpacing  float64 `toml:"grid_spacing" validate:"gt=0"`
}

// ViewportConfig controls zoom bounds and step factors.
type ViewportConfig struct {
	MinZoom   float64 `toml:"min_zoom" validate:"gt=0"`
	MaxZoom   float64 `toml:"max_zoom" validate:"gtfield=MinZoom"`
	WheelIn   float64 `toml:"wheel_in" validate:"gt=1"`
	WheelOut  float64 `toml:"wheel_out" validate:"gt=0,lt=1"`
	ZoomStep  float64 `toml:"zoom_step" validate:"gt=0"`
	FitMargin float64 `toml:"fit_margin" validate:"gte=0"`
}

// TimingConfig holds rate limits in milliseconds.
type TimingConfig struct {
	MoveThrottleMs    int     `toml:"move_throttle_ms" validate:"gt=0"`
	PersistDebounceMs int     `toml:"persist_debounce_ms" validate:"gt=0"`
	DoubleClickMs     int     `toml:"double_click_ms" validate:"gt=0"`
	ReloadDebounceMs  int     `toml:"reload_debounce_ms" validate:"gt=0"`
	ClickSlop         float64 `toml:"click_slop" validate:"gte=0"`
}

// FlowConfig controls the markers animated along edges.
type FlowConfig struct {
	Enabled bool `toml:"enabled"`
	Markers int  `toml:"markers" validate:"gte=0,lte=32"`
	CycleMs int  `toml:"cycle_ms" validate:"gt=0"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level       string `toml:"level" validate:"oneof=debug info warn error"`
	Development bool   `toml:"development"`
}

// MoveThrottle is the interval between node move notifications.
func (t TimingConfig) MoveThrottle() time.Duration {
	return time.Duration(t.MoveThrottleMs) * time.Millisecond
}

// PersistDebounce is the quiet period before a moved node is persisted.
func (t TimingConfig) PersistDebounce() time.Duration {
	return time.Duration(t.PersistDebounceMs) * time.Millisecond
}

// DoubleClick is the window in which a second click counts as a double click.
func (t TimingConfig) DoubleClick() time.Duration {
	return time.Duration(t.DoubleClickMs) * time.Millisecond
}

// ReloadDebounce is the quiet period before a changed document is reloaded.
func (t TimingConfig) ReloadDebounce() time.Duration {
	return time.Duration(t.ReloadDebounceMs) * time.Millisecond
}

// Cycle is the time one flow marker takes to travel an edge.
func (f FlowConfig) Cycle() time.Duration {
	return time.Duration(f.CycleMs) * time.Millisecond
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{NodeWidth: 180, NodeHeight: 60, AnchorRadius: 6, GridSpacing: 40},
		Viewport: ViewportConfig{
			MinZoom:   0.1,
			MaxZoom:   3.0,
			WheelIn:   1.1,
			WheelOut:  0.9,
			ZoomStep:  0.1,
			FitMargin: 40,
		},
		Timing: TimingConfig{
			MoveThrottleMs:    16,
			PersistDebounceMs: 1000,
			DoubleClickMs:     400,
			ReloadDebounceMs:  250,
			ClickSlop:         4,
		},
		Flow: FlowConfig{Enabled: true, Markers: 3, CycleMs: 2000},
		Log:  LogConfig{Level: "info"},
	}
}

// Dir returns the topograph config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "topograph")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path over the defaults. An empty path means
// Path(). A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, or Path() if empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, e.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, e.Tag())
	}
}
