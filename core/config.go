package core

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"render-kernel/math"
)

// Config is the demo configuration, usually read from a YAML file.
type Config struct {
	Window   WindowConfig `yaml:"window"`
	Render   RenderConfig `yaml:"render"`
	LogLevel string       `yaml:"log_level"`
}

// WindowConfig describes the drawing surface.
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	VSync      bool   `yaml:"vsync"`
	Fullscreen bool   `yaml:"fullscreen"`
	// Hidden creates an invisible window, for offscreen rendering.
	Hidden bool `yaml:"hidden"`
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:      1280,
		Height:     720,
		Title:      "Render Kernel",
		Resizable:  true,
		VSync:      true,
		Fullscreen: false,
	}
}

// RenderConfig controls the cube map demo scene.
type RenderConfig struct {
	CubeFaceSize int        `yaml:"cube_face_size"`
	ClearColor   Color      `yaml:"clear_color"`
	FieldOfView  float64    `yaml:"field_of_view"`
	Near         float64    `yaml:"near"`
	Far          float64    `yaml:"far"`
	Detail       int        `yaml:"detail"`
	EulerOrder   EulerOrder `yaml:"euler_order"`
	// Environment is an optional equirectangular image projected onto the
	// cube map instead of the per-face pattern.
	Environment string `yaml:"environment"`
}

// EulerOrder wraps math.EulerOrder for YAML unmarshaling.
type EulerOrder math.EulerOrder

// UnmarshalYAML implements yaml.Unmarshaler for EulerOrder.
func (o *EulerOrder) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	order, err := math.ParseEulerOrder(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*o = EulerOrder(order)
	return nil
}

func (o EulerOrder) MarshalYAML() (any, error) {
	return math.EulerOrder(o).String(), nil
}

func DefaultConfig() Config {
	return Config{
		Window: DefaultWindowConfig(),
		Render: RenderConfig{
			CubeFaceSize: 256,
			ClearColor:   Color{R: 0, G: 0, B: 0, A: 1},
			FieldOfView:  60,
			Near:         0.1,
			Far:          100,
			Detail:       2,
			EulerOrder:   EulerOrder(math.EulerOrderXYZ),
		},
		LogLevel: "info",
	}
}

var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig reads path and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Render.CubeFaceSize <= 0:
		return fmt.Errorf("%w: cube_face_size %d", ErrInvalidConfig, c.Render.CubeFaceSize)
	case c.Render.FieldOfView <= 0 || c.Render.FieldOfView >= 180:
		return fmt.Errorf("%w: field_of_view %v", ErrInvalidConfig, c.Render.FieldOfView)
	case c.Render.Near <= 0 || c.Render.Far <= c.Render.Near:
		return fmt.Errorf("%w: near %v far %v", ErrInvalidConfig, c.Render.Near, c.Render.Far)
	case c.Render.Detail < 0:
		return fmt.Errorf("%w: detail %d", ErrInvalidConfig, c.Render.Detail)
	}
	if c.LogLevel != "" {
		if _, ok := ParseLogLevel(c.LogLevel); !ok {
			return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
		}
	}
	return nil
}
