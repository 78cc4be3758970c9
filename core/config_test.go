package core

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"render-kernel/math"
)

func TestParseConfigOverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
window:
  width: 640
  height: 480
  hidden: true
render:
  cube_face_size: 64
  euler_order: ZYX
  clear_color: {r: 0.5, g: 0.25, b: 0, a: 1}
log_level: debug
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	if cfg.Window.Width != 640 || cfg.Window.Height != 480 || !cfg.Window.Hidden {
		t.Errorf("window not parsed: %+v", cfg.Window)
	}
	// untouched keys keep their defaults
	if cfg.Window.Title != DefaultWindowConfig().Title {
		t.Errorf("expected default title, got %q", cfg.Window.Title)
	}
	if cfg.Render.CubeFaceSize != 64 || math.EulerOrder(cfg.Render.EulerOrder) != math.EulerOrderZYX {
		t.Errorf("render not parsed: %+v", cfg.Render)
	}
	if cfg.Render.ClearColor != (Color{R: 0.5, G: 0.25, B: 0, A: 1}) {
		t.Errorf("clear color: got %+v", cfg.Render.ClearColor)
	}
	if cfg.Render.FieldOfView != 60 {
		t.Errorf("expected default fov 60, got %v", cfg.Render.FieldOfView)
	}
}

func TestParseConfigRejectsUnknownEulerOrder(t *testing.T) {
	_, err := ParseConfig([]byte("render:\n  euler_order: XXZ\n"))
	if !errors.Is(err, math.ErrUnsupportedEulerOrder) {
		t.Errorf("expected ErrUnsupportedEulerOrder, got %v", err)
	}
}

func TestParseConfigValidation(t *testing.T) {
	tests := []string{
		"window: {width: 0}",
		"render: {cube_face_size: -1}",
		"render: {field_of_view: 180}",
		"render: {near: 10, far: 1}",
		"log_level: loud",
	}

	for _, src := range tests {
		if _, err := ParseConfig([]byte(src)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%q: expected ErrInvalidConfig, got %v", src, err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte("render:\n  detail: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Render.Detail != 3 {
		t.Errorf("expected detail 3, got %d", cfg.Render.Detail)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoggerDefaultsToSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}

	SetLogger(slog.Default())
	if Logger() != slog.Default() {
		t.Error("SetLogger did not store the logger")
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestParseLogLevel(t *testing.T) {
	if l, ok := ParseLogLevel("warn"); !ok || l != slog.LevelWarn {
		t.Errorf("warn: got %v, %v", l, ok)
	}
	if _, ok := ParseLogLevel(""); ok {
		t.Error("empty level should not parse")
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform()
	tr.Position = math.Vector3{X: 1, Y: 2, Z: 3}

	m := tr.Matrix(nil)
	if m.Elements[12] != 1 || m.Elements[13] != 2 || m.Elements[14] != 3 || m.Elements[0] != 1 {
		t.Errorf("unexpected matrix %v", m.Elements)
	}

	if err := tr.SetEuler(math.NewEuler(0, 0, 0, math.EulerOrder(9))); !errors.Is(err, math.ErrUnsupportedEulerOrder) {
		t.Errorf("expected ErrUnsupportedEulerOrder, got %v", err)
	}
}
