package main

import (
	"path/filepath"
	"testing"
	"time"

	"render-kernel/core"
	"render-kernel/gpu/gputest"
	"render-kernel/renderer"
	"render-kernel/scene"
)

func newTestScene(t *testing.T, environment *scene.Texture) (*renderer.Context, *gputest.Device, *cubemapScene) {
	t.Helper()
	d := gputest.NewDevice(16, 16)
	d.RegisterShader(patternFragmentShader, func(u gputest.Uniforms) [4]float32 {
		rgb := u["color"]
		return [4]float32{rgb[0], rgb[1], rgb[2], 1}
	})
	d.RegisterShader(sphereFragmentShader, func(gputest.Uniforms) [4]float32 {
		return [4]float32{1, 1, 1, 1}
	})

	c, err := renderer.NewContext(d, renderer.NewOffscreenSurface(16, 16))
	if err != nil {
		t.Fatal(err)
	}
	cfg := core.DefaultConfig().Render
	cfg.CubeFaceSize = 4
	cfg.Detail = 0

	s, err := newCubemapScene(c, cfg, environment)
	if err != nil {
		t.Fatalf("newCubemapScene: %v", err)
	}
	return c, d, s
}

func TestCubemapSceneFrame(t *testing.T) {
	c, d, s := newTestScene(t, nil)
	defer s.destroy()
	d.Reset()

	if err := s.render(c.CanvasFramebuffer(), 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	// six faces and the sphere
	if n := d.Draws(); n != 7 {
		t.Errorf("expected 7 draws, got %d", n)
	}
	if !d.State().DepthTest {
		t.Error("sphere should be drawn with depth testing")
	}

	// pattern colors differ per face
	seen := make(map[[4]float32]bool)
	for i, face := range scene.CubeFaceTargets {
		img, ok := d.TextureImage(s.cubeMap.Handle(), face, 0)
		if !ok {
			t.Fatalf("face %d has no storage", i)
		}
		seen[img.At(0, 0)] = true
	}
	if len(seen) != len(scene.CubeFaceTargets) {
		t.Errorf("expected 6 distinct face colors, got %d", len(seen))
	}

	px := d.ReadPixels(8, 8, 1, 1)
	if px[0] != 255 {
		t.Errorf("sphere not drawn to the canvas: %v", px)
	}
}

func TestCubemapSceneEnvironment(t *testing.T) {
	c, d, s := newTestScene(t, scene.NewSolidTexture("env", 0, 0, 255, 255))
	defer s.destroy()
	d.Reset()

	if err := s.render(c.CanvasFramebuffer(), time.Second); err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := d.Draws(); n != 1 {
		t.Errorf("environment scene should only draw the sphere, got %d draws", n)
	}
}

func TestCaptureTarget(t *testing.T) {
	c, d, s := newTestScene(t, nil)
	defer s.destroy()

	target, err := newCaptureTarget(c, 16, 8)
	if err != nil {
		t.Fatalf("newCaptureTarget: %v", err)
	}
	if err := s.render(target.Framebuffer, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if c.Viewport() != renderer.NewRect(0, 0, 16, 8) {
		t.Errorf("viewport should match the target, got %v", c.Viewport())
	}

	img, err := target.image()
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 16 || img.Height != 8 || img.Pixels[0] != 255 {
		t.Errorf("unexpected capture %dx%d first pixel %v", img.Width, img.Height, img.Pixels[:4])
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := scene.SaveImage(path, img.Image()); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	loaded, err := scene.LoadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Image.Width != 16 || loaded.Image.Height != 8 {
		t.Errorf("saved image has size %dx%d", loaded.Image.Width, loaded.Image.Height)
	}

	target.destroy()
	if _, _, _, framebuffers := d.Live(); framebuffers != 1 {
		t.Errorf("expected only the scene framebuffer to remain, got %d", framebuffers)
	}
}

func TestCaptureRejectsNoFrames(t *testing.T) {
	c, _, s := newTestScene(t, nil)
	defer s.destroy()
	if err := capture(c, s, 0, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Error("expected an error for zero frames")
	}
}
