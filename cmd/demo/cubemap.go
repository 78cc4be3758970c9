package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"

	"render-kernel/core"
	"render-kernel/gpu"
	"render-kernel/math"
	"render-kernel/renderer"
	"render-kernel/scene"
)

// cubemapScene renders a pattern into each face of a cube map, then draws
// an icosphere that samples the cube map by surface normal.
type cubemapScene struct {
	context *renderer.Context

	// pattern pass, skipped when the cube map comes from an environment image
	animated        bool
	faces           *renderer.Framebuffer
	patternProgram  *renderer.Program
	patternGeometry *renderer.BufferGeometry
	patternUniforms renderer.UniformValueMap

	cubeMap  *renderer.TexImage2D
	program  *renderer.Program
	geometry *renderer.BufferGeometry
	uniforms renderer.UniformValueMap

	camera       *scene.PerspectiveCamera
	order        math.EulerOrder
	localToWorld *math.Matrix4
	viewToScreen *math.Matrix4
	clear        renderer.ClearState
	depth        renderer.DepthTestState
}

// newCubemapScene builds the scene. A non-nil environment is projected onto
// the cube map once instead of drawing the animated pattern.
func newCubemapScene(c *renderer.Context, cfg core.RenderConfig, environment *scene.Texture) (*cubemapScene, error) {
	s := &cubemapScene{
		context:      c,
		animated:     environment == nil,
		camera:       scene.NewPerspectiveCamera(cfg.FieldOfView, cfg.Near, cfg.Far),
		order:        math.EulerOrder(cfg.EulerOrder),
		localToWorld: math.NewMatrix4(),
		viewToScreen: math.NewMatrix4(),
		clear:        renderer.ClearState{Color: cfg.ClearColor.RGB(), Alpha: float64(cfg.ClearColor.A), Depth: 1},
		depth:        renderer.NewDepthTestState(),
	}
	s.camera.Position.Set(0, 0, 3)

	if err := s.init(cfg, environment); err != nil {
		s.destroy()
		return nil, err
	}
	return s, nil
}

func (s *cubemapScene) init(cfg core.RenderConfig, environment *scene.Texture) error {
	c := s.context
	var err error

	if s.animated {
		s.cubeMap, err = renderer.NewTexImage2D(c, cfg.CubeFaceSize, cfg.CubeFaceSize, gpu.TargetCubeMap, gputypes.TextureFormatRGBA8Unorm)
		if err != nil {
			return fmt.Errorf("cube map: %w", err)
		}
		s.faces = renderer.NewFramebuffer(c)
		s.patternProgram, err = renderer.MakeProgramFromShaderMaterial(c,
			scene.NewShaderMaterial("pattern", patternVertexShader, patternFragmentShader))
		if err != nil {
			return err
		}
		s.patternGeometry, err = renderer.MakeBufferGeometryFromGeometry(c, scene.PassGeometry())
		if err != nil {
			return err
		}
		s.patternUniforms = renderer.UniformValueMap{"color": math.NewVector3(1, 0, 0)}
	} else {
		s.cubeMap, err = renderer.MakeTexImage2DFromEquirectangularTexture(c, environment, cfg.CubeFaceSize)
		if err != nil {
			return fmt.Errorf("environment %q: %w", environment.Name, err)
		}
	}

	s.program, err = renderer.MakeProgramFromShaderMaterial(c,
		scene.NewShaderMaterial("sphere", sphereVertexShader, sphereFragmentShader))
	if err != nil {
		return err
	}
	s.geometry, err = renderer.MakeBufferGeometryFromGeometry(c, scene.IcosahedronGeometry(0.75, cfg.Detail))
	if err != nil {
		return err
	}

	worldToView, err := s.camera.ViewMatrix(nil)
	if err != nil {
		return err
	}
	s.uniforms = renderer.UniformValueMap{
		"localToWorld": s.localToWorld,
		"worldToView":  worldToView,
		"viewToScreen": s.viewToScreen,
		"cubeMap":      s.cubeMap,
	}
	return nil
}

// render draws one frame into target at elapsed time since the start.
func (s *cubemapScene) render(target renderer.VirtualFramebuffer, elapsed time.Duration) error {
	seconds := elapsed.Seconds()

	if s.animated {
		for i, face := range scene.CubeFaceTargets {
			if err := s.faces.Attach(gpu.AttachColor0, s.cubeMap, face, 0); err != nil {
				return err
			}
			s.patternUniforms["color"] = math.MakeColor3FromHSL(float64(i)/6+seconds*0.1, 0.5, 0.5, nil)
			if err := renderer.RenderBufferGeometry(s.faces, s.patternProgram, s.patternUniforms, s.patternGeometry); err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
		}
	}

	rotation := math.NewEuler(seconds*0.1, seconds*0.33, seconds*0.077, s.order)
	if _, err := math.MakeMatrix4RotationFromEuler(rotation, s.localToWorld); err != nil {
		return err
	}

	width, height := target.Size()
	if width == 0 || height == 0 {
		return nil
	}
	s.camera.ProjectionMatrix(float64(width)/float64(height), s.viewToScreen)

	if err := renderer.Clear(target, gpu.ClearColorBit|gpu.ClearDepthBit, s.clear); err != nil {
		return err
	}
	return renderer.RenderBufferGeometry(target, s.program, s.uniforms, s.geometry,
		renderer.WithDepthTestState(s.depth))
}

func (s *cubemapScene) destroy() {
	for _, g := range []*renderer.BufferGeometry{s.patternGeometry, s.geometry} {
		if g != nil {
			g.Destroy()
		}
	}
	for _, p := range []*renderer.Program{s.patternProgram, s.program} {
		if p != nil {
			p.Destroy()
		}
	}
	if s.faces != nil {
		s.faces.Destroy()
	}
	if s.cubeMap != nil {
		s.cubeMap.Destroy()
	}
}

// ── Capture ───────────────────────────────────────────────────────────────────

// captureTarget is an offscreen color and depth target the size of the
// surface, read back after a headless run.
type captureTarget struct {
	*renderer.Framebuffer
	color *renderer.TexImage2D
	depth *renderer.TexImage2D
}

func newCaptureTarget(c *renderer.Context, width, height int) (*captureTarget, error) {
	color, err := renderer.NewTexImage2D(c, width, height, gpu.TargetTexture2D, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}
	depth, err := renderer.NewTexImage2D(c, width, height, gpu.TargetTexture2D, gputypes.TextureFormatDepth24PlusStencil8)
	if err != nil {
		color.Destroy()
		return nil, err
	}

	t := &captureTarget{Framebuffer: renderer.NewFramebuffer(c), color: color, depth: depth}
	err = errors.Join(
		t.Attach(gpu.AttachColor0, color, gpu.TargetTexture2D, 0),
		t.Attach(gpu.AttachDepthStencil, depth, gpu.TargetTexture2D, 0),
	)
	if err == nil {
		err = t.CheckStatus()
	}
	if err != nil {
		t.destroy()
		return nil, err
	}
	return t, nil
}

// image reads the color target back. Rows are bottom first, as PixelData
// stores them.
func (t *captureTarget) image() (scene.PixelData, error) {
	width, height := t.Size()
	pixels, err := t.ReadPixels(0, 0, width, height)
	if err != nil {
		return scene.PixelData{}, err
	}
	return scene.PixelData{
		Width:  width,
		Height: height,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Pixels: pixels,
	}, nil
}

func (t *captureTarget) destroy() {
	t.Framebuffer.Destroy()
	t.color.Destroy()
	t.depth.Destroy()
}
