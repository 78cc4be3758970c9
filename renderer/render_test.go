package renderer

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"render-kernel/gpu"
	"render-kernel/gpu/gputest"
	"render-kernel/math"
	"render-kernel/scene"
)

func TestRenderMissingUniformMakesNoCalls(t *testing.T) {
	c, d := newTestContext(t, 8, 8)
	p := newColorProgram(t, c, d)
	g := newPassGeometry(t, c)
	fb := NewFramebuffer(c)
	d.Reset()

	err := RenderBufferGeometry(fb, p, UniformValueMap{}, g, WithDepthTestState(NewDepthTestState()))

	var missing *MissingUniformError
	if !errors.As(err, &missing) || missing.Name != "color" {
		t.Fatalf("expected MissingUniformError for color, got %v", err)
	}
	if n := d.TotalCalls(); n != 0 {
		t.Errorf("failed draw reached the device: %v", d.Log())
	}
	if c.Framebuffer() != VirtualFramebuffer(c.CanvasFramebuffer()) || c.DepthTestState().Enabled {
		t.Errorf("failed draw changed the context cache")
	}
}

func TestRenderUniformTypeMismatch(t *testing.T) {
	c, d := newTestContext(t, 8, 8)
	p := newColorProgram(t, c, d)
	g := newPassGeometry(t, c)
	d.Reset()

	err := RenderBufferGeometry(c.CanvasFramebuffer(), p, UniformValueMap{"color": 1.0}, g)

	var typeErr *UniformTypeError
	if !errors.As(err, &typeErr) || typeErr.Want != gpu.UniformVec3 {
		t.Fatalf("expected UniformTypeError, got %v", err)
	}
	if n := d.TotalCalls(); n != 0 {
		t.Errorf("failed draw reached the device: %v", d.Log())
	}
}

func TestRenderMissingAttribute(t *testing.T) {
	c, d := newTestContext(t, 8, 8)
	p := newColorProgram(t, c, d)

	geometry := scene.NewGeometry().SetAttribute(scene.AttributeUV, scene.NewAttribute(2, []float32{0, 0, 1, 0, 1, 1}))
	g, err := MakeBufferGeometryFromGeometry(c, geometry)
	if err != nil {
		t.Fatal(err)
	}
	d.Reset()

	err = RenderBufferGeometry(c.CanvasFramebuffer(), p, UniformValueMap{"color": math.Vector3{}}, g)

	var missing *MissingAttributeError
	if !errors.As(err, &missing) || missing.Name != scene.AttributePosition {
		t.Fatalf("expected MissingAttributeError, got %v", err)
	}
	if n := d.TotalCalls(); n != 0 {
		t.Errorf("failed draw reached the device: %v", d.Log())
	}
}

func TestRenderInvalidProgram(t *testing.T) {
	c, d := newTestContext(t, 8, 8)
	p := newColorProgram(t, c, d)
	g := newPassGeometry(t, c)
	d.InvalidateProgram(p.handle)
	d.Reset()

	err := RenderBufferGeometry(c.CanvasFramebuffer(), p, UniformValueMap{"color": math.Vector3{}}, g)
	if !errors.Is(err, gpu.ErrInvalidProgram) {
		t.Fatalf("expected ErrInvalidProgram, got %v", err)
	}
	if d.Draws() != 0 || d.Calls("UseProgram") != 0 {
		t.Errorf("invalid program was used: %v", d.Log())
	}
}

func TestRenderDrawsIntoCanvas(t *testing.T) {
	c, d := newTestContext(t, 4, 4)
	p := newColorProgram(t, c, d)
	g := newPassGeometry(t, c)

	err := RenderBufferGeometry(c.CanvasFramebuffer(), p, UniformValueMap{"color": math.NewVector3(1, 0, 0)}, g)
	if err != nil {
		t.Fatalf("RenderBufferGeometry: %v", err)
	}

	if d.Calls("DrawElements") != 1 || d.Calls("BindIndexBuffer") != 1 {
		t.Errorf("expected one indexed draw, got %v", d.Log())
	}
	px := d.ReadPixels(0, 0, 1, 1)
	if px[0] != 255 || px[1] != 0 || px[3] != 255 {
		t.Errorf("expected red, got %v", px)
	}
}

func TestRenderRepeatedDrawSkipsState(t *testing.T) {
	c, d := newTestContext(t, 4, 4)
	p := newColorProgram(t, c, d)
	g := newPassGeometry(t, c)
	uniforms := UniformValueMap{"color": math.NewVector3(0, 1, 0)}
	depth := WithDepthTestState(NewDepthTestState())
	blend := WithBlendState(NormalBlending())

	if err := RenderBufferGeometry(c.CanvasFramebuffer(), p, uniforms, g, depth, blend); err != nil {
		t.Fatal(err)
	}
	d.Reset()

	if err := RenderBufferGeometry(c.CanvasFramebuffer(), p, uniforms, g, depth, blend); err != nil {
		t.Fatal(err)
	}
	for _, method := range []string{"ValidateProgram", "UseProgram", "BindFramebuffer", "Viewport", "SetCapability", "DepthFunc", "BlendFuncSeparate"} {
		if n := d.Calls(method); n != 0 {
			t.Errorf("%s called %d times on an unchanged draw", method, n)
		}
	}
	if d.Calls("DrawElements") != 1 || d.Calls("UniformFloats") != 1 {
		t.Errorf("expected the uniform upload and the draw, got %v", d.Log())
	}
}

func TestRenderNonIndexedGeometry(t *testing.T) {
	c, d := newTestContext(t, 4, 4)
	p := newColorProgram(t, c, d)

	g, err := MakeBufferGeometryFromGeometry(c, scene.IcosahedronGeometry(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if err := RenderBufferGeometry(c.CanvasFramebuffer(), p, UniformValueMap{"color": math.Vector3{}}, g); err != nil {
		t.Fatal(err)
	}
	if d.Calls("DrawArrays") != 1 || d.Calls("BindIndexBuffer") != 0 {
		t.Errorf("expected one array draw, got %v", d.Log())
	}
}

const samplerFragmentShader = `
#version 410 core
uniform samplerCube environment;
uniform sampler2D albedo;
uniform mat4 localToWorld;
uniform float exposure;
uniform bool flipY;
out vec4 fragColor;
void main() {
    fragColor = vec4(1.0);
}
`

func TestRenderBindsTexturesAndUniforms(t *testing.T) {
	c, d := newTestContext(t, 4, 4)
	p, err := MakeProgramFromShaderMaterial(c, scene.NewShaderMaterial("sampler", colorVertexShader, samplerFragmentShader))
	if err != nil {
		t.Fatal(err)
	}
	g := newPassGeometry(t, c)

	cube, err := NewTexImage2D(c, 2, 2, gpu.TargetCubeMap, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	albedo, err := MakeTexImage2DFromTexture(c, scene.NewSolidTexture("white", 255, 255, 255, 255))
	if err != nil {
		t.Fatal(err)
	}

	uniforms := UniformValueMap{
		"environment":  cube,
		"albedo":       albedo,
		"localToWorld": math.MakeMatrix4Translation(math.NewVector3(1, 2, 3), nil),
		"exposure":     float32(1.5),
		"flipY":        true,
	}
	if err := RenderBufferGeometry(c.CanvasFramebuffer(), p, uniforms, g); err != nil {
		t.Fatalf("RenderBufferGeometry: %v", err)
	}

	values := d.UniformValues(p.handle)
	// units follow sorted uniform names: albedo, environment
	if values.Float("albedo") != 0 || values.Float("environment") != 1 {
		t.Errorf("unexpected texture units: albedo=%v environment=%v", values.Float("albedo"), values.Float("environment"))
	}
	if m := values["localToWorld"]; len(m) != 16 || m[12] != 1 || m[14] != 3 {
		t.Errorf("matrix not uploaded column-major: %v", m)
	}
	if values.Float("exposure") != 1.5 || values.Float("flipY") != 1 {
		t.Errorf("scalars not uploaded: %v", values)
	}
	if d.Calls("BindTexture") != 2 {
		t.Errorf("expected 2 texture binds, got %d", d.Calls("BindTexture"))
	}

	// a 2D image where a cube sampler is declared is rejected
	uniforms["environment"] = albedo
	var typeErr *UniformTypeError
	if err := RenderBufferGeometry(c.CanvasFramebuffer(), p, uniforms, g); !errors.As(err, &typeErr) {
		t.Errorf("expected UniformTypeError, got %v", err)
	}
}

// Six pattern draws into the faces of one cube texture; each face keeps
// only the color drawn for its own index.
func TestRenderCubeMapFaces(t *testing.T) {
	const size = 4
	c, d := newTestContext(t, 8, 8)
	p := newColorProgram(t, c, d)
	g := newPassGeometry(t, c)

	cube, err := NewTexImage2D(c, size, size, gpu.TargetCubeMap, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	fb := NewFramebuffer(c)

	colors := make([]*math.Vector3, len(scene.CubeFaceTargets))
	uniforms := UniformValueMap{}
	for i, target := range scene.CubeFaceTargets {
		if err := fb.Attach(gpu.AttachColor0, cube, target, 0); err != nil {
			t.Fatalf("attach face %d: %v", i, err)
		}
		colors[i] = math.MakeColor3FromHSL(float64(i)/6, 0.5, 0.5, nil)
		uniforms["color"] = colors[i]
		if err := RenderBufferGeometry(fb, p, uniforms, g); err != nil {
			t.Fatalf("render face %d: %v", i, err)
		}
	}

	if c.Viewport() != NewRect(0, 0, size, size) {
		t.Errorf("viewport should match the face size, got %v", c.Viewport())
	}

	if err := fb.Attach(gpu.AttachColor0, cube, scene.CubeFaceTargets[0], 0); err != nil {
		t.Fatal(err)
	}
	pixels, err := fb.ReadPixels(0, 0, size, size)
	if err != nil {
		t.Fatal(err)
	}
	want := [4]byte{unorm8(colors[0].X), unorm8(colors[0].Y), unorm8(colors[0].Z), 255}
	for i := 0; i < size*size; i++ {
		got := [4]byte{pixels[i*4], pixels[i*4+1], pixels[i*4+2], pixels[i*4+3]}
		if got != want {
			t.Fatalf("face 0 pixel %d: expected %v, got %v", i, want, got)
		}
	}

	for i, target := range scene.CubeFaceTargets {
		img, ok := d.TextureImage(cube.handle, target, 0)
		if !ok {
			t.Fatalf("face %d has no storage", i)
		}
		got := img.At(size-1, size-1)
		if unorm8(float64(got[0])) != unorm8(colors[i].X) || unorm8(float64(got[1])) != unorm8(colors[i].Y) {
			t.Errorf("face %d: expected %v, got %v", i, colors[i], got)
		}
	}

	// drawing to the canvas afterwards restores its viewport
	if err := RenderBufferGeometry(c.CanvasFramebuffer(), p, uniforms, g); err != nil {
		t.Fatal(err)
	}
	if c.Viewport() != NewRect(0, 0, 8, 8) {
		t.Errorf("expected canvas viewport, got %v", c.Viewport())
	}
}

func TestRenderEmptyTargetMakesNoCalls(t *testing.T) {
	c, d := newTestContext(t, 8, 8)
	p := newColorProgram(t, c, d)
	g := newPassGeometry(t, c)
	fb := NewFramebuffer(c)
	d.Reset()

	err := RenderBufferGeometry(fb, p, UniformValueMap{"color": math.Vector3{}}, g)
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if n := d.TotalCalls(); n != 0 {
		t.Errorf("draw into an empty framebuffer reached the device: %v", d.Log())
	}
	if c.Viewport() != NewRect(0, 0, 8, 8) {
		t.Errorf("viewport changed to %v", c.Viewport())
	}
}

func TestRenderRejectsDestroyedFramebuffer(t *testing.T) {
	c, d := newTestContext(t, 8, 8)
	p := newColorProgram(t, c, d)
	g := newPassGeometry(t, c)
	fb := NewFramebuffer(c)
	fb.Destroy()
	d.Reset()

	err := RenderBufferGeometry(fb, p, UniformValueMap{"color": math.Vector3{}}, g)
	if !errors.Is(err, ErrDestroyed) {
		t.Fatalf("expected ErrDestroyed, got %v", err)
	}
	if n := d.TotalCalls(); n != 0 {
		t.Errorf("expected no device calls, got %v", d.Log())
	}
}

// Shaders whose interface cannot be fully bound fail at link time instead
// of drawing with some inputs unset.
func TestProgramRejectsUnsupportedInterface(t *testing.T) {
	tests := []struct {
		name     string
		vertex   string
		fragment string
	}{
		{"mat2 uniform", colorVertexShader, `
#version 410 core
uniform mat2 rotation;
out vec4 fragColor;
void main() {
    fragColor = vec4(rotation[0], 0.0, 1.0);
}
`},
		{"array uniform", colorVertexShader, `
#version 410 core
uniform vec3 lights[4];
out vec4 fragColor;
void main() {
    fragColor = vec4(lights[0], 1.0);
}
`},
		{"integer vertex input", `
#version 410 core
in ivec4 joints;
void main() {
    gl_Position = vec4(joints);
}
`, colorFragmentShader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, d := newTestContext(t, 4, 4)
			_, err := MakeProgramFromShaderMaterial(c, scene.NewShaderMaterial(tt.name, tt.vertex, tt.fragment))
			if !errors.Is(err, gpu.ErrInvalidProgram) {
				t.Fatalf("expected ErrInvalidProgram, got %v", err)
			}
			if programs, _, _, _ := d.Live(); programs != 0 {
				t.Errorf("rejected program left %d programs alive", programs)
			}
		})
	}
}

func TestRenderRejectsForeignFramebuffer(t *testing.T) {
	c1, d1 := newTestContext(t, 4, 4)
	c2, _ := newTestContext(t, 4, 4)
	p := newColorProgram(t, c1, d1)
	g := newPassGeometry(t, c1)

	err := RenderBufferGeometry(c2.CanvasFramebuffer(), p, UniformValueMap{"color": math.Vector3{}}, g)
	if !errors.Is(err, ErrContextMismatch) {
		t.Errorf("expected ErrContextMismatch, got %v", err)
	}
}

func TestEquirectangularProjection(t *testing.T) {
	c, d := newTestContext(t, 8, 8)
	d.RegisterShader(equirectangularFragmentShader, func(u gputest.Uniforms) [4]float32 {
		return [4]float32{u.Float("faceIndex") / 5, 0, 0, 1}
	})

	source := scene.NewSolidTexture("env", 255, 0, 0, 255)
	cube, err := MakeTexImage2DFromEquirectangularTexture(c, source, 4)
	if err != nil {
		t.Fatalf("MakeTexImage2DFromEquirectangularTexture: %v", err)
	}
	if cube.Target != gpu.TargetCubeMap || cube.Width != 4 {
		t.Fatalf("unexpected cube %+v", cube)
	}

	for i, target := range scene.CubeFaceTargets {
		img, ok := d.TextureImage(cube.handle, target, 0)
		if !ok {
			t.Fatalf("face %d has no storage", i)
		}
		if got, want := unorm8(float64(img.At(0, 0)[0])), unorm8(float64(i)/5); got != want {
			t.Errorf("face %d: expected red %d, got %d", i, want, got)
		}
	}

	programs, buffers, textures, framebuffers := d.Live()
	if programs != 0 || buffers != 0 || textures != 1 || framebuffers != 0 {
		t.Errorf("helpers leaked: programs=%d buffers=%d textures=%d framebuffers=%d",
			programs, buffers, textures, framebuffers)
	}
	if c.Framebuffer() != VirtualFramebuffer(c.CanvasFramebuffer()) || c.Program() != nil {
		t.Errorf("destroyed helpers are still bound")
	}
}

// A float source projects into a float cube, and values above 1 survive the
// draw and the read-back.
func TestEquirectangularProjectionKeepsHDR(t *testing.T) {
	c, d := newTestContext(t, 8, 8)
	d.RegisterShader(equirectangularFragmentShader, func(u gputest.Uniforms) [4]float32 {
		return [4]float32{4.5 + u.Float("faceIndex"), 0.25, 0, 1}
	})

	source := scene.NewTexture("hdr", scene.PixelData{
		Width:  2,
		Height: 1,
		Format: gputypes.TextureFormatRGBA32Float,
		Floats: []float32{8, 4, 2, 1, 16, 0, 0, 1},
	})
	cube, err := MakeTexImage2DFromEquirectangularTexture(c, source, 2)
	if err != nil {
		t.Fatalf("MakeTexImage2DFromEquirectangularTexture: %v", err)
	}
	if cube.Format != gputypes.TextureFormatRGBA32Float {
		t.Fatalf("expected a float cube, got %v", cube.Format)
	}
	if d.Calls("TexImage2DFloat") == 0 {
		t.Errorf("float source was not uploaded as floats: %v", d.Log())
	}

	fb := NewFramebuffer(c)
	for i, target := range scene.CubeFaceTargets {
		if err := fb.Attach(gpu.AttachColor0, cube, target, 0); err != nil {
			t.Fatal(err)
		}
		px, err := fb.ReadFloatPixels(0, 0, 2, 2)
		if err != nil {
			t.Fatal(err)
		}
		want := float32(4.5 + float64(i))
		for p := 0; p < 4; p++ {
			if px[p*4] != want || px[p*4+1] != 0.25 || px[p*4+3] != 1 {
				t.Fatalf("face %d pixel %d: expected red %v, got %v", i, p, want, px[p*4:p*4+4])
			}
		}
	}
}
