package renderer

import (
	stdmath "math"
	"testing"

	"render-kernel/gpu/gputest"
	"render-kernel/scene"
)

const colorVertexShader = `
#version 410 core
in vec3 position;
void main() {
    gl_Position = vec4(position, 1.0);
}
`

const colorFragmentShader = `
#version 410 core
uniform vec3 color;
out vec4 fragColor;
void main() {
    fragColor = vec4(color, 1.0);
}
`

func newTestContext(t *testing.T, width, height int) (*Context, *gputest.Device) {
	t.Helper()
	d := gputest.NewDevice(width, height)
	c, err := NewContext(d, NewOffscreenSurface(width, height))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return c, d
}

// newColorProgram returns a program that fills its target with the "color"
// uniform.
func newColorProgram(t *testing.T, c *Context, d *gputest.Device) *Program {
	t.Helper()
	d.RegisterShader(colorFragmentShader, func(u gputest.Uniforms) [4]float32 {
		rgb := u["color"]
		if len(rgb) < 3 {
			return [4]float32{}
		}
		return [4]float32{rgb[0], rgb[1], rgb[2], 1}
	})
	p, err := MakeProgramFromShaderMaterial(c, scene.NewShaderMaterial("color", colorVertexShader, colorFragmentShader))
	if err != nil {
		t.Fatalf("MakeProgramFromShaderMaterial: %v", err)
	}
	return p
}

func newPassGeometry(t *testing.T, c *Context) *BufferGeometry {
	t.Helper()
	g, err := MakeBufferGeometryFromGeometry(c, scene.PassGeometry())
	if err != nil {
		t.Fatalf("MakeBufferGeometryFromGeometry: %v", err)
	}
	return g
}

func unorm8(v float64) byte {
	return byte(stdmath.Round(float64(float32(v)) * 255))
}
