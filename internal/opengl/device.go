// Package opengl implements gpu.Device on an OpenGL 4.1 core context.
package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-kernel/core"
	"render-kernel/gpu"
)

// Device issues GL calls on the context current on the calling thread.
// Core profile draws need a vertex array object; one is bound for the
// lifetime of the device and vertex inputs are respecified per draw.
type Device struct {
	vao uint32

	// vertex inputs enabled since the last draw
	enabled []uint32
}

var _ gpu.Device = (*Device)(nil)

// NewDevice loads the GL entry points. The context must already be current,
// usually through platform.NewWindow.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w: %w", gpu.ErrUnavailable, err)
	}

	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	// R8 rows are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)

	info := d.Info()
	core.Logger().Info("OpenGL device ready",
		"version", info.Version,
		"renderer", info.Renderer,
		"vendor", info.Vendor,
		"glsl", info.ShadingLanguageVersion)
	return d, nil
}

// Release deletes the vertex array object. Other objects belong to their
// owners and are deleted through the Delete methods.
func (d *Device) Release() {
	if d.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func (d *Device) Info() gpu.Info {
	return gpu.Info{
		Vendor:                 gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:               gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:                gl.GoStr(gl.GetString(gl.VERSION)),
		ShadingLanguageVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}

// ── Pipeline state ────────────────────────────────────────────────────────────

func (d *Device) UseProgram(p gpu.Program) { gl.UseProgram(uint32(p)) }

func (d *Device) BindFramebuffer(fb gpu.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) Scissor(x, y, width, height int) {
	gl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) SetCapability(c gpu.Capability, enabled bool) {
	if enabled {
		gl.Enable(lookup(capabilities, c, "capability"))
	} else {
		gl.Disable(lookup(capabilities, c, "capability"))
	}
}

func (d *Device) DepthFunc(f gpu.CompareFunc) {
	gl.DepthFunc(lookup(compareFuncs, f, "compare function"))
}

func (d *Device) BlendEquation(eq gpu.BlendEquation) {
	gl.BlendEquation(lookup(blendEquations, eq, "blend equation"))
}

func (d *Device) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gpu.BlendFactor) {
	gl.BlendFuncSeparate(
		lookup(blendFactors, srcRGB, "blend factor"),
		lookup(blendFactors, dstRGB, "blend factor"),
		lookup(blendFactors, srcAlpha, "blend factor"),
		lookup(blendFactors, dstAlpha, "blend factor"),
	)
}

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) ClearDepth(depth float64) { gl.ClearDepth(depth) }

func (d *Device) ClearStencil(s int) { gl.ClearStencil(int32(s)) }

func (d *Device) ColorMask(r, g, b, a bool) { gl.ColorMask(r, g, b, a) }

func (d *Device) DepthMask(enabled bool) { gl.DepthMask(enabled) }

func (d *Device) StencilMask(mask uint32) { gl.StencilMask(mask) }

func (d *Device) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ClearColorBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.ClearDepthBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&gpu.ClearStencilBit != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
}

// ── Buffers ───────────────────────────────────────────────────────────────────

func (d *Device) CreateVertexBuffer(data []float32) gpu.Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return gpu.Buffer(id)
}

func (d *Device) CreateIndexBuffer(indices []uint32) gpu.Buffer {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, id)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}
	return gpu.Buffer(id)
}

// VertexAttribPointer sources the vertex input at location from b, tightly
// packed. The input stays enabled until the next draw completes.
func (d *Device) VertexAttribPointer(location int32, b gpu.Buffer, components int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.EnableVertexAttribArray(uint32(location))
	gl.VertexAttribPointer(uint32(location), int32(components), gl.FLOAT, false, 0, gl.PtrOffset(0))
	d.enabled = append(d.enabled, uint32(location))
}

func (d *Device) BindIndexBuffer(b gpu.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

// ── Draw ──────────────────────────────────────────────────────────────────────

func (d *Device) DrawElements(mode gpu.PrimitiveMode, count int) {
	gl.DrawElements(lookup(primitiveModes, mode, "primitive mode"), int32(count), gl.UNSIGNED_INT, gl.PtrOffset(0))
	d.disableInputs()
}

func (d *Device) DrawArrays(mode gpu.PrimitiveMode, first, count int) {
	gl.DrawArrays(lookup(primitiveModes, mode, "primitive mode"), int32(first), int32(count))
	d.disableInputs()
}

// disableInputs keeps inputs of one draw from leaking into the next, which
// may use a program with fewer of them.
func (d *Device) disableInputs() {
	for _, location := range d.enabled {
		gl.DisableVertexAttribArray(location)
	}
	d.enabled = d.enabled[:0]
}
