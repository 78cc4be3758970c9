// Package renderer binds geometry, programs and textures to a gpu.Device and
// draws them into framebuffers. All pipeline state goes through a Context,
// which caches what it last applied and skips calls that would not change
// anything.
package renderer

import (
	"fmt"

	"render-kernel/core"
	"render-kernel/gpu"
)

// Context owns the connection to one gpu.Device and mirrors the pipeline
// state last applied to it.
//
// A Context is not safe for concurrent use. Every method, and every method
// of the resources created from it, must be called from the goroutine that
// owns the native GPU context.
type Context struct {
	device gpu.Device
	canvas *CanvasFramebuffer

	program     *Program
	framebuffer VirtualFramebuffer
	scissor     Rect
	viewport    Rect
	depthTest   DepthTestState
	blend       BlendState
	clear       ClearState
	mask        MaskState
}

// NewContext wraps device. A nil surface gets an offscreen surface of
// DefaultSurfaceWidth x DefaultSurfaceHeight.
//
// The cache starts out matching the state of a freshly created GL context,
// so construction issues no device calls.
func NewContext(device gpu.Device, surface Surface) (*Context, error) {
	if device == nil {
		return nil, fmt.Errorf("create context: %w", gpu.ErrUnavailable)
	}
	if surface == nil {
		surface = NewOffscreenSurface(DefaultSurfaceWidth, DefaultSurfaceHeight)
	}

	c := &Context{
		device:    device,
		depthTest: DepthTestState{Enabled: false, Func: gpu.CompareLess},
		blend:     NewBlendState(),
		clear:     NewClearState(),
		mask:      NewMaskState(),
	}
	c.canvas = newCanvasFramebuffer(c, surface)
	c.framebuffer = c.canvas

	width, height := c.canvas.Size()
	c.viewport = NewRect(0, 0, width, height)
	c.scissor = c.viewport

	core.Logger().Debug("rendering context created", "width", width, "height", height)
	return c, nil
}

func (c *Context) Device() gpu.Device { return c.device }

func (c *Context) CanvasFramebuffer() *CanvasFramebuffer { return c.canvas }

// DebugInfo queries the driver identification strings. It goes to the
// device every time, so keep it out of the frame loop.
func (c *Context) DebugInfo() gpu.Info {
	return c.device.Info()
}

// ── Program ───────────────────────────────────────────────────────────────────

func (c *Context) Program() *Program { return c.program }

// SetProgram binds p after validating it. Binding the current program is a
// no-op; nil unbinds.
func (c *Context) SetProgram(p *Program) error {
	if c.program == p {
		return nil
	}
	if p != nil {
		if p.context != c {
			return fmt.Errorf("bind program %q: %w", p.Name, ErrContextMismatch)
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	c.bindProgram(p)
	return nil
}

// bindProgram skips validation; callers have already validated p.
func (c *Context) bindProgram(p *Program) {
	if c.program == p {
		return
	}
	if p != nil {
		c.device.UseProgram(p.handle)
	} else {
		c.device.UseProgram(0)
	}
	c.program = p
}

// ── Framebuffer ───────────────────────────────────────────────────────────────

func (c *Context) Framebuffer() VirtualFramebuffer { return c.framebuffer }

// SetFramebuffer makes fb the draw target. nil selects the canvas. A
// framebuffer of another context, or one already destroyed, is rejected and
// the active target is left as it was.
func (c *Context) SetFramebuffer(fb VirtualFramebuffer) error {
	if fb == nil {
		fb = c.canvas
	}
	if err := c.checkFramebuffer(fb); err != nil {
		return err
	}
	c.bindFramebuffer(fb)
	return nil
}

func (c *Context) checkFramebuffer(fb VirtualFramebuffer) error {
	if fb.Context() != c {
		return fmt.Errorf("bind framebuffer: %w", ErrContextMismatch)
	}
	if f, ok := fb.(*Framebuffer); ok && f.destroyed {
		return fmt.Errorf("bind framebuffer %d: %w", f.id, ErrDestroyed)
	}
	return nil
}

// bindFramebuffer skips the checks; callers have already made them.
func (c *Context) bindFramebuffer(fb VirtualFramebuffer) {
	if c.framebuffer == fb {
		return
	}
	c.device.BindFramebuffer(fb.handle())
	c.framebuffer = fb
}

// ── Rectangles ────────────────────────────────────────────────────────────────

func (c *Context) Scissor() Rect { return c.scissor }

func (c *Context) SetScissor(r Rect) {
	if c.scissor.Equals(r) {
		return
	}
	c.device.Scissor(r.X, r.Y, r.Width, r.Height)
	c.scissor = r
}

func (c *Context) Viewport() Rect { return c.viewport }

func (c *Context) SetViewport(r Rect) {
	if c.viewport.Equals(r) {
		return
	}
	c.device.Viewport(r.X, r.Y, r.Width, r.Height)
	c.viewport = r
}

// ── State clusters ────────────────────────────────────────────────────────────

func (c *Context) DepthTestState() DepthTestState { return c.depthTest.Clone() }

func (c *Context) SetDepthTestState(s DepthTestState) {
	if c.depthTest.Equals(s) {
		return
	}
	c.device.SetCapability(gpu.CapabilityDepthTest, s.Enabled)
	c.device.DepthFunc(s.Func)
	c.depthTest = s
}

func (c *Context) BlendState() BlendState { return c.blend.Clone() }

func (c *Context) SetBlendState(s BlendState) {
	if c.blend.Equals(s) {
		return
	}
	c.device.SetCapability(gpu.CapabilityBlend, s.Enabled)
	c.device.BlendEquation(s.Equation)
	c.device.BlendFuncSeparate(s.SourceRGBFactor, s.DestRGBFactor, s.SourceAlphaFactor, s.DestAlphaFactor)
	c.blend = s
}

func (c *Context) ClearState() ClearState { return c.clear.Clone() }

func (c *Context) SetClearState(s ClearState) {
	if c.clear.Equals(s) {
		return
	}
	c.device.ClearColor(float32(s.Color.X), float32(s.Color.Y), float32(s.Color.Z), float32(s.Alpha))
	c.device.ClearDepth(s.Depth)
	c.device.ClearStencil(s.Stencil)
	c.clear = s
}

func (c *Context) MaskState() MaskState { return c.mask.Clone() }

func (c *Context) SetMaskState(s MaskState) {
	if c.mask.Equals(s) {
		return
	}
	c.device.ColorMask(s.Red, s.Green, s.Blue, s.Alpha)
	c.device.DepthMask(s.Depth)
	c.device.StencilMask(s.Stencil)
	c.mask = s
}

// Destroy releases the device when it supports it. Resources created from
// the context must be destroyed first.
func (c *Context) Destroy() {
	c.bindProgram(nil)
	c.bindFramebuffer(c.canvas)
	if r, ok := c.device.(interface{ Release() }); ok {
		r.Release()
	}
	core.Logger().Debug("rendering context destroyed")
}
