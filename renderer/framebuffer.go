package renderer

import (
	"fmt"
	"sort"

	"render-kernel/core"
	"render-kernel/gpu"
)

// VirtualFramebuffer is a draw target: either the canvas or an offscreen
// Framebuffer.
type VirtualFramebuffer interface {
	Context() *Context
	// Size returns the pixel size draws cover.
	Size() (width, height int)
	handle() gpu.Framebuffer
}

var (
	_ VirtualFramebuffer = (*CanvasFramebuffer)(nil)
	_ VirtualFramebuffer = (*Framebuffer)(nil)
)

// ── Canvas ────────────────────────────────────────────────────────────────────

// CanvasFramebuffer is the surface-backed default framebuffer. It is always
// complete and is resized by the surface, never by attachments.
type CanvasFramebuffer struct {
	context *Context
	surface Surface
	width   int
	height  int
}

func newCanvasFramebuffer(c *Context, s Surface) *CanvasFramebuffer {
	width, height := s.FramebufferSize()
	return &CanvasFramebuffer{context: c, surface: s, width: width, height: height}
}

func (f *CanvasFramebuffer) Context() *Context { return f.context }

func (f *CanvasFramebuffer) Surface() Surface { return f.surface }

func (f *CanvasFramebuffer) Size() (int, int) { return f.width, f.height }

func (f *CanvasFramebuffer) handle() gpu.Framebuffer { return 0 }

func (f *CanvasFramebuffer) AspectRatio() float64 {
	if f.height == 0 {
		return 1
	}
	return float64(f.width) / float64(f.height)
}

// Resize re-reads the surface size. When the canvas is the active target the
// cached viewport follows it. Call it between frames, never during one.
func (f *CanvasFramebuffer) Resize() {
	width, height := f.surface.FramebufferSize()
	if width <= 0 || height <= 0 {
		core.Logger().Warn("canvas resized to empty surface", "width", width, "height", height)
	}
	if width == f.width && height == f.height {
		return
	}
	f.width, f.height = width, height

	if f.context.framebuffer == VirtualFramebuffer(f) {
		f.context.SetViewport(NewRect(0, 0, width, height))
	}
	core.Logger().Debug("canvas resized", "width", width, "height", height)
}

// ── Offscreen ─────────────────────────────────────────────────────────────────

// Attachment binds one texture level, or one face of a cube texture, to an
// attachment point. It never owns the texture.
type Attachment struct {
	Point  gpu.AttachmentPoint
	Image  *TexImage2D
	Target gpu.TextureTarget
	Level  int
}

// Framebuffer is an offscreen draw target with explicitly attached images.
type Framebuffer struct {
	context     *Context
	id          gpu.Framebuffer
	attachments map[gpu.AttachmentPoint]Attachment
	destroyed   bool
}

func NewFramebuffer(c *Context) *Framebuffer {
	return &Framebuffer{
		context:     c,
		id:          c.device.CreateFramebuffer(),
		attachments: make(map[gpu.AttachmentPoint]Attachment),
	}
}

func (f *Framebuffer) Context() *Context { return f.context }

func (f *Framebuffer) handle() gpu.Framebuffer { return f.id }

// Size returns the size of the color0 image level, or of the lowest
// attachment point when nothing is bound to color0.
func (f *Framebuffer) Size() (int, int) {
	a, ok := f.attachments[gpu.AttachColor0]
	if !ok {
		attachments := f.Attachments()
		if len(attachments) == 0 {
			return 0, 0
		}
		a = attachments[0]
	}
	return a.Image.LevelSize(a.Level)
}

// Attach binds level of image at point, replacing whatever was there. For a
// cube image target selects the face; for a 2D image it must be
// TargetTexture2D.
func (f *Framebuffer) Attach(point gpu.AttachmentPoint, image *TexImage2D, target gpu.TextureTarget, level int) error {
	if f.destroyed {
		return fmt.Errorf("attach to framebuffer: %w", ErrDestroyed)
	}
	if image == nil || image.destroyed {
		return fmt.Errorf("attach %v: %w: no image", point, ErrInvalidTarget)
	}
	if image.context != f.context {
		return fmt.Errorf("attach %v: %w", point, ErrContextMismatch)
	}
	switch image.Target {
	case gpu.TargetCubeMap:
		if !target.IsCubeFace() {
			return fmt.Errorf("attach %v: %w: cube image needs a face target, got %v", point, ErrInvalidTarget, target)
		}
	case gpu.TargetTexture2D:
		if target != gpu.TargetTexture2D {
			return fmt.Errorf("attach %v: %w: 2D image cannot use %v", point, ErrInvalidTarget, target)
		}
	}
	if level < 0 || level >= image.MipCount {
		return fmt.Errorf("attach %v: %w: level %d outside %d levels", point, ErrInvalidTarget, level, image.MipCount)
	}

	f.context.bindFramebuffer(f)
	f.context.device.FramebufferTexture2D(point, target, image.handle, level)
	f.attachments[point] = Attachment{Point: point, Image: image, Target: target, Level: level}
	return nil
}

// Detach clears point. The image is left untouched.
func (f *Framebuffer) Detach(point gpu.AttachmentPoint) {
	a, ok := f.attachments[point]
	if !ok || f.destroyed {
		return
	}
	f.context.bindFramebuffer(f)
	f.context.device.FramebufferTexture2D(point, a.Target, 0, 0)
	delete(f.attachments, point)
}

func (f *Framebuffer) Attachment(point gpu.AttachmentPoint) (Attachment, bool) {
	a, ok := f.attachments[point]
	return a, ok
}

// Attachments returns the current bindings ordered by attachment point.
func (f *Framebuffer) Attachments() []Attachment {
	out := make([]Attachment, 0, len(f.attachments))
	for _, a := range f.attachments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Point < out[j].Point })
	return out
}

// CheckStatus binds the framebuffer and asks the device whether it is
// complete. Failures wrap gpu.ErrIncompleteFramebuffer.
func (f *Framebuffer) CheckStatus() error {
	if f.destroyed {
		return fmt.Errorf("check framebuffer: %w", ErrDestroyed)
	}
	f.context.bindFramebuffer(f)
	if err := f.context.device.CheckFramebufferStatus(); err != nil {
		core.Logger().Debug("framebuffer incomplete", "framebuffer", f.id, "error", err)
		return fmt.Errorf("framebuffer %d: %w", f.id, err)
	}
	return nil
}

// ReadPixels returns RGBA8 pixels of the color0 target, bottom row first.
func (f *Framebuffer) ReadPixels(x, y, width, height int) ([]byte, error) {
	if err := f.context.SetFramebuffer(f); err != nil {
		return nil, fmt.Errorf("read pixels: %w", err)
	}
	return f.context.device.ReadPixels(x, y, width, height), nil
}

// ReadFloatPixels returns RGBA float pixels of the color0 target. Values of
// float formats are not clamped.
func (f *Framebuffer) ReadFloatPixels(x, y, width, height int) ([]float32, error) {
	if err := f.context.SetFramebuffer(f); err != nil {
		return nil, fmt.Errorf("read pixels: %w", err)
	}
	return f.context.device.ReadFloatPixels(x, y, width, height), nil
}

// Destroy deletes the framebuffer object. Attached images stay alive.
func (f *Framebuffer) Destroy() {
	if f.destroyed {
		return
	}
	if f.context.framebuffer == VirtualFramebuffer(f) {
		f.context.bindFramebuffer(f.context.canvas)
	}
	f.context.device.DeleteFramebuffer(f.id)
	f.attachments = make(map[gpu.AttachmentPoint]Attachment)
	f.destroyed = true
}

// ── Clear ─────────────────────────────────────────────────────────────────────

// Clear makes fb the active target, applies state and clears the buffers
// selected by mask. Only the cluster values that changed reach the device.
// A destroyed framebuffer is rejected before any device call.
func Clear(fb VirtualFramebuffer, mask gpu.ClearMask, state ClearState) error {
	c := fb.Context()
	if err := c.SetFramebuffer(fb); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	c.SetClearState(state)
	c.device.Clear(mask)
	return nil
}
