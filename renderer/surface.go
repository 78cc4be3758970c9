package renderer

import "fmt"

// Rect is an integer pixel rectangle with its origin at the bottom-left.
type Rect struct {
	X, Y          int
	Width, Height int
}

func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) Equals(o Rect) bool { return r == o }

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Rect) String() string {
	return fmt.Sprintf("Rect{%d,%d %dx%d}", r.X, r.Y, r.Width, r.Height)
}

// Surface is the native drawable behind the canvas framebuffer.
// platform.Window implements it.
type Surface interface {
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
}

// Size of the offscreen surface created when NewContext is given none.
const (
	DefaultSurfaceWidth  = 1280
	DefaultSurfaceHeight = 720
)

// OffscreenSurface is a Surface with a fixed size, for contexts that never
// present to a window.
type OffscreenSurface struct {
	Width  int
	Height int
}

func NewOffscreenSurface(width, height int) *OffscreenSurface {
	return &OffscreenSurface{Width: width, Height: height}
}

func (s *OffscreenSurface) FramebufferSize() (int, int) { return s.Width, s.Height }

// SetSize changes the reported size. Call CanvasFramebuffer.Resize afterwards.
func (s *OffscreenSurface) SetSize(width, height int) {
	s.Width, s.Height = width, height
}
