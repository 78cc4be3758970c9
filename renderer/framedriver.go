package renderer

import (
	"fmt"
	"sync/atomic"
	"time"
)

// FrameFunc renders one frame. delta is zero on the first frame.
type FrameFunc func(now time.Time, delta time.Duration) error

// FrameDriver calls a FrameFunc once per external tick, typically a display
// refresh. It never schedules itself: the caller's loop decides when the
// next tick happens, and Stop is a flag the next Tick checks.
//
// Tick must be called from the goroutine that owns the rendering context.
// RequestResize and Stop may be called from anywhere.
type FrameDriver struct {
	frame  FrameFunc
	resize atomic.Pointer[func()]
	stop   atomic.Bool

	frames uint64
	last   time.Time
}

func NewFrameDriver(frame FrameFunc) *FrameDriver {
	return &FrameDriver{frame: frame}
}

// RequestResize schedules fn to run at the start of the next tick, before
// the frame. A later request replaces an earlier one that has not run yet.
func (d *FrameDriver) RequestResize(fn func()) {
	d.resize.Store(&fn)
}

// Tick runs pending resize work, then one frame. A frame error stops the
// driver.
func (d *FrameDriver) Tick(now time.Time) error {
	if d.stop.Load() {
		return ErrDriverStopped
	}

	if fn := d.resize.Swap(nil); fn != nil {
		(*fn)()
	}

	var delta time.Duration
	if d.frames > 0 {
		delta = now.Sub(d.last)
	}
	d.last = now

	err := d.frame(now, delta)
	d.frames++
	if err != nil {
		d.Stop()
		return fmt.Errorf("frame %d: %w", d.frames, err)
	}
	return nil
}

func (d *FrameDriver) Stop() { d.stop.Store(true) }

func (d *FrameDriver) Stopped() bool { return d.stop.Load() }

// Frames returns how many frames have run.
func (d *FrameDriver) Frames() uint64 { return d.frames }
