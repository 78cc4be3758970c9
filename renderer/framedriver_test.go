package renderer

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFrameDriverDelta(t *testing.T) {
	var deltas []time.Duration
	d := NewFrameDriver(func(now time.Time, delta time.Duration) error {
		deltas = append(deltas, delta)
		return nil
	})

	start := time.Unix(100, 0)
	for i := 0; i < 3; i++ {
		if err := d.Tick(start.Add(time.Duration(i) * 16 * time.Millisecond)); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}

	want := []time.Duration{0, 16 * time.Millisecond, 16 * time.Millisecond}
	for i := range want {
		if deltas[i] != want[i] {
			t.Errorf("frame %d: expected delta %v, got %v", i, want[i], deltas[i])
		}
	}
	if d.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", d.Frames())
	}
}

func TestFrameDriverResizeRunsBeforeFrame(t *testing.T) {
	var order []string
	d := NewFrameDriver(func(time.Time, time.Duration) error {
		order = append(order, "frame")
		return nil
	})

	d.RequestResize(func() { order = append(order, "first") })
	d.RequestResize(func() { order = append(order, "second") })
	if err := d.Tick(time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := d.Tick(time.Now()); err != nil {
		t.Fatal(err)
	}

	want := []string{"second", "frame", "frame"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected %v, got %v", want, order)
			break
		}
	}
}

func TestFrameDriverStop(t *testing.T) {
	calls := 0
	d := NewFrameDriver(func(time.Time, time.Duration) error {
		calls++
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.Stop()
	}()
	wg.Wait()

	if err := d.Tick(time.Now()); !errors.Is(err, ErrDriverStopped) {
		t.Errorf("expected ErrDriverStopped, got %v", err)
	}
	if calls != 0 || !d.Stopped() {
		t.Errorf("stopped driver ran a frame")
	}
}

func TestFrameDriverErrorStops(t *testing.T) {
	boom := errors.New("boom")
	d := NewFrameDriver(func(time.Time, time.Duration) error { return boom })

	if err := d.Tick(time.Now()); !errors.Is(err, boom) {
		t.Fatalf("expected frame error, got %v", err)
	}
	if !d.Stopped() {
		t.Error("a failed frame should stop the driver")
	}
	if err := d.Tick(time.Now()); !errors.Is(err, ErrDriverStopped) {
		t.Errorf("expected ErrDriverStopped, got %v", err)
	}
}
