// Command demo renders an animated pattern into the six faces of a cube map
// and shows it on a rotating icosphere. With -headless it renders a fixed
// number of frames into an offscreen target and saves the last one.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"render-kernel/core"
	"render-kernel/internal/opengl"
	"render-kernel/internal/platform"
	"render-kernel/renderer"
	"render-kernel/scene"
)

// frameInterval is the simulated time step of a headless run.
const frameInterval = time.Second / 60

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file")
	headless := flag.Bool("headless", false, "render offscreen and save the last frame")
	frames := flag.Int("frames", 60, "frames to render in headless mode")
	out := flag.String("out", "cubemap.png", "output image for headless mode (.png, .bmp or .tiff)")
	flag.Parse()

	cfg := core.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = core.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	if level, ok := core.ParseLogLevel(cfg.LogLevel); ok {
		core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	if *headless {
		cfg.Window.Hidden = true
		cfg.Window.Resizable = false
		cfg.Window.VSync = false
	}
	window, err := platform.NewWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	device, err := opengl.NewDevice()
	if err != nil {
		return err
	}
	context, err := renderer.NewContext(device, window)
	if err != nil {
		return err
	}
	defer context.Destroy()

	var environment *scene.Texture
	if cfg.Render.Environment != "" {
		if environment, err = scene.LoadTexture(cfg.Render.Environment); err != nil {
			return err
		}
	}

	s, err := newCubemapScene(context, cfg.Render, environment)
	if err != nil {
		return err
	}
	defer s.destroy()

	if *headless {
		return capture(context, s, *frames, *out)
	}
	return loop(window, context, s)
}

// loop renders to the window until it is closed or Escape is pressed.
func loop(window *platform.Window, c *renderer.Context, s *cubemapScene) error {
	start := time.Now()
	title := window.Title
	counted, since := 0, start
	driver := renderer.NewFrameDriver(func(now time.Time, delta time.Duration) error {
		counted++
		if elapsed := now.Sub(since); elapsed >= time.Second {
			window.SetTitle(fmt.Sprintf("%s - %.0f fps", title, float64(counted)/elapsed.Seconds()))
			counted, since = 0, now
		}
		return s.render(c.CanvasFramebuffer(), now.Sub(start))
	})
	window.SetResizeCallback(func(width, height int) {
		driver.RequestResize(c.CanvasFramebuffer().Resize)
	})

	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(platform.KeyEscape) || window.IsKeyPressed(platform.KeyQ) {
			driver.Stop()
		}
		if err := driver.Tick(time.Now()); err != nil {
			if errors.Is(err, renderer.ErrDriverStopped) {
				break
			}
			return err
		}
		window.SwapBuffers()
	}

	core.Logger().Info("demo finished", "frames", driver.Frames(), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// capture renders frames at a fixed time step into an offscreen target and
// writes the last one to path.
func capture(c *renderer.Context, s *cubemapScene, frames int, path string) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}
	width, height := c.CanvasFramebuffer().Size()
	target, err := newCaptureTarget(c, width, height)
	if err != nil {
		return err
	}
	defer target.destroy()

	start := time.Unix(0, 0)
	driver := renderer.NewFrameDriver(func(now time.Time, delta time.Duration) error {
		return s.render(target.Framebuffer, now.Sub(start))
	})

	bar := progressbar.Default(int64(frames), "rendering")
	for i := 0; i < frames; i++ {
		if err := driver.Tick(start.Add(time.Duration(i) * frameInterval)); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	img, err := target.image()
	if err != nil {
		return err
	}
	if err := scene.SaveImage(path, img.Image()); err != nil {
		return err
	}
	core.Logger().Info("frame saved", "path", path, "width", width, "height", height, "frames", frames)
	return nil
}
