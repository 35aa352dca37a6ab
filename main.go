package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"globe3d/internal/asset"
	"globe3d/internal/config"
	"globe3d/internal/control"
	"globe3d/internal/frame"
	"globe3d/internal/gfx"
	"globe3d/internal/globe"
	"globe3d/internal/input"
	"globe3d/internal/overlay"
	"globe3d/internal/progress"
	"globe3d/internal/scene"
	"globe3d/internal/screenshot"
)

// spinner turns per second
const spinRate = 1.5

func main() {
	runtime.LockOSThread()

	configPath := flag.String("config", "", "path to JSON config file")
	flagWidth := flag.Int("width", 0, "window width")
	flagHeight := flag.Int("height", 0, "window height")
	flagAssets := flag.String("assets", "", "texture directory")
	flagWorkers := flag.Int("workers", 0, "texture decode workers")
	flagNoVSync := flag.Bool("novsync", false, "disable vsync")
	flagShots := flag.String("screenshots", "", "screenshot directory")
	flag.Parse()

	var cfg config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}
	cfg.Resolve(config.Flags{
		Width:         *flagWidth,
		Height:        *flagHeight,
		AssetDir:      *flagAssets,
		Workers:       *flagWorkers,
		NoVSync:       *flagNoVSync,
		ScreenshotDir: *flagShots,
	})

	if err := glfw.Init(); err != nil {
		log.Fatalln("failed to initialize glfw:", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		log.Fatalln("failed to create window:", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalln("failed to initialize gl:", err)
	}

	if *cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	renderer, err := gfx.NewRenderer()
	if err != nil {
		log.Fatalln(err)
	}

	events := input.NewDispatcher()
	unbind := input.BindWindow(window, events, cfg.WheelStep)
	defer unbind()

	sched := frame.NewScheduler()
	defer sched.Stop()

	loader := asset.NewLoader(cfg.Workers, asset.WithMaxSize(cfg.MaxTextureSize))

	// Loading overlay state, driven by the progress tracker.
	var loading progress.State
	onProgress := func(s progress.State) {
		loading = s
		if s.Visible {
			window.SetTitle(fmt.Sprintf("%s | Loading %d%%", cfg.Title, s.Percent))
		} else {
			renderer.HideOverlay()
			window.SetTitle(cfg.Title)
			log.Println("[globe] textures ready")
		}
	}

	width, height := window.GetSize()
	g := globe.Mount(renderer, events, sched, loader, control.Viewport{Width: width, Height: height}, globe.Settings{
		DragFactor:    cfg.DragFactor,
		SlowingFactor: cfg.SlowingFactor,
		IdleSpin:      cfg.IdleSpin,
		Zoom: control.ZoomSettings{
			Speed:     cfg.ZoomSpeed,
			Min:       cfg.MinZoom,
			Max:       cfg.MaxZoom,
			Smoothing: cfg.ZoomSmoothing,
			Epsilon:   cfg.ZoomEpsilon,
		},
		SettleDelay: cfg.SettleDelay(),
		Textures: []asset.Request{
			{Slot: scene.SlotMap, Path: cfg.SurfaceMap},
			{Slot: scene.SlotBump, Path: cfg.BumpMap},
			{Slot: scene.SlotClouds, Path: cfg.CloudMap},
			{Slot: scene.SlotStars, Path: cfg.StarMap},
		},
		OnProgress: onProgress,
	})
	defer g.Teardown()
	fbw, fbh := window.GetFramebufferSize()
	g.Resize(width, height, fbw, fbh)

	overlayTask := sched.Request("overlay", func(now time.Duration) bool {
		if !loading.Visible {
			return false
		}
		w, h := renderer.Size()
		renderer.SetOverlay(overlay.Compose(w, h, loading.Percent, overlay.SpinnerAngle(now, spinRate)))
		return true
	})
	defer sched.Cancel(overlayTask)

	capture := false
	removeKeys := events.Listen(input.KeyDown, func(e input.Event) {
		switch glfw.Key(e.Key) {
		case glfw.KeyEscape:
			window.SetShouldClose(true)
		case glfw.KeyF12:
			capture = true
		}
	})
	defer removeKeys()

	lastFpsTime := glfw.GetTime()
	frameCount := 0

	for !window.ShouldClose() {
		currentTime := glfw.GetTime()

		// FPS Counter Update (every 1 second)
		frameCount++
		if currentTime-lastFpsTime >= 1.0 {
			if !loading.Visible {
				window.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Title, frameCount))
			}
			frameCount = 0
			lastFpsTime = currentTime
		}

		sched.Tick(time.Duration(currentTime * float64(time.Second)))

		// The back buffer is undefined after a swap, so read it first.
		if capture {
			capture = false
			saveScreenshot(renderer, cfg.ScreenshotDir)
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func saveScreenshot(r *gfx.Renderer, dir string) {
	img := r.ReadPixels()
	screenshot.FlipRows(img)
	path, err := screenshot.Save(dir, img, time.Now())
	if err != nil {
		log.Println("[gfx]", err)
		return
	}
	log.Println("[gfx] saved", path)
}
