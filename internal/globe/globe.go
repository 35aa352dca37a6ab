// Package globe wires input, animation and rendering into one mountable
// component.
package globe

import (
	"context"
	"image"
	"log"
	"time"

	"globe3d/internal/asset"
	"globe3d/internal/control"
	"globe3d/internal/frame"
	"globe3d/internal/input"
	"globe3d/internal/progress"
	"globe3d/internal/scene"
)

// Renderer is the scene graph backend the globe draws through.
type Renderer interface {
	UploadTexture(slot scene.TextureSlot, img *image.NRGBA) error
	Resize(width, height int)
	Render(s *scene.Scene)
	Release()
}

// AssetLoader produces one Result per request on the returned channel.
type AssetLoader interface {
	Load(ctx context.Context, requests []asset.Request) <-chan asset.Result
}

// Settings tune the globe. Zero values are replaced by DefaultSettings.
type Settings struct {
	DragFactor    float64
	SlowingFactor float64
	IdleSpin      float64
	Zoom          control.ZoomSettings
	SettleDelay   time.Duration
	Textures      []asset.Request
	OnProgress    func(progress.State)
}

// DefaultSettings returns the stock interaction tuning with no textures.
func DefaultSettings() Settings {
	return Settings{
		DragFactor:    control.DefaultDragFactor,
		SlowingFactor: 0.98,
		IdleSpin:      0.0005,
		Zoom:          control.DefaultZoomSettings(),
		SettleDelay:   progress.DefaultSettleDelay,
	}
}

// Session owns the mutable state of one mounted globe.
type Session struct {
	Scene    *scene.Scene
	Viewport control.Viewport
	Rotation control.RotationState
	Camera   *control.CameraState
	Progress *progress.Tracker
}

// Globe is a mounted globe. Its methods run on the frame thread.
type Globe struct {
	session  *Session
	renderer Renderer
	events   *input.Dispatcher
	sched    *frame.Scheduler

	rotation *control.RotationController
	zoom     *control.ZoomController
	loop     *RenderLoop

	loopTask   frame.Handle
	assetTask  frame.Handle
	cancelLoad context.CancelFunc
	assets     <-chan asset.Result

	listeners []func()
	drag      []func()
	torn      bool
}

// Mount builds the scene, starts the render loop and asset loading, and
// attaches the input listeners. A nil renderer means there is nothing to
// draw into; Mount then does nothing and returns nil.
func Mount(r Renderer, events *input.Dispatcher, sched *frame.Scheduler, loader AssetLoader, vp control.Viewport, settings Settings) *Globe {
	if r == nil {
		log.Println("[globe] no render surface, skipping setup")
		return nil
	}
	settings = withDefaults(settings)

	sess := &Session{
		Scene:    scene.Build(vp.Width, vp.Height),
		Viewport: vp,
	}
	sess.Camera = control.NewCameraState(sess.Scene.Camera)
	total := len(settings.Textures)
	if total == 0 {
		total = progress.DefaultTotal
	}
	sess.Progress = progress.NewTracker(sched,
		progress.WithTotal(total),
		progress.WithSettleDelay(settings.SettleDelay),
		progress.WithListener(settings.OnProgress),
	)

	g := &Globe{
		session:  sess,
		renderer: r,
		events:   events,
		sched:    sched,
	}
	g.rotation = control.NewRotationController(&sess.Rotation, &sess.Viewport, settings.DragFactor)
	g.zoom = control.NewZoomController(sess.Camera, &sess.Viewport, sched, settings.Zoom)
	g.loop = NewRenderLoop(sess.Scene, &sess.Rotation, settings.SlowingFactor, settings.IdleSpin, func() {
		r.Render(sess.Scene)
	})

	if !vp.Empty() {
		r.Resize(vp.Width, vp.Height)
	}

	g.listeners = append(g.listeners,
		events.Listen(input.PointerDown, g.onPointerDown),
		events.Listen(input.Wheel, g.onWheel),
		events.Listen(input.Resize, g.onResize),
	)

	g.loopTask = sched.Request("render", g.loop.task)

	if loader != nil && len(settings.Textures) > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		g.cancelLoad = cancel
		g.assets = loader.Load(ctx, settings.Textures)
		g.assetTask = sched.Request("assets", g.pollAssets)
	}

	if settings.OnProgress != nil {
		settings.OnProgress(sess.Progress.State())
	}
	return g
}

// Teardown stops every task, detaches every listener and releases the
// renderer. Later steps still run if an earlier one panics. Calling it
// more than once, or on a nil Globe, is a no-op.
func (g *Globe) Teardown() {
	if g == nil || g.torn {
		return
	}
	g.torn = true

	defer g.renderer.Release()
	defer g.removeListeners()
	defer func() {
		if g.cancelLoad != nil {
			g.cancelLoad()
		}
	}()

	g.sched.Cancel(g.loopTask)
	g.sched.Cancel(g.assetTask)
	g.zoom.Cancel()
	g.session.Progress.Stop()
}

// Session exposes the globe's state.
func (g *Globe) Session() *Session {
	return g.session
}

// Loop exposes the render loop.
func (g *Globe) Loop() *RenderLoop {
	return g.loop
}

// Zooming reports whether a zoom animation is in flight.
func (g *Globe) Zooming() bool {
	return g.zoom.Animating()
}

func (g *Globe) onPointerDown(e input.Event) {
	g.rotation.DragStart(e.X, e.Y)
	if len(g.drag) == 0 {
		g.drag = append(g.drag,
			g.events.Listen(input.PointerMove, g.onPointerMove),
			g.events.Listen(input.PointerUp, g.onPointerUp),
		)
	}
}

func (g *Globe) onPointerMove(e input.Event) {
	g.rotation.DragMove(e.X, e.Y)
}

func (g *Globe) onPointerUp(input.Event) {
	g.rotation.DragEnd()
	g.endDrag()
}

func (g *Globe) onWheel(e input.Event) {
	g.zoom.Wheel(e.X, e.Y, e.DeltaY)
}

func (g *Globe) onResize(e input.Event) {
	g.Resize(e.Width, e.Height, e.FramebufferW, e.FramebufferH)
}

// Resize updates the viewport, camera aspect and drawable size. Sizes are
// in screen coordinates; fbw and fbh are the framebuffer size in pixels and
// default to the screen size when zero. Zero-area sizes are ignored.
func (g *Globe) Resize(width, height, fbw, fbh int) {
	if g.torn || width <= 0 || height <= 0 {
		return
	}
	g.session.Viewport = control.Viewport{Width: width, Height: height}
	g.session.Scene.Camera.SetAspect(width, height)

	if fbw <= 0 || fbh <= 0 {
		fbw, fbh = width, height
	}
	g.renderer.Resize(fbw, fbh)
}

func (g *Globe) pollAssets(time.Duration) bool {
	for {
		select {
		case res, ok := <-g.assets:
			if !ok {
				return false
			}
			g.receive(res)
		default:
			return true
		}
	}
}

func (g *Globe) receive(res asset.Result) {
	if res.Err != nil {
		log.Printf("[assets] %s: %v", res.Slot, res.Err)
		return
	}
	if err := g.renderer.UploadTexture(res.Slot, res.Image); err != nil {
		log.Printf("[assets] upload %s: %v", res.Slot, err)
		return
	}
	b := res.Image.Bounds()
	log.Printf("[assets] %s ready (%dx%d)", res.Slot, b.Dx(), b.Dy())
	g.session.Progress.OnAssetLoaded()
}

func (g *Globe) endDrag() {
	for _, remove := range g.drag {
		remove()
	}
	g.drag = nil
}

func (g *Globe) removeListeners() {
	g.endDrag()
	for _, remove := range g.listeners {
		remove()
	}
	g.listeners = nil
}

func withDefaults(s Settings) Settings {
	d := DefaultSettings()
	if s.DragFactor == 0 {
		s.DragFactor = d.DragFactor
	}
	if s.SlowingFactor == 0 {
		s.SlowingFactor = d.SlowingFactor
	}
	if s.IdleSpin == 0 {
		s.IdleSpin = d.IdleSpin
	}
	s.Zoom = s.Zoom.Resolve()
	if s.SettleDelay == 0 {
		s.SettleDelay = d.SettleDelay
	}
	return s
}
