package control

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"globe3d/internal/frame"
	"globe3d/internal/scene"
)

// ZoomSettings bound and shape the wheel zoom. Distances are world units.
type ZoomSettings struct {
	Speed     float64
	Min       float64
	Max       float64
	Smoothing float64
	Epsilon   float64
}

// DefaultZoomSettings returns the stock wheel behaviour.
func DefaultZoomSettings() ZoomSettings {
	return ZoomSettings{
		Speed:     0.001,
		Min:       1.5,
		Max:       10,
		Smoothing: 0.1,
		Epsilon:   0.01,
	}
}

// Resolve fills unset fields from DefaultZoomSettings, swaps inverted
// bounds and resets a Smoothing outside (0, 1], which would never settle.
func (s ZoomSettings) Resolve() ZoomSettings {
	d := DefaultZoomSettings()
	if s.Speed <= 0 {
		s.Speed = d.Speed
	}
	if s.Min <= 0 {
		s.Min = d.Min
	}
	if s.Max <= 0 {
		s.Max = d.Max
	}
	if s.Min > s.Max {
		s.Min, s.Max = s.Max, s.Min
	}
	if s.Smoothing <= 0 || s.Smoothing > 1 {
		s.Smoothing = d.Smoothing
	}
	if s.Epsilon <= 0 {
		s.Epsilon = d.Epsilon
	}
	return s
}

// CameraState is the zoom target for the scene camera. The current position
// lives on the camera itself.
type CameraState struct {
	Camera     *scene.Camera
	Target     mgl64.Vec3
	TargetZoom float64
}

// NewCameraState starts the target where the camera already is.
func NewCameraState(cam *scene.Camera) *CameraState {
	return &CameraState{
		Camera:     cam,
		Target:     cam.Position,
		TargetZoom: cam.Position.Z(),
	}
}

// ZoomController eases the camera toward a wheel-driven target. Each wheel
// event supersedes the previous animation.
type ZoomController struct {
	state    *CameraState
	viewport *Viewport
	sched    *frame.Scheduler
	settings ZoomSettings
	anim     frame.Handle
}

// NewZoomController resolves settings before use, so a partial
// ZoomSettings is valid.
func NewZoomController(state *CameraState, viewport *Viewport, sched *frame.Scheduler, settings ZoomSettings) *ZoomController {
	return &ZoomController{
		state:    state,
		viewport: viewport,
		sched:    sched,
		settings: settings.Resolve(),
	}
}

// Wheel handles one wheel event at the given cursor position. Positive
// deltaY moves the camera away from the globe.
func (z *ZoomController) Wheel(cursorX, cursorY, deltaY float64) {
	z.Cancel()

	s := z.settings
	z.state.TargetZoom = mgl64.Clamp(z.state.TargetZoom+deltaY*s.Speed, s.Min, s.Max)

	// Offset toward the cursor, scaled by the wheel delta. This is not a
	// cursor-anchored zoom; it only biases the camera sideways.
	var nx, ny float64
	if !z.viewport.Empty() {
		nx = cursorX/float64(z.viewport.Width)*2 - 1
		ny = -(cursorY/float64(z.viewport.Height))*2 + 1
	}
	intensity := deltaY * s.Speed
	pos := z.state.Camera.Position
	z.state.Target = mgl64.Vec3{
		pos.X() + nx*intensity*0.5,
		pos.Y() + ny*intensity*0.5,
		z.state.TargetZoom,
	}

	z.anim = z.sched.Request("zoom", z.step)
}

// Cancel stops the in-flight animation, leaving the camera where it is.
func (z *ZoomController) Cancel() {
	z.sched.Cancel(z.anim)
	z.anim = 0
}

// Animating reports whether a zoom animation is scheduled.
func (z *ZoomController) Animating() bool {
	return z.sched.Active(z.anim)
}

func (z *ZoomController) step(time.Duration) bool {
	cam := z.state.Camera
	cam.Position = lerp(cam.Position, z.state.Target, z.settings.Smoothing)
	cam.LookAt = mgl64.Vec3{}
	return cam.Position.Sub(z.state.Target).Len() > z.settings.Epsilon
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
