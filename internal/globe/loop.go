package globe

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"globe3d/internal/control"
	"globe3d/internal/scene"
)

var (
	worldX = mgl64.Vec3{1, 0, 0}
	worldY = mgl64.Vec3{0, 1, 0}
)

// RenderLoop advances the globe one display tick at a time: idle spin, drag
// rotation, decay, then draw.
type RenderLoop struct {
	scene    *scene.Scene
	rotation *control.RotationState
	slowing  float64
	idleSpin float64
	draw     func()
	frames   uint64
}

// NewRenderLoop decays rotation by slowing each tick and calls draw last.
func NewRenderLoop(s *scene.Scene, rotation *control.RotationState, slowing, idleSpin float64, draw func()) *RenderLoop {
	return &RenderLoop{
		scene:    s,
		rotation: rotation,
		slowing:  slowing,
		idleSpin: idleSpin,
		draw:     draw,
	}
}

// Step runs one tick.
func (l *RenderLoop) Step() {
	globe, clouds := l.scene.Globe, l.scene.Clouds

	globe.RotateOnLocalAxis(worldY, l.idleSpin)
	clouds.RotateOnLocalAxis(worldY, l.idleSpin)

	// Clouds take exactly the globe's drag rotation so the layers never
	// drift apart except through the idle spin.
	for _, m := range []*scene.Mesh{globe, clouds} {
		m.RotateOnWorldAxis(worldY, l.rotation.TargetX)
		m.RotateOnWorldAxis(worldX, l.rotation.TargetY)
	}

	l.rotation.TargetX *= l.slowing
	l.rotation.TargetY *= l.slowing

	if l.draw != nil {
		l.draw()
	}
	l.frames++
}

// Frames returns the number of ticks run so far.
func (l *RenderLoop) Frames() uint64 {
	return l.frames
}

func (l *RenderLoop) task(time.Duration) bool {
	l.Step()
	return true
}
