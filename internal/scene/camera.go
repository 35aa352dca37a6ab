package scene

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera. FOV is vertical, in degrees.
type Camera struct {
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64

	Position mgl64.Vec3
	LookAt   mgl64.Vec3
	Up       mgl64.Vec3
}

// NewCamera returns a camera with +Y up. Callers set Position and LookAt.
func NewCamera(fov float64, width, height int, near, far float64) *Camera {
	c := &Camera{
		FOV:    fov,
		Aspect: 1,
		Near:   near,
		Far:    far,
		Up:     mgl64.Vec3{0, 1, 0},
	}
	c.SetAspect(width, height)
	return c
}

// SetAspect updates the aspect ratio. Zero-area sizes are ignored and
// reported as false.
func (c *Camera) SetAspect(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.Aspect = float64(width) / float64(height)
	return true
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.LookAt, c.Up)
}

func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Distance returns how far the camera is from its look-at point.
func (c *Camera) Distance() float64 {
	return c.Position.Sub(c.LookAt).Len()
}
