// Package control maps pointer and wheel input onto the globe's rotation and
// camera state.
package control

// DefaultDragFactor is small so a full-width drag only yields a modest spin.
const DefaultDragFactor = 0.0002

// Viewport is the current window size in screen coordinates.
type Viewport struct {
	Width, Height int
}

// Half returns the viewport centre.
func (v Viewport) Half() (float64, float64) {
	return float64(v.Width) / 2, float64(v.Height) / 2
}

// Empty reports a zero-area viewport.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// RotationState holds the per-tick rotation increments. RenderLoop decays them.
type RotationState struct {
	TargetX float64 // about the world Y axis
	TargetY float64 // about the world X axis
}

// DragSession lives between a pointer-down and its pointer-up.
type DragSession struct {
	AnchorX, AnchorY float64
}

// RotationController turns drag offsets into rotation increments. Speed is
// proportional to the current offset from the anchor, not to the distance
// travelled, which gives the globe a flick-and-coast feel.
type RotationController struct {
	state      *RotationState
	viewport   *Viewport
	dragFactor float64
	session    *DragSession
}

// NewRotationController writes into state; viewport is read on every
// event so resizes take effect immediately.
func NewRotationController(state *RotationState, viewport *Viewport, dragFactor float64) *RotationController {
	if dragFactor == 0 {
		dragFactor = DefaultDragFactor
	}
	return &RotationController{
		state:      state,
		viewport:   viewport,
		dragFactor: dragFactor,
	}
}

// DragStart opens a session anchored at the pointer, relative to the viewport centre.
func (c *RotationController) DragStart(x, y float64) {
	hx, hy := c.viewport.Half()
	c.session = &DragSession{AnchorX: x - hx, AnchorY: y - hy}
}

// DragMove updates the rotation targets. Without a session it does nothing.
func (c *RotationController) DragMove(x, y float64) {
	if c.session == nil {
		return
	}
	hx, hy := c.viewport.Half()
	c.state.TargetX = (x - hx - c.session.AnchorX) * c.dragFactor
	c.state.TargetY = (y - hy - c.session.AnchorY) * c.dragFactor
}

// DragEnd drops the session. The rotation targets keep coasting.
func (c *RotationController) DragEnd() {
	c.session = nil
}

// Session returns the active drag session, or nil.
func (c *RotationController) Session() *DragSession {
	return c.session
}

// Dragging reports whether a drag session is open.
func (c *RotationController) Dragging() bool {
	return c.session != nil
}
