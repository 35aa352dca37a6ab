package input

import "github.com/go-gl/glfw/v3.3/glfw"

// DefaultWheelStep converts one scroll notch into a browser-style pixel delta.
const DefaultWheelStep = 100.0

// BindWindow forwards GLFW callbacks on w to d and returns a func that
// detaches them. Only the left mouse button drives pointer events.
//
// GLFW reports scroll up as positive yoff; the dispatched DeltaY is flipped
// so positive means scrolling down, i.e. zooming out.
func BindWindow(w *glfw.Window, d *Dispatcher, wheelStep float64) (unbind func()) {
	if wheelStep == 0 {
		wheelStep = DefaultWheelStep
	}

	w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		switch action {
		case glfw.Press:
			d.Dispatch(Event{Kind: PointerDown, X: x, Y: y})
		case glfw.Release:
			d.Dispatch(Event{Kind: PointerUp, X: x, Y: y})
		}
	})

	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		d.Dispatch(Event{Kind: PointerMove, X: x, Y: y})
	})

	w.SetScrollCallback(func(w *glfw.Window, _, yoff float64) {
		x, y := w.GetCursorPos()
		d.Dispatch(Event{Kind: Wheel, X: x, Y: y, DeltaY: -yoff * wheelStep})
	})

	w.SetSizeCallback(func(w *glfw.Window, width, height int) {
		fbw, fbh := w.GetFramebufferSize()
		d.Dispatch(Event{
			Kind:         Resize,
			Width:        width,
			Height:       height,
			FramebufferW: fbw,
			FramebufferH: fbh,
		})
	})

	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			d.Dispatch(Event{Kind: KeyDown, Key: int(key)})
		}
	})

	return func() {
		w.SetMouseButtonCallback(nil)
		w.SetCursorPosCallback(nil)
		w.SetScrollCallback(nil)
		w.SetSizeCallback(nil)
		w.SetKeyCallback(nil)
	}
}
