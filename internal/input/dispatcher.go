// Package input delivers window input to listeners registered on a
// Dispatcher, the way document-level event listeners would.
package input

type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	Wheel
	Resize
	KeyDown
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case Wheel:
		return "wheel"
	case Resize:
		return "resize"
	case KeyDown:
		return "keydown"
	}
	return "unknown"
}

// Event carries the fields relevant to its Kind. Positions are window
// coordinates with the origin at the top-left.
type Event struct {
	Kind Kind

	X, Y   float64 // pointer and wheel
	DeltaY float64 // wheel; positive scrolls down (zoom out)

	Width, Height             int // resize: window size
	FramebufferW, FramebufferH int // resize: drawable size in pixels

	Key int // keydown: glfw.Key value
}

type Handler func(Event)

type listener struct {
	id      int
	handler Handler
}

// Dispatcher is used from the frame thread only.
type Dispatcher struct {
	next      int
	listeners map[Kind][]listener
}

// NewDispatcher returns a dispatcher with no listeners.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[Kind][]listener)}
}

// Listen adds h for events of kind k. The returned func removes it and may
// be called any number of times.
func (d *Dispatcher) Listen(k Kind, h Handler) (remove func()) {
	d.next++
	id := d.next
	d.listeners[k] = append(d.listeners[k], listener{id: id, handler: h})
	return func() { d.remove(k, id) }
}

// Dispatch calls every listener registered for e.Kind at the time of the call.
func (d *Dispatcher) Dispatch(e Event) {
	// Handlers may add or remove listeners; iterate over a snapshot and
	// skip anything removed mid-dispatch.
	snapshot := append([]listener(nil), d.listeners[e.Kind]...)
	for _, l := range snapshot {
		if d.has(e.Kind, l.id) {
			l.handler(e)
		}
	}
}

// Listeners returns the total number of registered listeners.
func (d *Dispatcher) Listeners() int {
	n := 0
	for _, ls := range d.listeners {
		n += len(ls)
	}
	return n
}

// Count returns the number of listeners for one kind.
func (d *Dispatcher) Count(k Kind) int {
	return len(d.listeners[k])
}

func (d *Dispatcher) has(k Kind, id int) bool {
	for _, l := range d.listeners[k] {
		if l.id == id {
			return true
		}
	}
	return false
}

func (d *Dispatcher) remove(k Kind, id int) {
	ls := d.listeners[k]
	for i, l := range ls {
		if l.id == id {
			d.listeners[k] = append(ls[:i:i], ls[i+1:]...)
			if len(d.listeners[k]) == 0 {
				delete(d.listeners, k)
			}
			return
		}
	}
}
