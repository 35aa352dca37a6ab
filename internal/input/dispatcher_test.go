package input

import "testing"

func TestDispatchReachesListenersOfKind(t *testing.T) {
	d := NewDispatcher()
	var downs, wheels int
	d.Listen(PointerDown, func(Event) { downs++ })
	d.Listen(Wheel, func(e Event) {
		if e.DeltaY != 100 {
			t.Errorf("unexpected delta %v", e.DeltaY)
		}
		wheels++
	})

	d.Dispatch(Event{Kind: PointerDown})
	d.Dispatch(Event{Kind: Wheel, DeltaY: 100})
	d.Dispatch(Event{Kind: PointerMove})

	if downs != 1 || wheels != 1 {
		t.Fatalf("downs=%d wheels=%d", downs, wheels)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	remove := d.Listen(PointerMove, func(Event) { calls++ })
	keep := d.Listen(PointerMove, func(Event) {})

	remove()
	remove()
	d.Dispatch(Event{Kind: PointerMove})

	if calls != 0 {
		t.Fatalf("removed listener called %d times", calls)
	}
	if d.Listeners() != 1 {
		t.Fatalf("expected 1 listener, got %d", d.Listeners())
	}
	keep()
	if d.Listeners() != 0 {
		t.Fatalf("expected no listeners, got %d", d.Listeners())
	}
}

func TestListenersAddedDuringDispatchWaitForNextEvent(t *testing.T) {
	d := NewDispatcher()
	moves := 0
	d.Listen(PointerDown, func(Event) {
		d.Listen(PointerDown, func(Event) { moves++ })
	})

	d.Dispatch(Event{Kind: PointerDown})
	if moves != 0 {
		t.Fatalf("listener added mid-dispatch ran in the same dispatch")
	}
	if d.Count(PointerDown) != 2 {
		t.Fatalf("expected 2 listeners, got %d", d.Count(PointerDown))
	}
}

func TestListenerRemovedDuringDispatchIsSkipped(t *testing.T) {
	d := NewDispatcher()
	var removeSecond func()
	second := 0
	d.Listen(PointerUp, func(Event) { removeSecond() })
	removeSecond = d.Listen(PointerUp, func(Event) { second++ })

	d.Dispatch(Event{Kind: PointerUp})

	if second != 0 {
		t.Fatal("listener removed mid-dispatch still ran")
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{PointerDown: "pointerdown", Wheel: "wheel", Kind(99): "unknown"} {
		if got := k.String(); got != want {
			t.Errorf("%d: got %q want %q", k, got, want)
		}
	}
}
