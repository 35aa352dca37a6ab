package control

import (
	"math"
	"testing"
)

func TestDragMoveScalesOffsetFromAnchor(t *testing.T) {
	vp := &Viewport{Width: 800, Height: 600}
	var st RotationState
	c := NewRotationController(&st, vp, DefaultDragFactor)

	c.DragStart(400, 300) // viewport centre, anchor (0, 0)
	if s := c.Session(); s == nil || s.AnchorX != 0 || s.AnchorY != 0 {
		t.Fatalf("expected anchor at origin, got %+v", s)
	}
	c.DragMove(500, 300)

	if want := 100 * DefaultDragFactor; math.Abs(st.TargetX-want) > 1e-12 {
		t.Fatalf("TargetX = %v, want %v", st.TargetX, want)
	}
	if st.TargetY != 0 {
		t.Fatalf("TargetY = %v, want 0", st.TargetY)
	}
}

func TestDragUsesInstantaneousOffset(t *testing.T) {
	vp := &Viewport{Width: 1000, Height: 1000}
	var st RotationState
	c := NewRotationController(&st, vp, 0.01)

	c.DragStart(100, 100)
	c.DragMove(150, 120)
	c.DragMove(130, 90)

	if math.Abs(st.TargetX-0.3) > 1e-12 || math.Abs(st.TargetY+0.1) > 1e-12 {
		t.Fatalf("expected (0.3, -0.1), got (%v, %v)", st.TargetX, st.TargetY)
	}
}

func TestMoveWithoutSessionIsIgnored(t *testing.T) {
	vp := &Viewport{Width: 800, Height: 600}
	st := RotationState{TargetX: 0.5, TargetY: -0.5}
	c := NewRotationController(&st, vp, DefaultDragFactor)

	c.DragMove(10, 10)
	c.DragEnd() // no session: no-op

	if st.TargetX != 0.5 || st.TargetY != -0.5 {
		t.Fatalf("state changed without a session: %+v", st)
	}
}

func TestDragEndKeepsRotation(t *testing.T) {
	vp := &Viewport{Width: 800, Height: 600}
	var st RotationState
	c := NewRotationController(&st, vp, DefaultDragFactor)

	c.DragStart(0, 0)
	c.DragMove(50, 20)
	before := st
	c.DragEnd()
	c.DragMove(500, 500)

	if c.Dragging() {
		t.Fatal("session survived DragEnd")
	}
	if st != before {
		t.Fatalf("rotation changed after DragEnd: %+v -> %+v", before, st)
	}
}
