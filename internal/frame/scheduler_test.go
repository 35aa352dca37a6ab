package frame

import (
	"testing"
	"time"
)

func TestRequestRunsUntilTaskFinishes(t *testing.T) {
	s := NewScheduler()
	runs := 0
	s.Request("count", func(time.Duration) bool {
		runs++
		return runs < 3
	})

	for i := 1; i <= 5; i++ {
		s.Tick(time.Duration(i) * time.Millisecond)
	}

	if runs != 3 {
		t.Fatalf("expected 3 runs, got %d", runs)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected no pending tasks, got %d", s.Pending())
	}
}

func TestTaskRegisteredDuringTickWaitsForNextTick(t *testing.T) {
	s := NewScheduler()
	inner := 0
	s.Request("outer", func(time.Duration) bool {
		s.Request("inner", func(time.Duration) bool {
			inner++
			return false
		})
		return false
	})

	s.Tick(1)
	if inner != 0 {
		t.Fatalf("inner task ran in the tick it was registered in")
	}
	s.Tick(2)
	if inner != 1 {
		t.Fatalf("expected inner task to run once, got %d", inner)
	}
}

func TestCancelStopsTaskWithinSameTick(t *testing.T) {
	s := NewScheduler()
	var victim Handle
	ran := false
	s.Request("killer", func(time.Duration) bool {
		s.Cancel(victim)
		return true
	})
	victim = s.Request("victim", func(time.Duration) bool {
		ran = true
		return true
	})

	s.Tick(1)
	if ran {
		t.Fatal("cancelled task ran")
	}
	if s.Active(victim) {
		t.Fatal("cancelled handle still active")
	}
	if got := s.Names(); len(got) != 1 || got[0] != "killer" {
		t.Fatalf("unexpected live tasks %v", got)
	}
}

func TestCancelUnknownHandleIsNoop(t *testing.T) {
	s := NewScheduler()
	s.Cancel(0)
	s.Cancel(42)
	h := s.Request("once", func(time.Duration) bool { return false })
	s.Tick(1)
	s.Cancel(h)
	if s.Pending() != 0 {
		t.Fatalf("expected 0 pending, got %d", s.Pending())
	}
}

func TestAfterFiresOnceAtDeadline(t *testing.T) {
	s := NewScheduler()
	s.Tick(100 * time.Millisecond)

	fired := 0
	s.After("settle", time.Second, func() { fired++ })

	s.Tick(500 * time.Millisecond)
	s.Tick(1099 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired %d times before the deadline", fired)
	}
	s.Tick(1100 * time.Millisecond)
	s.Tick(3 * time.Second)
	if fired != 1 {
		t.Fatalf("expected one firing, got %d", fired)
	}
}

func TestStopCancelsEverything(t *testing.T) {
	s := NewScheduler()
	runs := 0
	s.Request("a", func(time.Duration) bool { runs++; return true })
	s.Request("b", func(time.Duration) bool { runs++; return true })
	s.After("c", time.Millisecond, func() { runs++ })

	s.Stop()
	s.Tick(time.Second)

	if runs != 0 {
		t.Fatalf("expected no runs after Stop, got %d", runs)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected 0 pending, got %d", s.Pending())
	}
}

func TestStopFromInsideTask(t *testing.T) {
	s := NewScheduler()
	later := false
	s.Request("stopper", func(time.Duration) bool {
		s.Stop()
		return true
	})
	s.Request("later", func(time.Duration) bool {
		later = true
		return true
	})

	s.Tick(1)
	if later {
		t.Fatal("task after Stop still ran")
	}
	if s.Pending() != 0 {
		t.Fatalf("expected 0 pending, got %d", s.Pending())
	}
	s.Tick(2)
	if later {
		t.Fatal("task ran after Stop")
	}
}
