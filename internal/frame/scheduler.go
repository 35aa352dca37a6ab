// Package frame runs per-display-tick tasks on the frame thread.
//
// A Scheduler replaces self-rescheduling frame callbacks with explicit tasks:
// each task reports whether it wants another tick, and every task can be
// cancelled through the Handle returned when it was registered.
package frame

import "time"

// Task is called once per tick with the tick time. Returning false ends it.
type Task func(now time.Duration) bool

// Handle identifies a registered task. The zero Handle refers to nothing.
type Handle uint64

type entry struct {
	id   Handle
	name string
	task Task
	dead bool
}

// Scheduler is not safe for concurrent use; it belongs to the frame thread.
type Scheduler struct {
	next    Handle
	now     time.Duration
	entries []*entry
	byID    map[Handle]*entry
	ticking bool
}

// NewScheduler returns an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[Handle]*entry)}
}

// Request registers task to run every tick, starting on the next one.
func (s *Scheduler) Request(name string, task Task) Handle {
	s.next++
	e := &entry{id: s.next, name: name, task: task}
	s.entries = append(s.entries, e)
	s.byID[e.id] = e
	return e.id
}

// After runs fn once on the first tick at or past delay from now.
func (s *Scheduler) After(name string, delay time.Duration, fn func()) Handle {
	deadline := s.now + delay
	return s.Request(name, func(now time.Duration) bool {
		if now < deadline {
			return true
		}
		fn()
		return false
	})
}

// Cancel stops h. Unknown or finished handles are ignored.
func (s *Scheduler) Cancel(h Handle) {
	e, ok := s.byID[h]
	if !ok {
		return
	}
	e.dead = true
	delete(s.byID, h)
	if !s.ticking {
		s.compact()
	}
}

// Active reports whether h still has ticks ahead of it.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.byID[h]
	return ok
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	return len(s.byID)
}

// Now returns the time of the last tick.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Tick runs every live task once, in registration order.
func (s *Scheduler) Tick(now time.Duration) {
	s.now = now
	s.ticking = true
	// Tasks added during this tick land past n and wait for the next one.
	n := len(s.entries)
	for i := 0; i < n; i++ {
		e := s.entries[i]
		if e.dead {
			continue
		}
		if !e.task(now) && !e.dead {
			e.dead = true
			delete(s.byID, e.id)
		}
	}
	s.ticking = false
	s.compact()
}

// Stop cancels every task.
func (s *Scheduler) Stop() {
	for _, e := range s.entries {
		e.dead = true
	}
	clear(s.byID)
	if !s.ticking {
		s.entries = s.entries[:0]
	}
}

func (s *Scheduler) compact() {
	live := s.entries[:0]
	for _, e := range s.entries {
		if !e.dead {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = live
}

// Names lists live tasks in registration order.
func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.byID))
	for _, e := range s.entries {
		if !e.dead {
			names = append(names, e.name)
		}
	}
	return names
}
