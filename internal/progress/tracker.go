// Package progress drives the loading overlay from asset completions.
package progress

import (
	"math"
	"time"

	"globe3d/internal/frame"
)

const (
	// DefaultTotal is the number of textures the globe waits for: surface
	// map, bump map, clouds and starfield.
	DefaultTotal = 4

	// DefaultSettleDelay keeps the overlay up after 100% so it does not
	// vanish on the same frame the counter lands.
	DefaultSettleDelay = time.Second
)

// State is what the loading overlay renders.
type State struct {
	Percent int
	Visible bool
}

// Tracker counts finished asset loads and animates the displayed percentage
// one unit per tick toward the loaded ratio.
type Tracker struct {
	sched       *frame.Scheduler
	total       int
	loaded      int
	displayed   int
	visible     bool
	settleDelay time.Duration

	counter  frame.Handle
	dismiss  frame.Handle
	settling bool

	onChange func(State)
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithTotal sets the number of expected loads.
func WithTotal(total int) TrackerOption {
	return func(t *Tracker) {
		if total > 0 {
			t.total = total
		}
	}
}

// WithSettleDelay sets the wait between reaching 100% and hiding the overlay.
func WithSettleDelay(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d >= 0 {
			t.settleDelay = d
		}
	}
}

// WithListener registers fn to receive every State change.
func WithListener(fn func(State)) TrackerOption {
	return func(t *Tracker) {
		t.onChange = fn
	}
}

// NewTracker returns a visible tracker at 0% expecting DefaultTotal loads.
func NewTracker(sched *frame.Scheduler, options ...TrackerOption) *Tracker {
	t := &Tracker{
		sched:       sched,
		total:       DefaultTotal,
		visible:     true,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// OnAssetLoaded records one completed load. Calls past the total are ignored.
func (t *Tracker) OnAssetLoaded() {
	if t.loaded >= t.total {
		return
	}
	t.loaded++
	if !t.sched.Active(t.counter) {
		t.counter = t.sched.Request("progress", t.step)
	}
}

// Target is the percentage the counter is heading for.
func (t *Tracker) Target() int {
	return int(math.Round(float64(t.loaded) / float64(t.total) * 100))
}

// Loaded returns the number of completed loads.
func (t *Tracker) Loaded() int { return t.loaded }

// Total returns the number of expected loads.
func (t *Tracker) Total() int { return t.total }

// State returns the displayed percentage and overlay visibility.
func (t *Tracker) State() State {
	return State{Percent: t.displayed, Visible: t.visible}
}

// Done reports whether every expected asset has loaded.
func (t *Tracker) Done() bool {
	return t.loaded == t.total
}

// Stop cancels the counter and any pending dismissal.
func (t *Tracker) Stop() {
	t.sched.Cancel(t.counter)
	t.sched.Cancel(t.dismiss)
	t.counter, t.dismiss = 0, 0
}

func (t *Tracker) step(time.Duration) bool {
	if t.displayed < t.Target() {
		t.displayed++
		t.emit()
		return true
	}
	if t.Done() && !t.settling {
		t.settling = true
		t.dismiss = t.sched.After("progress-settle", t.settleDelay, func() {
			t.visible = false
			t.emit()
		})
	}
	return false
}

func (t *Tracker) emit() {
	if t.onChange != nil {
		t.onChange(t.State())
	}
}
