// Package refresh decides when the preview is rebuilt and what the status
// slot says about it.
package refresh

import (
	"time"

	"jsbin/internal/sched"
)

// DefaultDebounce is the quiet period after the last edit before an
// automatic render.
const DefaultDebounce = 600 * time.Millisecond

// Trigger gates a render action behind two paths: explicit runs, which are
// immediate, and change notifications, which are debounced while auto
// refresh is on. It must only be used from the scheduler's loop.
type Trigger struct {
	render   func()
	sched    sched.Scheduler
	debounce time.Duration
	auto     bool

	pending sched.Timer
	gen     uint64
	changes int
}

// NewTrigger creates a trigger calling render. A non-positive debounce
// falls back to DefaultDebounce.
func NewTrigger(s sched.Scheduler, debounce time.Duration, render func()) *Trigger {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Trigger{render: render, sched: s, debounce: debounce, auto: true}
}

// Debounce is the configured quiet period.
func (t *Trigger) Debounce() time.Duration { return t.debounce }

// Auto reports whether change notifications schedule renders.
func (t *Trigger) Auto() bool { return t.auto }

// SetAuto turns auto refresh on or off. Turning it off drops any pending
// countdown.
func (t *Trigger) SetAuto(on bool) {
	t.auto = on
	if !on {
		t.Cancel()
	}
}

// Run renders now, whatever the auto setting.
func (t *Trigger) Run() {
	t.render()
}

// Changed records a buffer edit. With auto refresh on it (re)starts the
// single countdown; a burst of edits yields one render, debounce after the
// last one.
func (t *Trigger) Changed() {
	t.changes++
	if !t.auto {
		return
	}
	t.Cancel()
	t.gen++
	gen := t.gen
	t.pending = t.sched.After(t.debounce, func() {
		if gen != t.gen || t.pending == nil {
			return
		}
		t.pending = nil
		t.render()
	})
}

// Cancel drops the pending countdown, if any.
func (t *Trigger) Cancel() {
	if t.pending == nil {
		return
	}
	t.pending.Stop()
	t.pending = nil
	t.gen++
}

// Pending reports whether an automatic render is scheduled.
func (t *Trigger) Pending() bool { return t.pending != nil }

// Changes counts change notifications seen so far, auto or not.
func (t *Trigger) Changes() int { return t.changes }
