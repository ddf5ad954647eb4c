package refresh

import (
	"time"

	"jsbin/internal/sched"
)

// Status texts and expiry windows.
const (
	Ready      = "Ready"
	Updated    = "Preview updated"
	Cleared    = "Cleared"
	Downloaded = "Downloaded"

	DefaultExpiry = 1800 * time.Millisecond
	PreviewExpiry = 900 * time.Millisecond
)

// Reporter holds the single status slot.
//
// An expiring message schedules a check that restores Ready only if the slot
// still shows that same text. Checks are never canceled; a newer message
// simply makes them no-ops. Two pending checks for the same text both reset,
// which is harmless.
type Reporter struct {
	sched sched.Scheduler
	text  string
	subs  []func(string)
}

// NewReporter starts at Ready.
func NewReporter(s sched.Scheduler) *Reporter {
	return &Reporter{sched: s, text: Ready}
}

// Status is the current text.
func (r *Reporter) Status() string { return r.text }

// OnChange registers fn to observe every change of the slot.
func (r *Reporter) OnChange(fn func(string)) {
	r.subs = append(r.subs, fn)
}

// Show displays text. A positive expiry schedules a revert to Ready; zero
// leaves the text until something overwrites it.
func (r *Reporter) Show(text string, expiry time.Duration) {
	r.set(text)
	if expiry <= 0 {
		return
	}
	r.sched.After(expiry, func() {
		if r.text == text {
			r.set(Ready)
		}
	})
}

// ShowDefault displays text with DefaultExpiry.
func (r *Reporter) ShowDefault(text string) { r.Show(text, DefaultExpiry) }

// Persist displays text with no expiry.
func (r *Reporter) Persist(text string) { r.Show(text, 0) }

func (r *Reporter) set(text string) {
	r.text = text
	for _, fn := range r.subs {
		fn(text)
	}
}
