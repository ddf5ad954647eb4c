package sched

import (
	"sort"
	"time"
)

// Manual is a virtual clock for tests. Nothing fires until Advance is called.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	m    *Manual
	at   time.Duration
	seq  int
	fn   func()
	done bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewManual returns a clock at time zero.
func NewManual() *Manual { return &Manual{} }

// Now is the elapsed virtual time.
func (m *Manual) Now() time.Duration { return m.now }

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{m: m, at: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Pending counts timers that have neither fired nor been stopped.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due callbacks in deadline
// order and FIFO among equal deadlines. Callbacks may schedule more timers;
// those fire too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		t := m.next(end)
		if t == nil {
			break
		}
		m.now = t.at
		t.done = true
		t.fn()
	}
	m.now = end
	m.compact()
}

func (m *Manual) next(end time.Duration) *manualTimer {
	live := make([]*manualTimer, 0, len(m.pending))
	for _, t := range m.pending {
		if !t.done && t.at <= end {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (m *Manual) compact() {
	keep := m.pending[:0]
	for _, t := range m.pending {
		if !t.done {
			keep = append(keep, t)
		}
	}
	m.pending = keep
}
