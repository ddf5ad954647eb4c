// Package sched provides the single-threaded event loop the playground runs on.
//
// Every callback handed to a Scheduler runs on the loop that owns it, one at
// a time, so state touched only from callbacks needs no locking.
package sched

import (
	"context"
	"sync"
	"time"
)

// Timer is a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped a timer that had not fired yet.
	Stop() bool
}

// Scheduler runs fn on the owning loop once d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// Loop is a goroutine-backed event loop.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a loop; call Run to start processing.
func NewLoop() *Loop {
	return &Loop{
		queue: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Run processes posted callbacks until ctx is canceled.
func (l *Loop) Run(ctx context.Context) {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Post queues fn. It returns false when the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case <-l.done:
		return false
	case l.queue <- fn:
		return true
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(fn func()) bool {
	ran := make(chan struct{})
	if !l.Post(func() { fn(); close(ran) }) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// After schedules fn to be posted to the loop after d.
func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.t = time.AfterFunc(d, func() {
		l.Post(func() {
			// Stop may have been called after the runtime timer fired
			// but before the loop picked the callback up.
			if !t.claim() {
				return
			}
			fn()
		})
	})
	return t
}

type loopTimer struct {
	mu    sync.Mutex
	t     *time.Timer
	stop  bool
	fired bool
}

func (t *loopTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.t.Stop()
	if t.stop || t.fired {
		return false
	}
	t.stop = true
	return true
}

// claim marks the timer as fired unless it was stopped first.
func (t *loopTimer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop {
		return false
	}
	t.fired = true
	return true
}
