package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jsbin/internal/sched"
)

// teaScheduler turns Scheduler timers into tea.Tick commands so callbacks
// run inside Update, on the program's single loop.
type teaScheduler struct {
	queued []tea.Cmd
}

type teaTimer struct {
	stopped bool
	fired   bool
}

func (t *teaTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *teaScheduler) After(d time.Duration, fn func()) sched.Timer {
	t := &teaTimer{}
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{t: t, fn: fn}
	}))
	return t
}

// drain returns the commands queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (s *teaScheduler) fire(m timerMsg) {
	if m.t.stopped {
		return
	}
	m.t.fired = true
	m.fn()
}
