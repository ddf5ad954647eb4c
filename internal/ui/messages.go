package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Bubble Tea messages

// timer fired; see teaScheduler
type timerMsg struct {
	t  *teaTimer
	fn func()
}

// work handed in from another goroutine (console API)
type dispatchMsg struct {
	fn   func()
	done chan struct{}
}

// explicit run request (startup render, toolbar, console)
type runMsg struct{}

// preview server stopped
type serverErrMsg struct{ err error }

// Dispatcher returns a function that runs fn inside p's Update loop and
// waits for it. It returns false once stopped is closed.
func Dispatcher(p *tea.Program, stopped <-chan struct{}) func(fn func()) bool {
	return func(fn func()) bool {
		done := make(chan struct{})
		go p.Send(dispatchMsg{fn: fn, done: done})
		select {
		case <-done:
			return true
		case <-stopped:
			return false
		}
	}
}

// ServerFailed reports a preview server error to the running program.
func ServerFailed(err error) tea.Msg { return serverErrMsg{err: err} }
