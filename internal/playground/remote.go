package playground

import (
	"errors"

	"jsbin/internal/buffer"
)

// ErrStopped is returned when the session loop no longer accepts work.
var ErrStopped = errors.New("session loop stopped")

// Dispatch runs fn on the session's loop and waits for it. It returns false
// when the loop is gone.
type Dispatch func(fn func()) bool

// Remote exposes a Session to other goroutines (the console API) by
// funneling every call through the session loop.
type Remote struct {
	s  *Session
	do Dispatch
}

// NewRemote wraps s.
func NewRemote(s *Session, do Dispatch) *Remote {
	return &Remote{s: s, do: do}
}

// Render is the explicit run command.
func (r *Remote) Render() error {
	return r.call(r.s.Run)
}

// Get reads a buffer.
func (r *Remote) Get(role buffer.Role) (string, error) {
	var out string
	err := r.call(func() { out = r.s.Get(role) })
	return out, err
}

// Set writes a buffer.
func (r *Remote) Set(role buffer.Role, text string) error {
	return r.call(func() { r.s.Set(role, text) })
}

// Status reads the status slot.
func (r *Remote) Status() (string, error) {
	var out string
	err := r.call(func() { out = r.s.Status().Status() })
	return out, err
}

func (r *Remote) call(fn func()) error {
	if !r.do(fn) {
		return ErrStopped
	}
	return nil
}
