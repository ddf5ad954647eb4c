// Package playground wires the buffers, the composer, a render sink, the
// refresh trigger and the status slot into one session.
package playground

import (
	"fmt"
	"time"

	"jsbin/internal/buffer"
	"jsbin/internal/compose"
	"jsbin/internal/refresh"
	"jsbin/internal/sched"
	"jsbin/internal/system"
)

// Sink displays a composed document.
type Sink interface {
	Render(doc string) error
}

// Options tunes a session. Zero values take the defaults.
type Options struct {
	Debounce      time.Duration
	StatusExpiry  time.Duration
	PreviewExpiry time.Duration
	// Manual disables auto refresh at start.
	Manual bool
}

// Session is the pipeline. All methods must be called from the loop that
// drives its Scheduler.
type Session struct {
	store   *buffer.Store
	sink    Sink
	trigger *refresh.Trigger
	status  *refresh.Reporter
	opts    Options
	renders int
	lastDoc string
}

// New builds a session over store, rendering into sink.
func New(store *buffer.Store, sink Sink, s sched.Scheduler, opts Options) *Session {
	if opts.StatusExpiry <= 0 {
		opts.StatusExpiry = refresh.DefaultExpiry
	}
	if opts.PreviewExpiry <= 0 {
		opts.PreviewExpiry = refresh.PreviewExpiry
	}
	ss := &Session{
		store:  store,
		sink:   sink,
		status: refresh.NewReporter(s),
		opts:   opts,
	}
	ss.trigger = refresh.NewTrigger(s, opts.Debounce, ss.Render)
	ss.trigger.SetAuto(!opts.Manual)
	store.OnChange(func(buffer.Role) { ss.trigger.Changed() })
	return ss
}

// Store exposes the buffers.
func (s *Session) Store() *buffer.Store { return s.store }

// Status exposes the status slot.
func (s *Session) Status() *refresh.Reporter { return s.status }

// Trigger exposes the refresh trigger.
func (s *Session) Trigger() *refresh.Trigger { return s.trigger }

// Renders counts completed renders.
func (s *Session) Renders() int { return s.renders }

// Document composes the buffers as they are now.
func (s *Session) Document() string {
	return compose.ComposeBuffers(s.store.Snapshot())
}

// Render composes and hands the document to the sink. On failure the sink
// keeps whatever it showed before.
func (s *Session) Render() {
	doc := s.Document()
	if err := s.sink.Render(doc); err != nil {
		system.Logger.Error("render failed", "err", err)
		s.status.Show(fmt.Sprintf("Render failed: %v", err), s.opts.StatusExpiry)
		return
	}
	s.renders++
	s.lastDoc = doc
	s.status.Show(refresh.Updated, s.opts.PreviewExpiry)
}

// LastDocument is the document of the most recent successful render.
func (s *Session) LastDocument() string { return s.lastDoc }

// Run is the explicit command: render now.
func (s *Session) Run() { s.trigger.Run() }

// Auto reports whether edits refresh the preview.
func (s *Session) Auto() bool { return s.trigger.Auto() }

// SetAuto toggles auto refresh.
func (s *Session) SetAuto(on bool) { s.trigger.SetAuto(on) }

// ToggleAuto flips auto refresh and returns the new state.
func (s *Session) ToggleAuto() bool {
	s.SetAuto(!s.Auto())
	return s.Auto()
}

// Clear empties every buffer and renders once, whatever the auto setting.
// The writes made by the clear do not schedule an extra render.
func (s *Session) Clear() {
	s.store.Quietly(s.store.Reset)
	s.trigger.Cancel()
	s.Render()
	s.status.Persist(refresh.Cleared)
}

// Download composes the buffers and passes the document to exp. Neither
// the sink nor the buffers are touched.
func (s *Session) Download(exp Exporter) (string, error) {
	doc := s.Document()
	where, err := exp.Export(compose.DownloadName, []byte(doc))
	if err != nil {
		s.status.Show(fmt.Sprintf("Download failed: %v", err), s.opts.StatusExpiry)
		return "", err
	}
	system.Logger.Info("document exported", "path", where, "bytes", len(doc))
	s.status.Show(refresh.Downloaded, s.opts.StatusExpiry)
	return where, nil
}

// Get returns a buffer's text.
func (s *Session) Get(r buffer.Role) string { return s.store.Get(r) }

// Set replaces a buffer's text; with auto refresh on this schedules a render.
func (s *Session) Set(r buffer.Role, v string) { s.store.Set(r, v) }

// GetHTML returns the markup buffer.
func (s *Session) GetHTML() string { return s.Get(buffer.Markup) }

// GetCSS returns the style buffer.
func (s *Session) GetCSS() string { return s.Get(buffer.Style) }

// GetJS returns the script buffer.
func (s *Session) GetJS() string { return s.Get(buffer.Script) }

// SetHTML replaces the markup buffer. Like an edit, it schedules an auto
// refresh when auto mode is on.
func (s *Session) SetHTML(v string) { s.Set(buffer.Markup, v) }

// SetCSS replaces the style buffer.
func (s *Session) SetCSS(v string) { s.Set(buffer.Style, v) }

// SetJS replaces the script buffer.
func (s *Session) SetJS(v string) { s.Set(buffer.Script, v) }
