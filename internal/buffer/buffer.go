package buffer

import (
	"jsbin/internal/system"
)

// Editor is the editing widget that owns a buffer's text.
type Editor interface {
	Value() string
	SetValue(string)
	Focus() error
}

// Buffers is a point-in-time copy of all three texts.
type Buffers struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

// Get returns the text for role.
func (b Buffers) Get(r Role) string {
	switch r {
	case Markup:
		return b.HTML
	case Style:
		return b.CSS
	case Script:
		return b.JS
	}
	return ""
}

// Set replaces the text for role; unknown roles are ignored.
func (b *Buffers) Set(r Role, text string) {
	switch r {
	case Markup:
		b.HTML = text
	case Style:
		b.CSS = text
	case Script:
		b.JS = text
	}
}

// Store owns one editor per role. It is not safe for concurrent use; callers
// mutate it from a single event loop.
type Store struct {
	editors map[Role]Editor
	subs    []func(Role)
	muted   int
}

// NewStore builds a store over three existing editors.
func NewStore(markup, style, script Editor) *Store {
	return &Store{editors: map[Role]Editor{
		Markup: markup,
		Style:  style,
		Script: script,
	}}
}

// NewMemoryStore builds a store backed by in-memory editors.
func NewMemoryStore() *Store {
	return NewStore(&TextEditor{}, &TextEditor{}, &TextEditor{})
}

// Editor returns the widget for role, or nil.
func (s *Store) Editor(r Role) Editor { return s.editors[r] }

// Get returns the current text of role.
func (s *Store) Get(r Role) string {
	if e := s.editors[r]; e != nil {
		return e.Value()
	}
	return ""
}

// Set replaces the text of role and notifies subscribers.
// Any text is accepted, malformed or not.
func (s *Store) Set(r Role, text string) {
	e := s.editors[r]
	if e == nil {
		return
	}
	e.SetValue(text)
	s.Notify(r)
}

// Notify reports an edit made directly through the widget (e.g. a keystroke).
func (s *Store) Notify(r Role) {
	if s.muted > 0 {
		return
	}
	for _, fn := range s.subs {
		fn(r)
	}
}

// OnChange registers fn to be called after every mutation.
func (s *Store) OnChange(fn func(Role)) {
	s.subs = append(s.subs, fn)
}

// Quietly runs fn with change notifications suppressed.
func (s *Store) Quietly(fn func()) {
	s.muted++
	defer func() { s.muted-- }()
	fn()
}

// Snapshot copies all three buffers.
func (s *Store) Snapshot() Buffers {
	return Buffers{HTML: s.Get(Markup), CSS: s.Get(Style), JS: s.Get(Script)}
}

// Load sets all three buffers from b.
func (s *Store) Load(b Buffers) {
	for _, r := range Roles {
		s.Set(r, b.Get(r))
	}
}

// Reset empties every buffer. Buffers are never removed.
func (s *Store) Reset() {
	for _, r := range Roles {
		s.Set(r, "")
	}
}

// Focus asks the widget for role to take focus. Failures are ignored;
// focusing is only an affordance.
func (s *Store) Focus(r Role) {
	e := s.editors[r]
	if e == nil {
		return
	}
	if err := e.Focus(); err != nil {
		system.Logger.Debug("focus failed", "role", r, "err", err)
	}
}

// TextEditor is a plain in-memory Editor.
type TextEditor struct {
	text    string
	focused bool
}

func (e *TextEditor) Value() string     { return e.text }
func (e *TextEditor) SetValue(v string) { e.text = v }
func (e *TextEditor) Focus() error      { e.focused = true; return nil }

// Focused reports whether Focus was called.
func (e *TextEditor) Focused() bool { return e.focused }
