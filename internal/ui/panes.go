package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"

	"jsbin/internal/buffer"
)

// softTab is what Tab inserts; the panes use two-space soft tabs.
const softTab = "  "

type pane struct {
	role buffer.Role
	ta   textarea.Model
	// text is the buffer itself. The textarea only displays it: its input
	// sanitizer expands tabs and caps the line count, so it never feeds text
	// back except after a keystroke edit.
	text string
}

var placeholders = map[buffer.Role]string{
	buffer.Markup: "<!-- HTML: add your markup here -->",
	buffer.Style:  "/* CSS: styles here */",
	buffer.Script: "// JS: add interactivity",
}

func newPane(r buffer.Role) *pane {
	ta := textarea.New()
	ta.Placeholder = placeholders[r]
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Blur()
	return &pane{role: r, ta: ta}
}

// workspace is shared by every copy of the model; the store's editors point
// into it.
type workspace struct {
	panes   []*pane
	focused int

	confirmClear bool
}

func newWorkspace() *workspace {
	ws := &workspace{}
	for _, r := range buffer.Roles {
		ws.panes = append(ws.panes, newPane(r))
	}
	return ws
}

func (ws *workspace) current() *pane { return ws.panes[ws.focused] }

// focus moves focus to pane i, blurring the others.
func (ws *workspace) focus(i int) {
	if i < 0 || i >= len(ws.panes) {
		return
	}
	ws.focused = i
	for j, p := range ws.panes {
		if j == i {
			p.ta.Focus()
		} else {
			p.ta.Blur()
		}
	}
}

func (ws *workspace) indexOf(r buffer.Role) int {
	for i, p := range ws.panes {
		if p.role == r {
			return i
		}
	}
	return -1
}

// editor adapts a pane to buffer.Editor.
type editor struct {
	ws *workspace
	p  *pane
}

func (e editor) Value() string { return e.p.text }

func (e editor) SetValue(v string) {
	e.p.text = v
	e.p.ta.SetValue(v)
	// SetValue leaves the cursor at the end; start at the top like a freshly
	// opened file.
	for e.p.ta.Line() > 0 {
		e.p.ta.CursorUp()
	}
	e.p.ta.CursorStart()
}

func (e editor) Focus() error {
	e.ws.focus(e.ws.indexOf(e.p.role))
	return nil
}

func (ws *workspace) store() *buffer.Store {
	ed := func(r buffer.Role) buffer.Editor { return editor{ws: ws, p: ws.panes[ws.indexOf(r)]} }
	return buffer.NewStore(ed(buffer.Markup), ed(buffer.Style), ed(buffer.Script))
}

// setSize lays the panes out side by side.
func (ws *workspace) setSize(width, height int) {
	n := len(ws.panes)
	w := width/n - 2
	if w < 8 {
		w = 8
	}
	h := height - 3 // border + title
	if h < 3 {
		h = 3
	}
	for _, p := range ws.panes {
		p.ta.SetWidth(w)
		p.ta.SetHeight(h)
	}
}

func lineCount(s string) int { return strings.Count(s, "\n") + 1 }
