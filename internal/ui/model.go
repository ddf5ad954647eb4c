package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"jsbin/internal/buffer"
	"jsbin/internal/playground"
)

// Options configures the TUI.
type Options struct {
	Sink       playground.Sink
	Exporter   playground.Exporter
	Session    playground.Options
	Seed       buffer.Buffers
	PreviewURL string
}

// Model for TUI
type model struct {
	ws       *workspace
	sess     *playground.Session
	sched    *teaScheduler
	exporter playground.Exporter
	help     help.Model

	previewURL string
	width      int
	height     int

	// overlays
	showHelp bool
	helpView string
	confirm  *huh.Form

	// one-line message next to the toolbar, e.g. where a download went
	notice string

	// double-click detection on pane titles
	titleClickIdx int
	titleClickAt  time.Time

	quitting bool
}

// doubleClick is the longest gap between two clicks that still counts.
const doubleClick = 400 * time.Millisecond

// New builds the TUI model and the session it drives. The session must only
// be touched from inside the program, e.g. through Dispatcher.
func New(opts Options) (tea.Model, *playground.Session) {
	ws := newWorkspace()
	sc := &teaScheduler{}
	store := ws.store()
	sink := opts.Sink
	if sink == nil {
		sink = nopSink{}
	}
	sess := playground.New(store, sink, sc, opts.Session)
	// seeding is not an edit
	store.Quietly(func() { store.Load(opts.Seed) })
	ws.focus(0)

	m := model{
		ws:            ws,
		sess:          sess,
		sched:         sc,
		exporter:      opts.Exporter,
		help:          help.New(),
		previewURL:    opts.PreviewURL,
		titleClickIdx: -1,
	}
	if m.exporter == nil {
		m.exporter = playground.DirExporter{Dir: "."}
	}
	return m, sess
}

type nopSink struct{}

func (nopSink) Render(string) error { return nil }

func (m model) Init() tea.Cmd {
	// initial render, like opening the page
	return tea.Batch(textarea.Blink, func() tea.Msg { return runMsg{} })
}
