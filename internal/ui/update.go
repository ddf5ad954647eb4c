package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	zone "github.com/lrstanley/bubblezone"

	"jsbin/internal/system"
)

// chrome is the number of rows outside the panes: toolbar, status bar, key help.
const chrome = 3

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	// timers scheduled while handling msg become ticks
	return next, tea.Batch(cmd, next.sched.drain())
}

func (m model) update(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerMsg:
		m.sched.fire(msg)
		return m, nil
	case dispatchMsg:
		msg.fn()
		close(msg.done)
		return m, nil
	case runMsg:
		m.sess.Run()
		return m, nil
	case serverErrMsg:
		m.notice = fmt.Sprintf("preview server: %v", msg.err)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ws.setSize(msg.Width, msg.Height-chrome)
		if m.showHelp {
			m.helpView = renderHelp(m.previewURL, m.width)
		}
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// the clear confirmation owns input while open
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "esc", "q", "f1", "ctrl+g", "enter":
				m.showHelp = false
			}
			return m, nil
		}
		return m.updateKey(msg)
	}

	// anything else (cursor blink) goes to the focused pane
	var cmd tea.Cmd
	p := m.ws.current()
	p.ta, cmd = p.ta.Update(msg)
	return m, cmd
}

func (m model) updateKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Run):
		m.sess.Run()
		return m, nil
	case key.Matches(msg, keys.Auto):
		m.sess.ToggleAuto()
		return m, nil
	case key.Matches(msg, keys.Download):
		m.download()
		return m, nil
	case key.Matches(msg, keys.Clear):
		return m.openConfirm()
	case key.Matches(msg, keys.Help):
		m.showHelp = true
		m.helpView = renderHelp(m.previewURL, m.width)
		return m, nil
	case key.Matches(msg, keys.Next):
		m.ws.focus((m.ws.focused + 1) % len(m.ws.panes))
		return m, nil
	case key.Matches(msg, keys.Prev):
		m.ws.focus((m.ws.focused + len(m.ws.panes) - 1) % len(m.ws.panes))
		return m, nil
	case key.Matches(msg, keys.Pane1):
		m.ws.focus(0)
		return m, nil
	case key.Matches(msg, keys.Pane2):
		m.ws.focus(1)
		return m, nil
	case key.Matches(msg, keys.Pane3):
		m.ws.focus(2)
		return m, nil
	case key.Matches(msg, keys.Indent):
		p := m.ws.current()
		p.ta.InsertString(softTab)
		p.text = p.ta.Value()
		m.sess.Store().Notify(p.role)
		return m, nil
	}
	return m.edit(msg)
}

// edit forwards a key to the focused pane and reports a change when the
// text actually moved.
func (m model) edit(msg tea.Msg) (model, tea.Cmd) {
	p := m.ws.current()
	before := p.ta.Value()
	var cmd tea.Cmd
	p.ta, cmd = p.ta.Update(msg)
	if after := p.ta.Value(); after != before {
		p.text = after
		m.sess.Store().Notify(p.role)
	}
	return m, cmd
}

func (m model) updateMouse(msg tea.MouseMsg) (model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	switch {
	case zone.Get(zoneRun).InBounds(msg):
		m.sess.Run()
		return m, nil
	case zone.Get(zoneAuto).InBounds(msg):
		m.sess.ToggleAuto()
		return m, nil
	case zone.Get(zoneClear).InBounds(msg):
		return m.openConfirm()
	case zone.Get(zoneDownload).InBounds(msg):
		m.download()
		return m, nil
	case zone.Get(zoneHelp).InBounds(msg):
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.helpView = renderHelp(m.previewURL, m.width)
		}
		return m, nil
	}
	for i := range m.ws.panes {
		if zone.Get(titleZone(i)).InBounds(msg) {
			m.titleClicked(i, time.Now())
			return m, nil
		}
		if zone.Get(paneZone(i)).InBounds(msg) {
			m.ws.focus(i)
			return m, nil
		}
	}
	return m, nil
}

// titleClicked focuses pane i on the second click within doubleClick.
func (m *model) titleClicked(i int, at time.Time) {
	if m.titleClickIdx == i && at.Sub(m.titleClickAt) <= doubleClick {
		m.sess.Store().Focus(m.ws.panes[i].role)
		m.titleClickIdx = -1
		return
	}
	m.titleClickIdx = i
	m.titleClickAt = at
}

func (m *model) download() {
	where, err := m.sess.Download(m.exporter)
	if err != nil {
		system.Logger.Error("download failed", "err", err)
		m.notice = ""
		return
	}
	m.notice = "saved " + where
}

func (m model) openConfirm() (model, tea.Cmd) {
	m.ws.confirmClear = false
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all editors?").
				Description("This cannot be undone.").
				Affirmative("Clear").
				Negative("Cancel").
				Value(&m.ws.confirmClear),
		),
	).WithShowHelp(false).WithWidth(44)
	return m, m.confirm.Init()
}

func (m model) updateConfirm(msg tea.Msg) (model, tea.Cmd) {
	fm, cmd := m.confirm.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.confirm = f
	}
	switch m.confirm.State {
	case huh.StateCompleted:
		if m.ws.confirmClear {
			m.sess.Clear()
			m.notice = ""
		}
		m.confirm = nil
		return m, nil
	case huh.StateAborted:
		m.confirm = nil
		return m, nil
	}
	return m, cmd
}
