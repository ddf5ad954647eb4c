package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Run      key.Binding
	Auto     key.Binding
	Clear    key.Binding
	Download key.Binding
	Next     key.Binding
	Prev     key.Binding
	Pane1    key.Binding
	Pane2    key.Binding
	Pane3    key.Binding
	Indent   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Run:      key.NewBinding(key.WithKeys("ctrl+r", "f5", "alt+enter"), key.WithHelp("ctrl+r", "run")),
	Auto:     key.NewBinding(key.WithKeys("ctrl+t", "f6"), key.WithHelp("ctrl+t", "auto")),
	Download: key.NewBinding(key.WithKeys("ctrl+s", "f7"), key.WithHelp("ctrl+s", "download")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+x", "f8"), key.WithHelp("ctrl+x", "clear")),
	Next:     key.NewBinding(key.WithKeys("ctrl+l", "alt+right"), key.WithHelp("ctrl+l", "next pane")),
	Prev:     key.NewBinding(key.WithKeys("ctrl+h", "alt+left"), key.WithHelp("ctrl+h", "prev pane")),
	Pane1:    key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "html")),
	Pane2:    key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "css")),
	Pane3:    key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "js")),
	Indent:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
	Help:     key.NewBinding(key.WithKeys("f1", "ctrl+g"), key.WithHelp("f1", "help")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Auto, k.Download, k.Clear, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.Auto, k.Download, k.Clear},
		{k.Next, k.Prev, k.Pane1, k.Pane2, k.Pane3, k.Indent},
		{k.Help, k.Quit},
	}
}
