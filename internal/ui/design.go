package ui

import "github.com/charmbracelet/lipgloss"

// Design centralizes the TUI color palette and common styles.
//
// Palette follows Monokai, the editor theme the panes imitate.
type designTheme struct {
	// Accents
	Primary lipgloss.Color // #a6e22e
	Blue    lipgloss.Color // #66d9ef
	Yellow  lipgloss.Color // #e6db74
	Magenta lipgloss.Color // #f92672
	Orange  lipgloss.Color // #fd971f
	Red     lipgloss.Color // tomato, same as the in-document error overlay

	// Text colors
	Text  lipgloss.Color // #f8f8f2
	Muted lipgloss.Color // #75715e

	// Surfaces
	Bg     lipgloss.Color // #272822
	BgSoft lipgloss.Color // #3e3d32
	Border lipgloss.Color // #49483e

	// Text on accent backgrounds (buttons, chips)
	OnAccent lipgloss.Color // #272822

	// Status bar colors
	BarFG lipgloss.AdaptiveColor
	BarBG lipgloss.AdaptiveColor
}

// Monokai is the global design theme for the TUI.
var Monokai = designTheme{
	Primary: lipgloss.Color("#a6e22e"),
	Blue:    lipgloss.Color("#66d9ef"),
	Yellow:  lipgloss.Color("#e6db74"),
	Magenta: lipgloss.Color("#f92672"),
	Orange:  lipgloss.Color("#fd971f"),
	Red:     lipgloss.Color("#ff6347"),

	Text:  lipgloss.Color("#f8f8f2"),
	Muted: lipgloss.Color("#75715e"),

	Bg:     lipgloss.Color("#272822"),
	BgSoft: lipgloss.Color("#3e3d32"),
	Border: lipgloss.Color("#49483e"),

	OnAccent: lipgloss.Color("#272822"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#f8f8f2"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#3e3d32"},
}

// paneBorder returns the frame style for a pane; focused panes use the accent.
func paneBorder(focused bool) lipgloss.Style {
	c := Monokai.Border
	if focused {
		c = Monokai.Primary
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c)
}

// paneTitle styles the label above each pane.
func paneTitle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if focused {
		return s.Foreground(Monokai.OnAccent).Background(Monokai.Primary)
	}
	return s.Foreground(Monokai.Muted)
}

// Button renders a small accent button label with consistent styling.
func Button(s string, on bool) string {
	bg := Monokai.BgSoft
	fg := Monokai.Text
	if on {
		bg = Monokai.Primary
		fg = Monokai.OnAccent
	}
	return lipgloss.NewStyle().Bold(true).Foreground(fg).Background(bg).Padding(0, 1).Render(s)
}

// ChipStyle returns a style for colored nuggets in the status bar.
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Monokai.OnAccent).Background(bg).Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Monokai.BarFG).Background(Monokai.BarBG)
}
