package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"jsbin/internal/refresh"
	appver "jsbin/internal/version"
)

// mouse zones
const (
	zoneRun      = "btn.run"
	zoneAuto     = "btn.auto"
	zoneClear    = "btn.clear"
	zoneDownload = "btn.download"
	zoneHelp     = "btn.help"
)

func titleZone(i int) string { return fmt.Sprintf("title.%d", i) }
func paneZone(i int) string  { return fmt.Sprintf("pane.%d", i) }

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "starting jsbin…\n"
	}

	bodyHeight := m.height - chrome
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	var body string
	switch {
	case m.confirm != nil:
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Monokai.Magenta).
			Padding(1, 2).
			Render(m.confirm.View())
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, box)
	case m.showHelp:
		body = clipLines(m.helpView, bodyHeight)
	default:
		body = m.renderPanes()
	}

	var b strings.Builder
	b.WriteString(m.renderToolbar())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderStatusBarLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return zone.Scan(b.String())
}

func (m model) renderToolbar() string {
	buttons := []string{
		zone.Mark(zoneRun, Button("▶ Run", false)),
		zone.Mark(zoneAuto, Button("Auto", m.sess.Auto())),
		zone.Mark(zoneClear, Button("Clear", false)),
		zone.Mark(zoneDownload, Button("Download", false)),
		zone.Mark(zoneHelp, Button("?", m.showHelp)),
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(buttons, " "))
	right := ""
	if m.notice != "" {
		right = lipgloss.NewStyle().Foreground(Monokai.Muted).Render(m.notice)
	}
	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m model) renderPanes() string {
	cols := make([]string, 0, len(m.ws.panes))
	for i, p := range m.ws.panes {
		focused := i == m.ws.focused
		title := fmt.Sprintf("%s · %d lines", p.role.Title(), lineCount(p.text))
		col := lipgloss.JoinVertical(lipgloss.Left,
			zone.Mark(titleZone(i), paneTitle(focused).Render(title)),
			zone.Mark(paneZone(i), paneBorder(focused).Render(p.ta.View())),
		)
		cols = append(cols, col)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// statusColor picks the chip color for the status slot text.
func statusColor(s string) lipgloss.Color {
	switch {
	case s == refresh.Updated:
		return Monokai.Primary
	case s == refresh.Cleared:
		return Monokai.Yellow
	case s == refresh.Downloaded:
		return Monokai.Blue
	case strings.HasSuffix(s, "failed") || strings.Contains(s, "failed:"):
		return Monokai.Red
	}
	return Monokai.Orange
}

// renderStatusBarLine shows the status slot on the left and the preview
// address and version on the right.
func (m model) renderStatusBarLine() string {
	status := m.sess.Status().Status()
	auto := "auto off"
	if m.sess.Auto() {
		auto = fmt.Sprintf("auto %s", m.sess.Trigger().Debounce())
	}
	left := ChipStyle(statusColor(status)).Render(status) + " " + auto
	if m.sess.Trigger().Pending() {
		left += " …"
	}
	var right []string
	if m.previewURL != "" {
		right = append(right, m.previewURL)
	}
	right = append(right, "v"+appver.AppVersion)
	return renderStatusBar(m.width, left, strings.Join(right, "  "))
}

// renderStatusBar draws a single-line status bar at the given width
// with left/right-aligned content.
func renderStatusBar(width int, left, right string) string {
	w := width
	if w <= 0 {
		w = 100
	}
	lw := xansi.StringWidth(left)
	rw := xansi.StringWidth(right)
	if lw+rw+1 > w {
		// right side goes first
		right = runewidth.Truncate(xansi.Strip(right), max(0, w-lw-1), "…")
		rw = xansi.StringWidth(right)
	}
	pad := w - lw - rw
	if pad < 0 {
		pad = 0
	}
	return StatusBarBase().Render(left + strings.Repeat(" ", pad) + right)
}

// clipLines keeps the first n lines of s.
func clipLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
