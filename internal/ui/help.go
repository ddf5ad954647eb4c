package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown is rendered with glamour for the help overlay.
func helpMarkdown(previewURL string) string {
	var b strings.Builder
	b.WriteString("# jsbin\n\n")
	b.WriteString("Edit **HTML**, **CSS** and **JS** in the three panes. ")
	b.WriteString("The preview lives in your browser")
	if previewURL != "" {
		fmt.Fprintf(&b, " at `%s`", previewURL)
	}
	b.WriteString(".\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", strings.Join(k.Keys(), "`, `"), h.Desc)
		}
	}
	b.WriteString("\n")
	b.WriteString("With **auto** on, the preview refreshes once you stop typing for a moment. ")
	b.WriteString("Script errors show up inside the preview as a `JS Error:` box; they never reach jsbin itself.\n\n")
	b.WriteString("Click the toolbar buttons, or double-click a pane title to focus it.\n")
	return b.String()
}

// renderHelp renders the help text at width; plain markdown is the fallback.
func renderHelp(previewURL string, width int) string {
	md := helpMarkdown(previewURL)
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
