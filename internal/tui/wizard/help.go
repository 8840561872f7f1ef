package wizard

import (
	"strings"

	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
)

// renderMarkdown renders doc with glamour. Falls back to plain wrapping if
// glamour fails.
func renderMarkdown(doc string, width int) string {
	if width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(doc)
	}
	rendered, err := r.Render(doc)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(doc)
	}
	return strings.TrimSuffix(rendered, "\n")
}

func renderHelp(title, help string, width int) string {
	return renderMarkdown("## "+title+"\n\n"+help, width)
}

// renderSummary shows the conclusion page's channel report verbatim.
func renderSummary(summary string, width int) string {
	return renderMarkdown("```\n"+strings.TrimRight(summary, "\n")+"\n```", width)
}
