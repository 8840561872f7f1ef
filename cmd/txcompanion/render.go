package main

import (
	"bytes"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/aymanbagabas/go-udiff"
	"github.com/mark3labs/txcompanion/internal/tui/theme"
)

// highlightYAML colors a YAML document for the terminal. Falls back to the
// plain source when chroma cannot format it.
func highlightYAML(source string) string {
	lexer := lexers.Get("yaml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Get("terminal256")
	}
	if formatter == nil {
		return source
	}
	style := styles.Get("catppuccin-mocha")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return strings.TrimRight(buf.String(), "\n")
}

// renderDiff shows a unified diff between two exports of a model, colored
// with the theme's diff styles. Returns "" when they are equal.
func renderDiff(oldLabel, newLabel, oldText, newText string) string {
	diff := udiff.Unified(oldLabel, newLabel, oldText, newText)
	if diff == "" {
		return ""
	}
	s := theme.Current().S()

	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = s.Muted.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = s.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = s.DiffInsert.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = s.DiffDelete.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

const progressWidth = 30

// progressBar renders a gradient bar with a byte counter. A zero total
// renders an empty bar.
func progressBar(done, total int64) string {
	t := theme.Current()
	filled := 0
	if total > 0 {
		filled = int(float64(progressWidth) * float64(min(done, total)) / float64(total))
	}

	colors := theme.Gradient(t.Primary, t.Secondary, progressWidth)
	var sb strings.Builder
	for i := range progressWidth {
		if i < filled {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i])).Render("█"))
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface1)).Render("░"))
		}
	}
	if total <= 0 {
		return fmt.Sprintf("%s %s", sb.String(), humanBytes(done))
	}
	return fmt.Sprintf("%s %s / %s", sb.String(), humanBytes(done), humanBytes(total))
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func themeStyles() *theme.Styles { return theme.Current().S() }
