// Package theme holds the color palette and the pre-built lipgloss styles
// shared by the wizard TUI and the styled CLI output.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Diff colors
	DiffInsertBg string
	DiffDeleteBg string

	styles     *Styles
	stylesOnce sync.Once
}

var (
	current     *Theme
	currentOnce sync.Once
)

// Current returns the active theme.
func Current() *Theme {
	currentOnce.Do(func() { current = NewCatppuccinMocha() })
	return current
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		Text:        lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Muted:       lipgloss.NewStyle().Foreground(c(t.FgMuted)),

		Label:        lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		LabelFocused: lipgloss.NewStyle().Foreground(c(t.Secondary)).Bold(true),
		Value:        lipgloss.NewStyle().Foreground(c(t.FgBright)),
		ValueFocused: lipgloss.NewStyle().Foreground(c(t.BgBase)).Background(c(t.Secondary)).Padding(0, 1),
		Disabled:     lipgloss.NewStyle().Foreground(c(t.FgMuted)).Faint(true),

		Notice:  lipgloss.NewStyle().Foreground(c(t.Warning)),
		Problem: lipgloss.NewStyle().Foreground(c(t.Error)).Bold(true),
		Success: lipgloss.NewStyle().Foreground(c(t.Success)),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Secondary)).
			Background(c(t.BgBase)).
			Padding(1, 2),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgBright)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgSubtle)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface1)),

		DiffInsert: lipgloss.NewStyle().Foreground(c(t.Success)).Background(c(t.DiffInsertBg)),
		DiffDelete: lipgloss.NewStyle().Foreground(c(t.Error)).Background(c(t.DiffDeleteBg)),
		DiffHunk:   lipgloss.NewStyle().Foreground(c(t.Info)),
	}
}
