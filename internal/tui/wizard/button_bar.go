package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/txcompanion/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonDisabled
	ButtonFocused
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar renders a centered row of buttons.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{buttons: buttons, width: 60}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Render renders the button bar.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()
	base := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)
	normal := base.Foreground(lipgloss.Color(t.FgBase)).Background(lipgloss.Color(t.BgSurface0))
	disabled := base.Foreground(lipgloss.Color(t.FgMuted)).Background(lipgloss.Color(t.BgMantle))
	focused := base.Foreground(lipgloss.Color(t.BgBase)).Background(lipgloss.Color(t.Secondary)).Bold(true)

	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, disabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, focused.Render(btn.Label))
		default:
			rendered = append(rendered, normal.Render(btn.Label))
		}
	}
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// backNextButtons builds the Back and Next/Finish pair.
func backNextButtons(backEnabled bool, nextLabel string) []Button {
	back := ButtonNormal
	if !backEnabled {
		back = ButtonDisabled
	}
	return []Button{
		{Label: "← Back", State: back},
		{Label: nextLabel, State: ButtonFocused},
	}
}
