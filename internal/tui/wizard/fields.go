package wizard

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/tui/theme"
	"github.com/mark3labs/txcompanion/internal/wizard"
)

const labelWidth = 22

// cycle moves a choice field forward (delta 1) or backward (delta -1),
// wrapping at both ends. Fields without choices are left alone.
func cycle(f wizard.Field, delta int) bool {
	choices := f.Choices()
	if len(choices) == 0 || !f.Enabled() {
		return false
	}
	i := slices.Index(choices, f.Value())
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = len(choices) - 1
	default:
		i = (i + delta + len(choices)) % len(choices)
	}
	return f.Set(choices[i]) == nil
}

// displayValue is the human form of a field's current value.
func displayValue(f wizard.Field) string {
	switch f := f.(type) {
	case *wizard.Choice:
		if f.Selected >= 0 && f.Selected < len(f.Options) {
			return f.Options[f.Selected].Label
		}
		return ""
	case *wizard.ChannelSelect:
		if f.Selected < 0 {
			return "none free"
		}
		return fmt.Sprintf("CH%d", f.Selected+1)
	case *wizard.SwitchSelect:
		if f.Selected == model.SwitchNone {
			return "---"
		}
		return f.Selected.String()
	case *wizard.Toggle:
		if f.On {
			return "[x]"
		}
		return "[ ]"
	default:
		return f.Value()
	}
}

// renderField draws one labelled row. The text input view replaces the
// value of a focused text field.
func renderField(f wizard.Field, focused bool, input string) string {
	s := theme.Current().S()

	label := lipgloss.NewStyle().Width(labelWidth).Render(f.Label())
	if !f.Enabled() {
		return s.Disabled.Render(label + displayValue(f))
	}

	value := displayValue(f)
	if _, ok := f.(*wizard.TextField); ok && focused {
		return s.LabelFocused.Render(label) + input
	}
	if focused {
		if len(f.Choices()) > 1 {
			value = "‹ " + value + " ›"
		}
		return s.LabelFocused.Render(label) + s.ValueFocused.Render(value)
	}
	return s.Label.Render(label) + s.Value.Render(value)
}

// renderFields lays out every field of a page, one per line.
func renderFields(fields []wizard.Field, focus int, input string) string {
	rows := make([]string, 0, len(fields))
	for i, f := range fields {
		rows = append(rows, renderField(f, i == focus, input))
	}
	return strings.Join(rows, "\n")
}
