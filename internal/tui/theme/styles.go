package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles.
type Styles struct {
	HeaderTitle lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style

	// Wizard fields
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Value        lipgloss.Style
	ValueFocused lipgloss.Style
	Disabled     lipgloss.Style

	Notice  lipgloss.Style
	Problem lipgloss.Style
	Success lipgloss.Style

	ModalContainer lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	DiffInsert lipgloss.Style
	DiffDelete lipgloss.Style
	DiffHunk   lipgloss.Style
}
