// Package wizard is the terminal front end of the model wizard. It drives
// a wizard.Wizard page by page and leaves the assembled session behind for
// the caller.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/txcompanion/internal/tui/theme"
	"github.com/mark3labs/txcompanion/internal/wizard"
)

// ErrCancelled is returned by Run when the user leaves the wizard.
var ErrCancelled = errors.New("wizard cancelled by user")

// Model is the BubbleTea model wrapping one wizard run.
type Model struct {
	wiz       *wizard.Wizard
	focus     int
	input     textinput.Model
	showHelp  bool
	cancelled bool
	width     int
	height    int
}

// New wraps w, starting it if it has not been started.
func New(w *wizard.Wizard) *Model {
	if w.Current() == nil {
		w.Start()
	}
	m := &Model{wiz: w, width: 80, height: 30}
	m.enterPage()
	return m
}

// Run shows the wizard until it completes or the user cancels.
func Run(w *wizard.Wizard) error {
	p := tea.NewProgram(New(w))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	m, ok := final.(*Model)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}
	if m.cancelled || !w.Done() {
		return ErrCancelled
	}
	return nil
}

// Cancelled reports whether the user quit without finishing.
func (m *Model) Cancelled() bool { return m.cancelled }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(min(40, m.modalWidth()-labelWidth-8))
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.focusedText() != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	text := m.focusedText()

	if key == "ctrl+c" {
		m.cancelled = true
		return m, tea.Quit
	}
	if m.showHelp {
		switch key {
		case "esc", "f1", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	switch key {
	case "f1":
		m.showHelp = true
		return m, nil
	case "?":
		if text == nil {
			m.showHelp = true
			return m, nil
		}
	case "esc":
		if !m.wiz.Back() {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, m.enterPage()
	case "enter":
		if !m.wiz.Next() {
			return m, nil
		}
		if m.wiz.Done() {
			return m, tea.Quit
		}
		return m, m.enterPage()
	case "tab", "down":
		return m, m.moveFocus(1)
	case "shift+tab", "up":
		return m, m.moveFocus(-1)
	}

	if text != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		// CharLimit keeps the input within MaxLen, so Set cannot refuse
		_ = text.Set(m.input.Value())
		return m, cmd
	}

	fields := m.wiz.Current().Fields()
	if m.focus < 0 || m.focus >= len(fields) {
		return m, nil
	}
	switch key {
	case "right", "l", "space", " ":
		cycle(fields[m.focus], 1)
	case "left", "h":
		cycle(fields[m.focus], -1)
	}
	return m, nil
}

// enterPage resets focus to the first enabled field of the active page.
func (m *Model) enterPage() tea.Cmd {
	m.focus = -1
	m.showHelp = false
	return m.moveFocus(1)
}

// moveFocus steps to the next enabled field in direction delta, wrapping.
func (m *Model) moveFocus(delta int) tea.Cmd {
	fields := m.wiz.Current().Fields()
	if len(fields) == 0 {
		m.focus = -1
		return nil
	}
	start := m.focus
	for range fields {
		m.focus = (m.focus + delta + len(fields)) % len(fields)
		if fields[m.focus].Enabled() {
			return m.syncInput()
		}
	}
	m.focus = start
	return nil
}

// syncInput points the text input at the focused text field, if any.
func (m *Model) syncInput() tea.Cmd {
	f := m.focusedText()
	if f == nil {
		m.input.Blur()
		return nil
	}
	m.input = newInput(f, m.modalWidth())
	return m.input.Focus()
}

func (m *Model) focusedText() *wizard.TextField {
	p := m.wiz.Current()
	if p == nil {
		return nil
	}
	fields := p.Fields()
	if m.focus < 0 || m.focus >= len(fields) {
		return nil
	}
	f, _ := fields[m.focus].(*wizard.TextField)
	return f
}

func newInput(f *wizard.TextField, modalWidth int) textinput.Model {
	t := theme.Current()
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = f.Label()
	ti.CharLimit = f.MaxLen
	ti.SetWidth(max(10, min(40, modalWidth-labelWidth-8)))
	ti.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBright)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Secondary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	ti.SetValue(f.Text)
	return ti
}

func (m *Model) modalWidth() int {
	w := m.width - 10
	if w < 60 {
		w = 60
	}
	if w > 100 {
		w = 100
	}
	return w
}

// View renders the wizard UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(m.render()).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})
	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render builds the centered modal for the active page.
func (m *Model) render() string {
	p := m.wiz.Current()
	if p == nil {
		return ""
	}
	s := theme.Current().S()
	width := m.modalWidth()
	inner := width - 6

	var sections []string
	step := len(m.wiz.History())
	sections = append(sections, s.HeaderTitle.Render(fmt.Sprintf("%s - Step %d: %s", m.title(), step, p.Title())), "")

	if m.showHelp {
		sections = append(sections, renderHelp(p.Title(), p.Help(), inner), "",
			renderHintBar("esc", "close help", "ctrl+c", "quit"))
		return m.place(s.ModalContainer.Width(width).Render(strings.Join(sections, "\n")))
	}

	if text := p.Text(); text != "" {
		sections = append(sections, s.Text.Width(inner).Render(text), "")
	}
	if fields := p.Fields(); len(fields) > 0 {
		sections = append(sections, renderFields(fields, m.focus, m.input.View()), "")
	}
	if notice := p.Notice(); notice != "" {
		if p.ID() == wizard.PageConclusion {
			sections = append(sections, renderSummary(notice, inner), "")
		} else {
			sections = append(sections, s.Notice.Width(inner).Render(notice), "")
		}
	}
	if problem := p.Problem(); problem != "" {
		sections = append(sections, s.Problem.Width(inner).Render(problem), "")
	}

	next := "Next →"
	if p.NextID() == wizard.PageNone {
		next = "Finish"
	}
	bar := NewButtonBar(backNextButtons(step > 1, next))
	bar.SetWidth(inner)
	sections = append(sections, bar.Render(), "",
		renderHintBar("↑↓", "field", "←→", "change", "enter", "next", "esc", "back", "f1", "help"))

	return m.place(s.ModalContainer.Width(width).Render(strings.Join(sections, "\n")))
}

// title names the radio being configured.
func (m *Model) title() string {
	if b := m.wiz.Session().Board; b != nil {
		return b.Name
	}
	return "Model Wizard"
}

func (m *Model) place(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
