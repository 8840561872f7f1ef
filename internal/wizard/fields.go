package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/txcompanion/internal/model"
)

// Field is one control on a wizard page. Presentation layers read and set
// fields through their text form so the TUI and answers files share one
// path.
type Field interface {
	Key() string
	Label() string
	Enabled() bool
	// Value returns the current value in the form accepted by Set.
	Value() string
	// Set changes the value. It returns an error for values the field
	// does not offer.
	Set(value string) error
	// Choices lists the values Set accepts, in display order. Nil for
	// free text.
	Choices() []string
}

type field struct {
	key     string
	label   string
	enabled func() bool
}

func (f *field) Key() string   { return f.key }
func (f *field) Label() string { return f.label }

func (f *field) Enabled() bool {
	return f.enabled == nil || f.enabled()
}

// Option is one entry of a Choice.
type Option struct {
	Key   string
	Label string
}

// Choice is a radio-button group.
type Choice struct {
	field
	Options  []Option
	Selected int
}

func newChoice(key, label string, options ...Option) *Choice {
	return &Choice{field: field{key: key, label: label}, Options: options}
}

// SelectedKey returns the key of the selected option.
func (c *Choice) SelectedKey() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected].Key
}

// Is reports whether the option with key is selected.
func (c *Choice) Is(key string) bool { return c.SelectedKey() == key }

func (c *Choice) Value() string { return c.SelectedKey() }

func (c *Choice) Set(value string) error {
	for i, o := range c.Options {
		if strings.EqualFold(o.Key, value) {
			c.Selected = i
			return nil
		}
	}
	return fmt.Errorf("%s: invalid choice %q (want one of %s)", c.key, value, strings.Join(c.Choices(), ", "))
}

func (c *Choice) Choices() []string {
	out := make([]string, len(c.Options))
	for i, o := range c.Options {
		out[i] = o.Key
	}
	return out
}

// ChannelSelect offers the free channels. Values are one-based channel
// numbers; Offered and Selected are zero-based.
type ChannelSelect struct {
	field
	Offered  []int
	Selected int
}

func newChannelSelect(key, label string, enabled func() bool) *ChannelSelect {
	return &ChannelSelect{field: field{key: key, label: label, enabled: enabled}, Selected: -1}
}

func (c *ChannelSelect) Value() string {
	if c.Selected < 0 {
		return ""
	}
	return strconv.Itoa(c.Selected + 1)
}

func (c *ChannelSelect) Set(value string) error {
	v := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(value)), "CH")
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: invalid channel %q", c.key, value)
	}
	for _, ch := range c.Offered {
		if ch == n-1 {
			c.Selected = ch
			return nil
		}
	}
	return fmt.Errorf("%s: channel %d is not available", c.key, n)
}

func (c *ChannelSelect) Choices() []string {
	out := make([]string, len(c.Offered))
	for i, ch := range c.Offered {
		out[i] = strconv.Itoa(ch + 1)
	}
	return out
}

// SwitchSelect picks an enable switch. Disabled selects read as
// SwitchNone.
type SwitchSelect struct {
	field
	Options  []model.Switch
	Selected model.Switch
}

func newSwitchSelect(key, label string, options []model.Switch, enabled func() bool) *SwitchSelect {
	return &SwitchSelect{field: field{key: key, label: label, enabled: enabled}, Options: options}
}

// Switch returns the selected switch, or SwitchNone when disabled.
func (s *SwitchSelect) Switch() model.Switch {
	if !s.Enabled() {
		return model.SwitchNone
	}
	return s.Selected
}

func (s *SwitchSelect) Value() string {
	text, _ := s.Selected.MarshalText()
	return string(text)
}

func (s *SwitchSelect) Set(value string) error {
	sw, err := model.ParseSwitch(value)
	if err != nil {
		return fmt.Errorf("%s: %w", s.key, err)
	}
	for _, o := range s.Options {
		if o == sw {
			s.Selected = sw
			return nil
		}
	}
	return fmt.Errorf("%s: switch %s is not available on this radio", s.key, sw)
}

func (s *SwitchSelect) Choices() []string {
	out := make([]string, len(s.Options))
	for i, o := range s.Options {
		text, _ := o.MarshalText()
		out[i] = string(text)
	}
	return out
}

// Toggle is a checkbox.
type Toggle struct {
	field
	On bool
}

func newToggle(key, label string) *Toggle {
	return &Toggle{field: field{key: key, label: label}}
}

func (t *Toggle) Value() string {
	if t.On {
		return "yes"
	}
	return "no"
}

func (t *Toggle) Set(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "on", "1":
		t.On = true
	case "no", "false", "off", "0":
		t.On = false
	default:
		return fmt.Errorf("%s: invalid toggle value %q", t.key, value)
	}
	return nil
}

func (t *Toggle) Choices() []string { return []string{"no", "yes"} }

// TextField is a free-text entry bounded to MaxLen characters.
type TextField struct {
	field
	Text   string
	MaxLen int
}

func (t *TextField) Value() string { return t.Text }

func (t *TextField) Set(value string) error {
	if t.MaxLen > 0 && len([]rune(value)) > t.MaxLen {
		return fmt.Errorf("%s: at most %d characters", t.key, t.MaxLen)
	}
	t.Text = value
	return nil
}

func (t *TextField) Choices() []string { return nil }
