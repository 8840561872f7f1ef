package model

import (
	"fmt"
	"strings"
)

// Switch is a physical switch in a given position. The zero value means
// "no switch" (always active).
type Switch struct {
	Name     string
	Position int // 0 = up, 1 = middle, 2 = down
}

// SwitchNone is the distinguished "no switch" value.
var SwitchNone = Switch{}

var positionWords = [...]string{"up", "mid", "down"}
var positionGlyphs = [...]string{"↑", "-", "↓"}

// IsZero reports whether s is SwitchNone.
func (s Switch) IsZero() bool { return s == SwitchNone }

// String renders the switch the way the radio does, e.g. "SF↓".
func (s Switch) String() string {
	if s.IsZero() {
		return "---"
	}
	if s.Position < 0 || s.Position >= len(positionGlyphs) {
		return fmt.Sprintf("%s%d", s.Name, s.Position)
	}
	return s.Name + positionGlyphs[s.Position]
}

// MarshalText encodes the switch as "SF-down", or "none".
func (s Switch) MarshalText() ([]byte, error) {
	if s.IsZero() {
		return []byte("none"), nil
	}
	if s.Position < 0 || s.Position >= len(positionWords) {
		return nil, fmt.Errorf("switch %s: invalid position %d", s.Name, s.Position)
	}
	return []byte(s.Name + "-" + positionWords[s.Position]), nil
}

// UnmarshalText accepts the forms produced by MarshalText and String.
func (s *Switch) UnmarshalText(text []byte) error {
	parsed, err := ParseSwitch(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSwitch parses "SF-down", "SF↓", "SF2", "none" or "".
func ParseSwitch(text string) (Switch, error) {
	text = strings.TrimSpace(text)
	switch strings.ToLower(text) {
	case "", "none", "---":
		return SwitchNone, nil
	}

	if name, pos, ok := strings.Cut(text, "-"); ok && name != "" {
		if pos == "" {
			return Switch{Name: strings.ToUpper(name), Position: 1}, nil
		}
		for i, w := range positionWords {
			if strings.EqualFold(pos, w) {
				return Switch{Name: strings.ToUpper(name), Position: i}, nil
			}
		}
		return SwitchNone, fmt.Errorf("invalid switch position %q in %q", pos, text)
	}

	for i, g := range positionGlyphs {
		if g != "-" && strings.HasSuffix(text, g) {
			name := strings.TrimSuffix(text, g)
			if name != "" {
				return Switch{Name: strings.ToUpper(name), Position: i}, nil
			}
		}
	}

	last := text[len(text)-1]
	if last >= '0' && last <= '2' && len(text) > 1 {
		return Switch{Name: strings.ToUpper(text[:len(text)-1]), Position: int(last - '0')}, nil
	}

	return SwitchNone, fmt.Errorf("invalid switch %q", text)
}
