package wizard

import (
	"strings"
	"unicode"

	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/radio"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Options are the model option flags chosen on the options page.
type Options struct {
	ThrottleTimer bool
	FlightTimer   bool
}

// Names returns the enabled option labels in summary order.
func (o Options) Names() []string {
	var out []string
	if o.ThrottleTimer {
		out = append(out, "Throttle Timer")
	}
	if o.FlightTimer {
		out = append(out, "Flight Timer")
	}
	return out
}

// Heli holds the helicopter answers. They do not produce mixes; they are
// reported in the summary so the swash can be set up by hand.
type Heli struct {
	Swash  string // 90, 120, 120x, 140
	Gyro   string // none, switch, pot
	Flybar bool
}

// Session is the state of one wizard run.
type Session struct {
	Vehicle   model.Vehicle
	Name      string
	Options   Options
	Heli      Heli
	Completed bool

	Book     *ChannelBook
	Board    *radio.Board
	Settings Settings
	// Original is the model record the wizard was opened on. Identity and
	// category are carried over to the result.
	Original model.Configuration
}

// NewSession starts a session over original for the given board.
func NewSession(board *radio.Board, settings Settings, original model.Configuration) *Session {
	return &Session{
		Name:     original.Name,
		Book:     NewChannelBook(radio.WizardChannels),
		Board:    board,
		Settings: settings,
		Original: original,
	}
}

// defaultChannel returns the settings hint for the stick behind in, or -1.
func (s *Session) defaultChannel(in Input) int {
	if s.Settings == nil || in.Stick() < 0 {
		return -1
	}
	return s.Settings.DefaultChannel(in.Stick())
}

func (s *Session) synthesizer() Synthesizer {
	return Synthesizer{Board: s.Board, Settings: s.Settings}
}

func (s *Session) nameLen() int {
	if s.Board == nil {
		return 0
	}
	return s.Board.ModelNameLen
}

func (s *Session) switchChoices() []model.Switch {
	if s.Board == nil {
		return []model.Switch{model.SwitchNone}
	}
	return s.Board.SwitchChoices()
}

// SanitizeName strips accents, drops characters the radio cannot display
// and truncates to maxLen characters (no limit when maxLen <= 0).
func SanitizeName(name string, maxLen int) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripAccents, name)
	if err != nil {
		plain = name
	}

	var b strings.Builder
	n := 0
	for _, r := range plain {
		if !nameRune(r) {
			continue
		}
		if maxLen > 0 && n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return strings.TrimSpace(b.String())
}

func nameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("_-., ", r)
}
