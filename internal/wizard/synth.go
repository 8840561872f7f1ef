package wizard

import (
	"strings"

	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/radio"
)

// Settings supplies per-stick default channel hints. config.Config
// satisfies it.
type Settings interface {
	// DefaultChannel returns the preferred zero-based channel for a stick
	// (rudder=0, elevator=1, throttle=2, ailerons=3), or -1 when unknown.
	DefaultChannel(stick int) int
}

// Mix labels, longest form first. Opposing pairs stay distinct at every
// length a board allows.
var (
	labelFlapsUp     = []string{"Flaps Up", "FlpUp"}
	labelFlapsDown   = []string{"Flaps Dn", "FlpDn"}
	labelAirbrakeOff = []string{"Airbrake Off", "AirbkOff", "AbkOff"}
	labelAirbrakeOn  = []string{"Airbrake On", "AirbkOn", "AbkOn"}
	labelCut         = []string{"Cut"}
)

// Synthesizer expands logical inputs into mix records for one board.
type Synthesizer struct {
	Board    *radio.Board
	Settings Settings
}

// Expand returns the mixes for one contribution written to the one-based
// destination channel. Order matters: replace mixes must follow the lines
// they override.
func (s Synthesizer) Expand(in Input, weight, channel int, sw model.Switch) []model.Mix {
	switch in {
	case InputRudder, InputElevator, InputThrottle, InputAilerons:
		return []model.Mix{{
			Channel:   channel,
			Source:    s.stickSource(in),
			Weight:    weight,
			Multiplex: model.MultiplexAdd,
		}}
	case InputFlaps:
		return []model.Mix{
			s.maxMix(labelFlapsUp, channel, sw, weight, model.MultiplexAdd),
			s.maxMix(labelFlapsDown, channel, sw, -weight, model.MultiplexAdd),
		}
	case InputAirbrakes:
		return []model.Mix{
			s.maxMix(labelAirbrakeOff, channel, sw, -weight, model.MultiplexAdd),
			s.maxMix(labelAirbrakeOn, channel, sw, weight, model.MultiplexAdd),
		}
	case InputThrottleCut:
		return []model.Mix{
			s.maxMix(labelCut, channel, sw, -100, model.MultiplexReplace),
		}
	default:
		return nil
	}
}

func (s Synthesizer) stickSource(in Input) model.Source {
	stick := in.Stick()
	if s.Board != nil && s.Board.DirectSticks {
		return model.Source{Kind: model.SourceStick, Index: stick}
	}
	idx := -1
	if s.Settings != nil {
		idx = s.Settings.DefaultChannel(stick)
	}
	if idx < 0 {
		idx = stick
	}
	return model.Source{Kind: model.SourceVirtualInput, Index: idx}
}

func (s Synthesizer) maxMix(name []string, channel int, sw model.Switch, weight int, mltpx model.Multiplex) model.Mix {
	return model.Mix{
		Name:      s.label(name),
		Channel:   channel,
		Source:    model.Source{Kind: model.SourceMax},
		Switch:    sw,
		Weight:    weight,
		Multiplex: mltpx,
	}
}

// label picks the longest form that fits the board's mix-name length.
func (s Synthesizer) label(forms []string) string {
	if s.Board == nil || s.Board.MixNameLen <= 0 {
		return forms[0]
	}
	limit := s.Board.MixNameLen
	for _, f := range forms {
		if len(f) <= limit {
			return f
		}
	}
	short := forms[len(forms)-1]
	return strings.TrimSpace(short[:limit])
}
