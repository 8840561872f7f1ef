package wizard

import (
	"strings"
	"testing"

	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/radio"
	"github.com/stretchr/testify/require"
)

// channelOrder is a Settings stub: index = stick, value = channel.
type channelOrder []int

func (o channelOrder) DefaultChannel(stick int) int {
	if stick < 0 || stick >= len(o) {
		return -1
	}
	return o[stick]
}

var reta = channelOrder{0, 1, 2, 3}

func board(t *testing.T, id string) *radio.Board {
	t.Helper()
	b, err := radio.Lookup(id)
	require.NoError(t, err)
	return b
}

func TestExpand_Flaps(t *testing.T) {
	s := Synthesizer{Board: board(t, "x9d+"), Settings: reta}
	sw := model.Switch{Name: "SC", Position: 2}

	for _, w := range []int{100, 40, -70} {
		mixes := s.Expand(InputFlaps, w, 5, sw)
		require.Len(t, mixes, 2)
		require.Equal(t, w, mixes[0].Weight)
		require.Equal(t, -w, mixes[1].Weight)
		for _, m := range mixes {
			require.Equal(t, sw, m.Switch)
			require.Equal(t, model.SourceMax, m.Source.Kind)
			require.Equal(t, 5, m.Channel)
			require.Equal(t, model.MultiplexAdd, m.Multiplex)
		}
		require.Equal(t, "Flaps Up", mixes[0].Name)
		require.Equal(t, "Flaps Dn", mixes[1].Name)
	}
}

func TestExpand_ThrottleCut(t *testing.T) {
	s := Synthesizer{Board: board(t, "x9d+"), Settings: reta}
	sw := model.Switch{Name: "SF", Position: 2}

	for _, w := range []int{-100, 0, 35, 100} {
		mixes := s.Expand(InputThrottleCut, w, 1, sw)
		require.Len(t, mixes, 1)
		require.Equal(t, -100, mixes[0].Weight)
		require.Equal(t, model.MultiplexReplace, mixes[0].Multiplex)
		require.Equal(t, "Cut", mixes[0].Name)
		require.Equal(t, sw, mixes[0].Switch)
	}
}

func TestExpand_Airbrakes(t *testing.T) {
	s := Synthesizer{Board: board(t, "x10"), Settings: reta}
	sw := model.Switch{Name: "SB", Position: 0}

	mixes := s.Expand(InputAirbrakes, 80, 6, sw)
	require.Len(t, mixes, 2)
	require.Equal(t, "AirbkOff", mixes[0].Name)
	require.Equal(t, -80, mixes[0].Weight)
	require.Equal(t, "AirbkOn", mixes[1].Name)
	require.Equal(t, 80, mixes[1].Weight)

	unbounded := Synthesizer{Settings: reta}
	mixes = unbounded.Expand(InputAirbrakes, 80, 6, sw)
	require.Equal(t, "Airbrake Off", mixes[0].Name)
	require.Equal(t, "Airbrake On", mixes[1].Name)
}

func TestExpand_StickSources(t *testing.T) {
	tests := []struct {
		name     string
		board    string
		settings Settings
		input    Input
		want     model.Source
	}{
		{"virtual input follows hint", "x9d+", channelOrder{3, 1, 2, 0}, InputRudder, model.Source{Kind: model.SourceVirtualInput, Index: 3}},
		{"missing hint falls back to stick", "x9d+", channelOrder{}, InputAilerons, model.Source{Kind: model.SourceVirtualInput, Index: 3}},
		{"nil settings", "x7", nil, InputElevator, model.Source{Kind: model.SourceVirtualInput, Index: 1}},
		{"direct stick board", "sky9x", channelOrder{3, 1, 2, 0}, InputThrottle, model.Source{Kind: model.SourceStick, Index: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Synthesizer{Board: board(t, tt.board), Settings: tt.settings}
			mixes := s.Expand(tt.input, -100, 3, model.SwitchNone)
			require.Len(t, mixes, 1)
			require.Equal(t, tt.want, mixes[0].Source)
			require.Equal(t, -100, mixes[0].Weight)
			require.Equal(t, 3, mixes[0].Channel)
			require.True(t, mixes[0].Switch.IsZero())
		})
	}
}

func TestExpand_LabelsFitBoard(t *testing.T) {
	tests := []struct {
		board string
		input Input
		want  [2]string
	}{
		{"x9d+", InputFlaps, [2]string{"Flaps Up", "Flaps Dn"}},
		{"x9d+", InputAirbrakes, [2]string{"AirbkOff", "AirbkOn"}},
		{"x7", InputFlaps, [2]string{"Flaps Up", "Flaps Dn"}},
		{"x7", InputAirbrakes, [2]string{"AirbkOff", "AirbkOn"}},
		{"sky9x", InputFlaps, [2]string{"FlpUp", "FlpDn"}},
		{"sky9x", InputAirbrakes, [2]string{"AbkOff", "AbkOn"}},
	}

	for _, tt := range tests {
		t.Run(tt.board+"/"+tt.input.String(), func(t *testing.T) {
			b := board(t, tt.board)
			s := Synthesizer{Board: b, Settings: reta}
			mixes := s.Expand(tt.input, 100, 1, model.Switch{Name: "SA", Position: 2})
			require.Len(t, mixes, 2)
			require.NotEqual(t, mixes[0].Name, mixes[1].Name, "opposing mixes share a label")
			for i, m := range mixes {
				require.Equal(t, tt.want[i], m.Name)
				require.LessOrEqual(t, len(m.Name), b.MixNameLen)
				require.Equal(t, strings.TrimSpace(m.Name), m.Name)
			}
		})
	}
}

func TestLabel_TruncatesAndTrims(t *testing.T) {
	s := Synthesizer{Board: &radio.Board{MixNameLen: 6}}
	require.Equal(t, "Flaps", s.label([]string{"Flaps Up"}))
	require.Equal(t, "Cut", s.label(labelCut))
}

func TestExpand_None(t *testing.T) {
	s := Synthesizer{Board: board(t, "x9d+"), Settings: reta}
	require.Empty(t, s.Expand(InputNone, 100, 1, model.SwitchNone))
}
