package radio

import (
	"testing"

	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	b, err := Lookup(" X9D+ ")
	require.NoError(t, err)
	require.Equal(t, "x9d+", b.ID)
	require.Equal(t, "taranis-x9", b.Family)
	require.False(t, b.DirectSticks)

	b, err = Lookup("sky9x")
	require.NoError(t, err)
	require.True(t, b.DirectSticks)

	_, err = Lookup("nope")
	require.Error(t, err)
}

func TestBoardsSorted(t *testing.T) {
	all := Boards()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		require.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestIDFromFirmwareType(t *testing.T) {
	id, err := IDFromFirmwareType("opentx-x9d+-noheli-en")
	require.NoError(t, err)
	require.Equal(t, "x9d+", id)

	prefix, err := FirmwarePrefix("opentx-x7-lua")
	require.NoError(t, err)
	require.Equal(t, "opentx-x7", prefix)

	_, err = IDFromFirmwareType("opentx")
	require.Error(t, err)
}

func TestSwitchChoices(t *testing.T) {
	b, err := Lookup("x7")
	require.NoError(t, err)

	choices := b.SwitchChoices()
	require.Equal(t, model.SwitchNone, choices[0])
	// 4 three-position + 2 two-position switches
	require.Len(t, choices, 1+4*3+2*2)
	require.True(t, b.HasSwitch(model.Switch{Name: "SF", Position: 2}))
	require.False(t, b.HasSwitch(model.Switch{Name: "SF", Position: 1}))
	require.False(t, b.HasSwitch(model.Switch{Name: "SE", Position: 0}))
	require.True(t, b.HasSwitch(model.SwitchNone))
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"2.2V0018", Version{2, 2, 18}, false},
		{"2.3.1", Version{2, 3, 1}, false},
		{"v2.3", Version{2, 3, 0}, false},
		{"2.3V0025", Version{2, 3, 25}, false},
		{"", Version{}, true},
		{"2", Version{}, true},
		{"2.x", Version{}, true},
		{"2.3.1V4", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestVersionCompare(t *testing.T) {
	v := func(s string) Version {
		parsed, err := ParseVersion(s)
		require.NoError(t, err)
		return parsed
	}

	require.Equal(t, 0, v("2.2V0018").Compare(v("2.2.18")))
	require.Equal(t, -1, v("2.2V0018").Compare(v("2.3V0001")))
	// a higher revision never outranks a higher minor
	require.Equal(t, 1, v("2.3V0000").Compare(v("2.2V0099")))
	require.Equal(t, 1, v("3.0").Compare(v("2.9V9999")))
	require.True(t, v("2.3V0024").Less(v("2.3V0025")))
	require.Equal(t, "2.2V0018", v("2.2.18").String())
	require.True(t, Version{}.IsZero())
}
