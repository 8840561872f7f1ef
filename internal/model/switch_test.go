package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    Switch
		wantErr bool
	}{
		{"", SwitchNone, false},
		{"none", SwitchNone, false},
		{"sf-down", Switch{"SF", 2}, false},
		{"SA-mid", Switch{"SA", 1}, false},
		{"SB↑", Switch{"SB", 0}, false},
		{"SC↓", Switch{"SC", 2}, false},
		{"SD1", Switch{"SD", 1}, false},
		{"SF-sideways", SwitchNone, true},
		{"S", SwitchNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSwitch(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSwitchString(t *testing.T) {
	require.Equal(t, "---", SwitchNone.String())
	require.Equal(t, "SF↓", Switch{"SF", 2}.String())
	require.Equal(t, "SA-", Switch{"SA", 1}.String())
}

func TestMixSwitchEncoding(t *testing.T) {
	m := Mix{Name: "Cut", Channel: 1, Source: Source{Kind: SourceMax}, Switch: Switch{"SF", 2}, Weight: -100, Multiplex: MultiplexReplace}

	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	require.Contains(t, string(data), "switch: SF-down")

	var back Mix
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.Equal(t, m, back)

	m.Switch = SwitchNone
	js, err := json.Marshal(m)
	require.NoError(t, err)
	require.NotContains(t, string(js), "switch")
}

func TestSourceString(t *testing.T) {
	require.Equal(t, "Thr", Source{Kind: SourceStick, Index: 2}.String())
	require.Equal(t, "[I3]", Source{Kind: SourceVirtualInput, Index: 2}.String())
	require.Equal(t, "MAX", Source{Kind: SourceMax}.String())
}

func TestConfigurationChannels(t *testing.T) {
	c := &Configuration{Mixes: []Mix{
		{Channel: 3}, {Channel: 1}, {Channel: 3}, {Channel: 2},
	}}
	require.Equal(t, []int{3, 1, 2}, c.Channels())
	require.Len(t, c.MixesFor(3), 2)
	require.Empty(t, c.MixesFor(8))
}
