// Package radio describes the transmitter boards txcompanion knows about:
// their capability limits, switches and SD card family.
package radio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/txcompanion/internal/model"
)

// WizardChannels is the number of output channels the model wizard assigns.
const WizardChannels = 8

// SwitchDef is a physical switch on a board.
type SwitchDef struct {
	Name      string
	Positions int // 2 or 3
}

// Board is the capability profile of one transmitter.
type Board struct {
	ID           string
	Name         string
	Family       string // SD card image family
	ModelNameLen int
	MixNameLen   int
	// DirectSticks is true on boards without virtual inputs, where mixes
	// reference the stick axes themselves.
	DirectSticks bool
	Switches     []SwitchDef
}

var taranisSwitches = []SwitchDef{
	{"SA", 3}, {"SB", 3}, {"SC", 3}, {"SD", 3}, {"SE", 3}, {"SF", 2}, {"SG", 3}, {"SH", 2},
}

var qx7Switches = []SwitchDef{
	{"SA", 3}, {"SB", 3}, {"SC", 3}, {"SD", 3}, {"SF", 2}, {"SH", 2},
}

var xliteSwitches = []SwitchDef{
	{"SA", 3}, {"SB", 3}, {"SC", 3}, {"SD", 3},
}

var sky9xSwitches = []SwitchDef{
	{"THR", 2}, {"RUD", 2}, {"ELE", 2}, {"ID", 3}, {"AIL", 2}, {"GEA", 2}, {"TRN", 2},
}

var boards = map[string]Board{
	"x9d":    {ID: "x9d", Name: "FrSky Taranis X9D", Family: "taranis-x9", ModelNameLen: 12, MixNameLen: 8, Switches: taranisSwitches},
	"x9d+":   {ID: "x9d+", Name: "FrSky Taranis X9D+", Family: "taranis-x9", ModelNameLen: 12, MixNameLen: 8, Switches: taranisSwitches},
	"x9e":    {ID: "x9e", Name: "FrSky Taranis X9E", Family: "taranis-x9", ModelNameLen: 12, MixNameLen: 8, Switches: taranisSwitches},
	"x9lite": {ID: "x9lite", Name: "FrSky Taranis X9 Lite", Family: "taranis-x9", ModelNameLen: 12, MixNameLen: 8, Switches: xliteSwitches},
	"x7":     {ID: "x7", Name: "FrSky Taranis Q X7", Family: "taranis-x7", ModelNameLen: 12, MixNameLen: 8, Switches: qx7Switches},
	"t12":    {ID: "t12", Name: "Jumper T12", Family: "taranis-x7", ModelNameLen: 12, MixNameLen: 8, Switches: qx7Switches},
	"xlite":  {ID: "xlite", Name: "FrSky Taranis X-Lite", Family: "taranis-x7", ModelNameLen: 12, MixNameLen: 8, Switches: xliteSwitches},
	"x10":    {ID: "x10", Name: "FrSky Horus X10", Family: "horus", ModelNameLen: 15, MixNameLen: 10, Switches: taranisSwitches},
	"x12s":   {ID: "x12s", Name: "FrSky Horus X12S", Family: "horus", ModelNameLen: 15, MixNameLen: 10, Switches: taranisSwitches},
	"tx16s":  {ID: "tx16s", Name: "RadioMaster TX16S", Family: "horus", ModelNameLen: 15, MixNameLen: 10, Switches: taranisSwitches},
	"sky9x":  {ID: "sky9x", Name: "Sky9x", Family: "sky9x", ModelNameLen: 10, MixNameLen: 6, DirectSticks: true, Switches: sky9xSwitches},
	"9xrpro": {ID: "9xrpro", Name: "Turnigy 9XR-PRO", Family: "sky9x", ModelNameLen: 10, MixNameLen: 6, DirectSticks: true, Switches: sky9xSwitches},
	"ar9x":   {ID: "ar9x", Name: "ar9x", Family: "sky9x", ModelNameLen: 10, MixNameLen: 6, DirectSticks: true, Switches: sky9xSwitches},
}

// Lookup returns the board with the given id. Ids are case-insensitive.
func Lookup(id string) (*Board, error) {
	b, ok := boards[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("unknown radio %q", id)
	}
	return &b, nil
}

// Boards returns every known board sorted by id.
func Boards() []Board {
	out := make([]Board, 0, len(boards))
	for _, b := range boards {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDFromFirmwareType extracts the board id from a firmware type string such
// as "opentx-x9d+-noheli-en".
func IDFromFirmwareType(fwType string) (string, error) {
	parts := strings.Split(fwType, "-")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid firmware type %q", fwType)
	}
	return parts[1], nil
}

// FirmwarePrefix returns "<flavour>-<board>" from a firmware type, the name
// of the per-board folder on the download server.
func FirmwarePrefix(fwType string) (string, error) {
	id, err := IDFromFirmwareType(fwType)
	if err != nil {
		return "", err
	}
	return strings.SplitN(fwType, "-", 2)[0] + "-" + id, nil
}

// SwitchChoices enumerates the enable-switch choices for the board, with
// model.SwitchNone first. Two position switches offer up and down.
func (b *Board) SwitchChoices() []model.Switch {
	out := []model.Switch{model.SwitchNone}
	for _, sw := range b.Switches {
		for pos := 0; pos < 3; pos++ {
			if sw.Positions == 2 && pos == 1 {
				continue
			}
			out = append(out, model.Switch{Name: sw.Name, Position: pos})
		}
	}
	return out
}

// HasSwitch reports whether sw exists on the board. SwitchNone always does.
func (b *Board) HasSwitch(sw model.Switch) bool {
	for _, c := range b.SwitchChoices() {
		if c == sw {
			return true
		}
	}
	return false
}
