// Package model defines the model configuration record produced by the
// setup wizard and stored in the model library.
package model

import (
	"fmt"
	"time"
)

// Vehicle is the kind of aircraft a model describes.
type Vehicle string

const (
	VehicleUnknown    Vehicle = ""
	VehiclePlane      Vehicle = "plane"
	VehicleMultirotor Vehicle = "multirotor"
	VehicleHelicopter Vehicle = "helicopter"
	VehicleFlightSim  Vehicle = "flight-sim"
)

// Label returns the display name of the vehicle kind.
func (v Vehicle) Label() string {
	switch v {
	case VehiclePlane:
		return "Plane"
	case VehicleMultirotor:
		return "Multirotor"
	case VehicleHelicopter:
		return "Helicopter"
	case VehicleFlightSim:
		return "Flight Simulator"
	default:
		return "---"
	}
}

// SourceKind selects where a mix takes its value from.
type SourceKind string

const (
	SourceNone         SourceKind = ""
	SourceStick        SourceKind = "stick"
	SourceVirtualInput SourceKind = "input"
	SourceMax          SourceKind = "max"
)

// Source is a mix source: a stick axis, a virtual input or the MAX constant.
type Source struct {
	Kind  SourceKind `json:"kind" yaml:"kind"`
	Index int        `json:"index,omitempty" yaml:"index,omitempty"`
}

var stickNames = [...]string{"Rud", "Ele", "Thr", "Ail"}

// String renders the source the way the radio displays it.
func (s Source) String() string {
	switch s.Kind {
	case SourceStick:
		if s.Index >= 0 && s.Index < len(stickNames) {
			return stickNames[s.Index]
		}
		return fmt.Sprintf("Stick%d", s.Index+1)
	case SourceVirtualInput:
		return fmt.Sprintf("[I%d]", s.Index+1)
	case SourceMax:
		return "MAX"
	default:
		return "---"
	}
}

// Multiplex is how a mix line combines with the lines before it.
type Multiplex string

const (
	MultiplexAdd     Multiplex = "add"
	MultiplexReplace Multiplex = "replace"
)

// Mix is one weighted contribution of a source to an output channel.
type Mix struct {
	Name      string    `json:"name" yaml:"name"`
	Channel   int       `json:"channel" yaml:"channel"` // one-based
	Source    Source    `json:"source" yaml:"source"`
	Switch    Switch    `json:"switch,omitzero" yaml:"switch,omitempty"`
	Weight    int       `json:"weight" yaml:"weight"`
	Multiplex Multiplex `json:"multiplex" yaml:"multiplex"`
}

// TimerMode selects what runs a timer.
type TimerMode string

const (
	// TimerThrottleTrigger starts on first throttle and keeps running.
	TimerThrottleTrigger TimerMode = "throttle-trigger"
	// TimerThrottle runs while the throttle is above idle.
	TimerThrottle TimerMode = "throttle"
)

// Timer is a model timer.
type Timer struct {
	Name string    `json:"name" yaml:"name"`
	Mode TimerMode `json:"mode" yaml:"mode"`
}

// Configuration is a complete model record as written to the radio.
type Configuration struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Category  string    `json:"category,omitempty" yaml:"category,omitempty"`
	Slot      int       `json:"slot" yaml:"slot"` // model index on the radio
	Radio     string    `json:"radio" yaml:"radio"`
	Vehicle   Vehicle   `json:"vehicle" yaml:"vehicle"`
	Mixes     []Mix     `json:"mixes" yaml:"mixes"`
	Timers    []Timer   `json:"timers,omitempty" yaml:"timers,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Channels returns the distinct one-based channels used by the mixes, in
// first-use order.
func (c *Configuration) Channels() []int {
	seen := make(map[int]bool)
	var out []int
	for _, m := range c.Mixes {
		if !seen[m.Channel] {
			seen[m.Channel] = true
			out = append(out, m.Channel)
		}
	}
	return out
}

// MixesFor returns the mixes targeting one channel, in list order.
func (c *Configuration) MixesFor(channel int) []Mix {
	var out []Mix
	for _, m := range c.Mixes {
		if m.Channel == channel {
			out = append(out, m)
		}
	}
	return out
}
