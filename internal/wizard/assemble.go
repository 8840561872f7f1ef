package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/txcompanion/internal/model"
)

// ErrIncomplete is returned when assembling a session whose conclusion
// page has not validated.
var ErrIncomplete = errors.New("wizard session is not completed")

// Assemble turns a completed session into a model configuration. Mixes are
// emitted in channel order, primary payload before secondary.
func Assemble(s *Session) (*model.Configuration, error) {
	if s == nil || !s.Completed {
		return nil, ErrIncomplete
	}

	cfg := &model.Configuration{
		ID:        s.Original.ID,
		Name:      s.Name,
		Category:  s.Original.Category,
		Slot:      s.Original.Slot,
		Radio:     s.Original.Radio,
		Vehicle:   s.Vehicle,
		CreatedAt: s.Original.CreatedAt,
	}
	if cfg.Radio == "" && s.Board != nil {
		cfg.Radio = s.Board.ID
	}

	synth := s.synthesizer()
	hasThrottle := false
	for i := 0; i < s.Book.Len(); i++ {
		slot := s.Book.Slot(i)
		if slot.Primary.Input == InputNone {
			continue
		}
		for _, c := range []Contribution{slot.Primary, slot.Secondary} {
			if c.Input == InputNone {
				continue
			}
			cfg.Mixes = append(cfg.Mixes, synth.Expand(c.Input, c.Weight, i+1, c.Switch)...)
			if c.Input == InputThrottle {
				hasThrottle = true
			}
		}
	}

	if hasThrottle {
		if s.Options.FlightTimer {
			cfg.Timers = append(cfg.Timers, model.Timer{Name: "Flt", Mode: model.TimerThrottleTrigger})
		}
		if s.Options.ThrottleTimer {
			cfg.Timers = append(cfg.Timers, model.Timer{Name: "Thr", Mode: model.TimerThrottle})
		}
	}

	log.Info("assembled %q: %d mixes on %d channels, %d timers",
		cfg.Name, len(cfg.Mixes), len(cfg.Channels()), len(cfg.Timers))
	return cfg, nil
}

// Summary renders the answers the way the conclusion page shows them.
func Summary(s *Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Model Name: %s\n", s.Name)
	fmt.Fprintf(&b, "Model Type: %s\n", s.Vehicle.Label())
	fmt.Fprintf(&b, "Options: %s\n", strings.Join(s.Options.Names(), "; "))
	if s.Vehicle == model.VehicleHelicopter {
		flybar := "flybarless"
		if s.Heli.Flybar {
			flybar = "flybar"
		}
		fmt.Fprintf(&b, "Helicopter: swash %s, gyro %s, %s\n", s.Heli.Swash, s.Heli.Gyro, flybar)
	}
	for i := 0; i < s.Book.Len(); i++ {
		slot := s.Book.Slot(i)
		if slot.Free() {
			continue
		}
		fmt.Fprintf(&b, "Channel %d: [%s, %d]", i+1, slot.Primary.Input, slot.Primary.Weight)
		if slot.Secondary.Input != InputNone {
			fmt.Fprintf(&b, "[%s, %d]", slot.Secondary.Input, slot.Secondary.Weight)
		}
		b.WriteString("\n")
	}
	return b.String()
}
