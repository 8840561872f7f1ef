package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/txcompanion/internal/config"
	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/radio"
	"github.com/mark3labs/txcompanion/internal/wizard"
	"github.com/stretchr/testify/require"
)

const planeAnswers = `
version: 1
model:
  name: Trainer
  category: Planes
  slot: 2
pages:
  models:
    vehicle: plane
  throttle:
    channel: 1
    cut_switch: SF-down
  ailerons:
    ailerons: two
  tails:
    tail: standard
  options:
    flight_timer: true
  conclusion:
    understood: true
`

func session(t *testing.T, a *Answers) *wizard.Session {
	t.Helper()
	b, err := radio.Lookup("x9d+")
	require.NoError(t, err)
	return wizard.NewSession(b, &config.Config{ChannelOrder: "RETA"}, a.Original())
}

func TestParse_Valid(t *testing.T) {
	a, err := Parse([]byte(planeAnswers))
	require.NoError(t, err)
	require.Equal(t, "Trainer", a.Model.Name)
	require.Equal(t, 2, a.Model.Slot)
	require.Equal(t, "plane", a.Pages["models"]["vehicle"])
	require.Equal(t, 1, a.Pages["throttle"]["channel"])
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing pages", "version: 1\n"},
		{"unknown page", "pages:\n  wheels: {count: 3}\n"},
		{"nested value", "pages:\n  throttle: {channel: [1, 2]}\n"},
		{"unknown top-level key", "pages: {}\nextra: 1\n"},
		{"bad version", "version: 2\npages: {}\n"},
		{"negative slot", "model: {slot: -1}\npages: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
		})
	}

	_, err := Parse([]byte("pages: [unclosed"))
	require.Error(t, err)
}

func TestRun_Plane(t *testing.T) {
	a, err := Parse([]byte(planeAnswers))
	require.NoError(t, err)

	res, err := Run(session(t, a), a)
	require.NoError(t, err)

	cfg := res.Config
	require.Equal(t, "Trainer", cfg.Name)
	require.Equal(t, "Planes", cfg.Category)
	require.Equal(t, 2, cfg.Slot)
	require.Len(t, cfg.Mixes, 6)
	require.Equal(t, []model.Timer{{Name: "Flt", Mode: model.TimerThrottleTrigger}}, cfg.Timers)
	require.Equal(t, wizard.PageConclusion, res.Visited[len(res.Visited)-1])
	require.Empty(t, res.Unused)
	require.Contains(t, res.Summary, "Channel 1: [THR, 100][CUT, -100]")
}

func TestRun_UnusedPages(t *testing.T) {
	a, err := Parse([]byte(`
model: {name: Quad}
pages:
  models: {vehicle: multirotor}
  throttle: {channel: 1}
  conclusion: {understood: yes}
`))
	require.NoError(t, err)

	res, err := Run(session(t, a), a)
	require.NoError(t, err)
	require.Equal(t, []string{"throttle"}, res.Unused)
	require.Equal(t, model.VehicleMultirotor, res.Config.Vehicle)
}

func TestRun_RefusedStep(t *testing.T) {
	a, err := Parse([]byte(`
model: {name: Glider}
pages:
  throttle: {motor: "no"}
  flaps: {flaps: single}
`))
	require.NoError(t, err)

	_, err = Run(session(t, a), a)
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	require.Equal(t, wizard.PageFlaps, stepErr.Page)
	require.Contains(t, stepErr.Problem, "Switch")
}

func TestRun_BadField(t *testing.T) {
	a, err := Parse([]byte("pages:\n  models: {colour: red}\n"))
	require.NoError(t, err)
	a.Model.Name = "X"

	_, err = Run(session(t, a), a)
	require.ErrorContains(t, err, `no field "colour"`)

	a, err = Parse([]byte("model: {name: X}\npages:\n  throttle: {channel: 12}\n"))
	require.NoError(t, err)
	_, err = Run(session(t, a), a)
	require.ErrorContains(t, err, "not available")
}

func TestRun_MissingConfirmation(t *testing.T) {
	a, err := Parse([]byte("model: {name: Quad}\npages:\n  models: {vehicle: multirotor}\n"))
	require.NoError(t, err)

	_, err = Run(session(t, a), a)
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	require.Equal(t, wizard.PageConclusion, stepErr.Page)
}

func TestRecordReplays(t *testing.T) {
	a, err := Parse([]byte(planeAnswers))
	require.NoError(t, err)

	s := session(t, a)
	w := wizard.New(s)
	w.Start()
	for !w.Done() {
		p := w.Current()
		require.NoError(t, apply(p, a.Pages[p.ID().String()]))
		require.True(t, w.Next(), "page %s: %s", p.ID(), p.Problem())
	}
	want, err := wizard.Assemble(s)
	require.NoError(t, err)

	recorded := Record(w)
	data, err := recorded.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "answers.yml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	replayed, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "x9d+", replayed.Radio)

	res, err := Run(session(t, replayed), replayed)
	require.NoError(t, err)
	require.Equal(t, want.Mixes, res.Config.Mixes)
	require.Equal(t, want.Timers, res.Config.Timers)
}
