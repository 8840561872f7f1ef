// Package script runs the model wizard headless from an answers document.
//
// An answers document maps page keys to field values:
//
//	version: 1
//	model:
//	  name: Trainer
//	pages:
//	  models: {vehicle: plane}
//	  throttle: {channel: 1, cut_switch: SF-down}
//	  conclusion: {understood: true}
//
// Pages without answers keep their defaults. The wizard walks the same
// pages, bookings and validation as the interactive UI.
package script

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/wizard"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/answers-v1.json
var answersSchemaJSON string

// maxSteps bounds a run; the page graph is acyclic so a walk never needs
// more than one visit per page.
const maxSteps = 64

// Answers is a decoded answers document.
type Answers struct {
	Version int                       `yaml:"version" json:"version,omitempty"`
	Radio   string                    `yaml:"radio,omitempty" json:"radio,omitempty"`
	Model   ModelAnswers              `yaml:"model,omitempty" json:"model,omitzero"`
	Pages   map[string]map[string]any `yaml:"pages" json:"pages"`
}

// ModelAnswers seeds the record the wizard is opened on.
type ModelAnswers struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
	Slot     int    `yaml:"slot,omitempty" json:"slot,omitempty"`
}

// Original returns the model record the session starts from.
func (a *Answers) Original() model.Configuration {
	return model.Configuration{Name: a.Model.Name, Category: a.Model.Category, Slot: a.Model.Slot}
}

// Validator checks answers documents against the embedded schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the answers schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("answers-v1.json", strings.NewReader(answersSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile("answers-v1.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks a YAML (or JSON) answers document.
func (v *Validator) Validate(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	// round-trip through JSON so the validator sees JSON types
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("answers are not representable as JSON: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := v.schema.Validate(generic); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Parse validates and decodes an answers document.
func Parse(data []byte) (*Answers, error) {
	v, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(data); err != nil {
		return nil, err
	}
	var a Answers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	return &a, nil
}

// Load reads and parses an answers file.
func Load(path string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	return Parse(data)
}

// Result is the outcome of a scripted run.
type Result struct {
	Config  *model.Configuration
	Summary string
	Visited []wizard.PageID
	// Unused lists answered pages the walk never reached.
	Unused []string
}

// StepError reports a page that refused to advance.
type StepError struct {
	Page    wizard.PageID
	Problem string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("page %s: %s", e.Page, e.Problem)
}

// Run walks a wizard over s using the answers and assembles the result.
func Run(s *wizard.Session, a *Answers) (*Result, error) {
	w := wizard.New(s)
	w.Start()

	for steps := 0; !w.Done(); steps++ {
		if steps >= maxSteps {
			return nil, fmt.Errorf("wizard did not finish after %d steps", maxSteps)
		}
		p := w.Current()
		if err := apply(p, a.Pages[p.ID().String()]); err != nil {
			return nil, err
		}
		if !w.Next() {
			return nil, &StepError{Page: p.ID(), Problem: p.Problem()}
		}
	}

	cfg, err := wizard.Assemble(s)
	if err != nil {
		return nil, err
	}

	res := &Result{Config: cfg, Summary: wizard.Summary(s), Visited: w.History()}
	visited := make(map[string]bool)
	for _, id := range res.Visited {
		visited[id.String()] = true
	}
	for name := range a.Pages {
		if !visited[name] {
			res.Unused = append(res.Unused, name)
		}
	}
	sort.Strings(res.Unused)
	return res, nil
}

// apply sets the page's fields in display order. Keys that name no field
// are an error.
func apply(p wizard.Page, answers map[string]any) error {
	if len(answers) == 0 {
		return nil
	}
	known := make(map[string]bool)
	for _, f := range p.Fields() {
		known[f.Key()] = true
		v, ok := answers[f.Key()]
		if !ok {
			continue
		}
		text, err := toText(v)
		if err != nil {
			return fmt.Errorf("page %s: %s: %w", p.ID(), f.Key(), err)
		}
		if err := f.Set(text); err != nil {
			return fmt.Errorf("page %s: %w", p.ID(), err)
		}
	}
	for key := range answers {
		if !known[key] {
			return fmt.Errorf("page %s has no field %q", p.ID(), key)
		}
	}
	return nil
}

func toText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		if t != math.Trunc(t) {
			return "", fmt.Errorf("expected a whole number, got %v", t)
		}
		return strconv.Itoa(int(t)), nil
	default:
		return "", fmt.Errorf("unsupported value %v", v)
	}
}

// Record captures the answers of every page w visited, so an interactive
// run can be replayed.
func Record(w *wizard.Wizard) *Answers {
	s := w.Session()
	a := &Answers{
		Version: 1,
		Model:   ModelAnswers{Name: s.Original.Name, Category: s.Original.Category, Slot: s.Original.Slot},
		Pages:   make(map[string]map[string]any),
	}
	if s.Board != nil {
		a.Radio = s.Board.ID
	}
	for _, id := range w.History() {
		values := make(map[string]any)
		for _, f := range w.Page(id).Fields() {
			if f.Enabled() && f.Value() != "" {
				values[f.Key()] = f.Value()
			}
		}
		if len(values) > 0 {
			a.Pages[id.String()] = values
		}
	}
	return a
}

// Marshal encodes answers as YAML.
func (a *Answers) Marshal() ([]byte, error) {
	return yaml.Marshal(a)
}
