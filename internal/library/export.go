package library

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/mark3labs/txcompanion/internal/model"
	"gopkg.in/yaml.v3"
)

// Export encodes a model as YAML.
func Export(cfg *model.Configuration) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import decodes and checks a YAML model. Unknown keys are rejected.
func Import(data []byte) (*model.Configuration, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg model.Configuration
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("model has no name")
	}
	for i, m := range cfg.Mixes {
		if m.Channel < 1 {
			return nil, fmt.Errorf("mix %d: channel must be at least 1", i+1)
		}
		if m.Weight < -100 || m.Weight > 100 {
			return nil, fmt.Errorf("mix %d: weight %d out of range", i+1, m.Weight)
		}
	}
	return &cfg, nil
}

// FileName is the export file name for a model, e.g. "my-trainer.yml".
func FileName(cfg *model.Configuration) string {
	name := slug.Make(cfg.Name)
	if name == "" {
		name = "model"
	}
	return name + ".yml"
}
