package script

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step operations.
const (
	OpMove    = "move"
	OpTrigger = "trigger"
	OpUndo    = "undo"
	OpRedo    = "redo"
)

// Script is a named scenario executed against a machine.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one scripted operation.
type Step struct {
	// Op is one of move, trigger, undo, redo.
	Op string `yaml:"op"`

	// To is the target state for move steps.
	To string `yaml:"to,omitempty"`

	// Event is the event name for trigger steps.
	Event string `yaml:"event,omitempty"`

	// Data is an optional payload carried into the history record.
	Data map[string]any `yaml:"data,omitempty"`
}

// Parse decodes a script document, rejecting unknown fields.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return &s, nil
}

// Load reads and decodes a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks that every step is well formed.
func (s *Script) Validate() []error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("script name is required"))
	}
	for i, step := range s.Steps {
		switch step.Op {
		case OpMove:
			if step.To == "" {
				errs = append(errs, fmt.Errorf("steps[%d]: move requires a target state", i))
			}
		case OpTrigger:
			if step.Event == "" {
				errs = append(errs, fmt.Errorf("steps[%d]: trigger requires an event name", i))
			}
		case OpUndo, OpRedo:
			// No operands.
		default:
			errs = append(errs, fmt.Errorf("steps[%d]: unknown op %q", i, step.Op))
		}
	}
	return errs
}
