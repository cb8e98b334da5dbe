package defn

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/regime"
)

// Document is the YAML machine definition.
type Document struct {
	// Initial is the state the machine occupies at construction. Required.
	Initial string `yaml:"initial"`

	// HistoryLimit caps the history stack. Zero means the engine default.
	HistoryLimit int `yaml:"history_limit,omitempty"`

	// Transitions are plain transitions registered outside any event.
	Transitions []TransitionDoc `yaml:"transitions,omitempty"`

	// Events are named transition bundles.
	Events []EventDoc `yaml:"events,omitempty"`
}

// TransitionDoc is one transition entry in a document.
type TransitionDoc struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Undoable bool   `yaml:"undoable,omitempty"`
}

// EventDoc is one named event entry in a document.
type EventDoc struct {
	Name        string          `yaml:"name"`
	Transitions []TransitionDoc `yaml:"transitions"`
}

// Parse decodes a definition document. Unknown fields are rejected so typos
// in a definition fail loudly instead of silently registering nothing.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	return &doc, nil
}

// Load reads and decodes a definition file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Build validates the document and constructs a machine from it. Extra
// options (logger, fixed instance ID) are appended after the document's own.
func (d *Document) Build(opts ...regime.Option) (*regime.Machine, error) {
	if errs := d.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}

	all := []regime.Option{
		regime.WithTransitions(d.transitions()...),
		regime.WithEvents(d.events()...),
	}
	if d.HistoryLimit > 0 {
		all = append(all, regime.WithHistoryLimit(d.HistoryLimit))
	}
	all = append(all, opts...)

	return regime.New(regime.State(d.Initial), all...)
}

func (d *Document) transitions() []regime.Transition {
	out := make([]regime.Transition, 0, len(d.Transitions))
	for _, t := range d.Transitions {
		out = append(out, regime.Transition{
			From:     regime.State(t.From),
			To:       regime.State(t.To),
			Undoable: t.Undoable,
		})
	}
	return out
}

func (d *Document) events() []regime.Event {
	out := make([]regime.Event, 0, len(d.Events))
	for _, ev := range d.Events {
		transitions := make([]regime.Transition, 0, len(ev.Transitions))
		for _, t := range ev.Transitions {
			transitions = append(transitions, regime.Transition{
				From:     regime.State(t.From),
				To:       regime.State(t.To),
				Undoable: t.Undoable,
			})
		}
		out = append(out, regime.Event{Name: ev.Name, Transitions: transitions})
	}
	return out
}
