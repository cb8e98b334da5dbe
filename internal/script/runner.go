package script

import (
	"fmt"

	"github.com/roach88/regime"
)

// Result captures a full script run: per-step outcomes, the notification
// trace, and the machine's final state.
type Result struct {
	Script string          `json:"script"`
	Final  string          `json:"final"`
	Steps  []StepResult    `json:"steps"`
	Trace  []regime.Change `json:"trace"`
}

// StepResult is the outcome of one step. Applied is false both for silent
// no-ops (guard failures, nothing to undo) and for errors; Error
// distinguishes the two.
type StepResult struct {
	Op      string `json:"op"`
	To      string `json:"to,omitempty"`
	Event   string `json:"event,omitempty"`
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether any step errored.
func (r *Result) Failed() bool {
	for _, s := range r.Steps {
		if s.Error != "" {
			return true
		}
	}
	return false
}

// Run executes the script's steps in order against m. Step errors are
// recorded in the result and execution continues; the trace holds exactly
// the changes the machine committed, in delivery order.
func Run(m *regime.Machine, s *Script) *Result {
	res := &Result{Script: s.Name, Steps: make([]StepResult, 0, len(s.Steps))}

	sub := m.Subscribe(func(c regime.Change) {
		res.Trace = append(res.Trace, c)
	})
	defer m.Unsubscribe(sub)

	for _, step := range s.Steps {
		sr := StepResult{Op: step.Op, To: step.To, Event: step.Event}
		switch step.Op {
		case OpMove:
			applied, err := m.Move(regime.State(step.To), payload(step))
			sr.Applied = applied
			if err != nil {
				sr.Error = err.Error()
			}
		case OpTrigger:
			applied, err := m.Trigger(step.Event, payload(step))
			sr.Applied = applied
			if err != nil {
				sr.Error = err.Error()
			}
		case OpUndo:
			sr.Applied = m.Undo()
		case OpRedo:
			sr.Applied = m.Redo()
		default:
			sr.Error = fmt.Sprintf("unknown op %q", step.Op)
		}
		res.Steps = append(res.Steps, sr)
	}

	res.Final = string(m.Current())
	return res
}

// payload returns the step's data, or nil when none was given so the
// history record carries no payload at all.
func payload(step Step) any {
	if len(step.Data) == 0 {
		return nil
	}
	return step.Data
}
