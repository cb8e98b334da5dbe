package defn

import "fmt"

// Validation error codes. Stable identifiers surfaced in CLI output.
const (
	ErrCodeMissingInitial  = "D001"
	ErrCodeBadTransition   = "D002"
	ErrCodeEmptyEvent      = "D003"
	ErrCodeUnnamedEvent    = "D004"
	ErrCodeBadHistoryLimit = "D005"
)

// ValidationError is a positioned document error.
type ValidationError struct {
	Code    string
	Path    string // document path, e.g. "events[0].transitions[1]"
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validate checks the document and collects every error rather than
// stopping at the first, so one run surfaces everything wrong with a file.
// The empty-event rule mirrors the engine's registration rule; catching it
// here attributes the failure to a document position instead of a build
// error.
func (d *Document) Validate() []error {
	var errs []error

	if d.Initial == "" {
		errs = append(errs, &ValidationError{
			Code:    ErrCodeMissingInitial,
			Message: "initial state is required",
		})
	}
	if d.HistoryLimit < 0 {
		errs = append(errs, &ValidationError{
			Code:    ErrCodeBadHistoryLimit,
			Path:    "history_limit",
			Message: "must not be negative",
		})
	}

	for i, t := range d.Transitions {
		errs = append(errs, validateTransition(t, fmt.Sprintf("transitions[%d]", i))...)
	}

	for i, ev := range d.Events {
		path := fmt.Sprintf("events[%d]", i)
		if ev.Name == "" {
			errs = append(errs, &ValidationError{
				Code:    ErrCodeUnnamedEvent,
				Path:    path,
				Message: "event name is required",
			})
		}
		if len(ev.Transitions) == 0 {
			errs = append(errs, &ValidationError{
				Code:    ErrCodeEmptyEvent,
				Path:    path,
				Message: fmt.Sprintf("event %q must carry at least one transition", ev.Name),
			})
		}
		for j, t := range ev.Transitions {
			errs = append(errs, validateTransition(t, fmt.Sprintf("%s.transitions[%d]", path, j))...)
		}
	}

	return errs
}

func validateTransition(t TransitionDoc, path string) []error {
	var errs []error
	if t.From == "" {
		errs = append(errs, &ValidationError{
			Code:    ErrCodeBadTransition,
			Path:    path,
			Message: "from state is required",
		})
	}
	if t.To == "" {
		errs = append(errs, &ValidationError{
			Code:    ErrCodeBadTransition,
			Path:    path,
			Message: "to state is required",
		})
	}
	return errs
}
