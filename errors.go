package regime

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes registration and move errors.
type ErrorCode string

const (
	// ErrCodeInvalidEvent indicates an event was registered with no transitions.
	ErrCodeInvalidEvent ErrorCode = "INVALID_EVENT"

	// ErrCodeStateNotFound indicates a move referenced a state no registered
	// transition mentions. Distinct from "a transition exists but its guard
	// fails", which is a silent no-op.
	ErrCodeStateNotFound ErrorCode = "STATE_NOT_FOUND"

	// ErrCodeEventNotFound indicates a trigger named an event that was never
	// registered.
	ErrCodeEventNotFound ErrorCode = "EVENT_NOT_FOUND"
)

// Error is a machine error with a stable code for programmatic handling.
//
// The machine reserves errors for programmer mistakes (referencing states or
// events that were never declared). Out-of-range operations - undo with
// nothing to undo, removing an absent transition or subscriber - are normal
// outcomes and never produce an Error.
type Error struct {
	Code    ErrorCode
	Message string

	// State is the offending state for STATE_NOT_FOUND.
	State State

	// Event is the offending event name for INVALID_EVENT and EVENT_NOT_FOUND.
	Event string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.State != "":
		return fmt.Sprintf("%s: %s (state=%s)", e.Code, e.Message, e.State)
	case e.Event != "":
		return fmt.Sprintf("%s: %s (event=%s)", e.Code, e.Message, e.Event)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidEvent reports whether err is an empty-event registration error.
// Uses errors.As to handle wrapped errors.
func IsInvalidEvent(err error) bool {
	var me *Error
	return errors.As(err, &me) && me.Code == ErrCodeInvalidEvent
}

// IsStateNotFound reports whether err is an unknown-state move error.
// Uses errors.As to handle wrapped errors.
func IsStateNotFound(err error) bool {
	var me *Error
	return errors.As(err, &me) && me.Code == ErrCodeStateNotFound
}

// IsEventNotFound reports whether err is an unregistered-event trigger error.
// Uses errors.As to handle wrapped errors.
func IsEventNotFound(err error) bool {
	var me *Error
	return errors.As(err, &me) && me.Code == ErrCodeEventNotFound
}

func newInvalidEventError(name string) *Error {
	return &Error{
		Code:    ErrCodeInvalidEvent,
		Message: "event must carry at least one transition",
		Event:   name,
	}
}

func newStateNotFoundError(s State) *Error {
	return &Error{
		Code:    ErrCodeStateNotFound,
		Message: "no registered transition references state",
		State:   s,
	}
}

func newEventNotFoundError(name string) *Error {
	return &Error{
		Code:    ErrCodeEventNotFound,
		Message: "event was never registered",
		Event:   name,
	}
}
