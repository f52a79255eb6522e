package action

import (
	"errors"
	"fmt"
)

// Sentinel errors for the action registry.
var (
	// ErrUnknownAction is returned when no action has the requested name.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidAction is returned when registering an action with no name
	// or no function.
	ErrInvalidAction = errors.New("invalid action")
)

// UnknownActionError reports a missing action and the closest match.
type UnknownActionError struct {
	Name       string
	Suggestion string
}

// Error implements the error interface.
func (e *UnknownActionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown action %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown action %q", e.Name)
}

// Unwrap returns ErrUnknownAction.
func (e *UnknownActionError) Unwrap() error {
	return ErrUnknownAction
}
