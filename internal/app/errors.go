package app

import (
	"errors"
	"fmt"
)

var (
	// ErrShutdown is returned by operations on a shut down application.
	ErrShutdown = errors.New("application shut down")

	// ErrNoNativeInjector is returned by InjectNativeEscape when no host
	// has registered a way to deliver native keys.
	ErrNoNativeInjector = errors.New("no native key injector")
)

// ComponentError attributes a failure to the part of the application
// that produced it: the keymap loader, the Lua engine, the watcher.
type ComponentError struct {
	Component string
	// Action is what the component was doing, or the file it was reading.
	Action string
	Err    error
}

// NewComponentError wraps err for component.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	prefix := e.Component
	if e.Action != "" {
		prefix += ": " + e.Action
	}
	if e.Err == nil {
		return prefix
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }
