package keymap

import "errors"

// Registration and invocation errors.
var (
	// ErrEmptySequence is returned when binding an empty key sequence.
	ErrEmptySequence = errors.New("empty key sequence")

	// ErrNilCallback is returned when binding a nil function.
	ErrNilCallback = errors.New("nil callback")

	// ErrForestSealed is returned when registering into a sealed forest.
	ErrForestSealed = errors.New("forest is sealed")

	// ErrInvalidContext is returned for an unknown binding context.
	ErrInvalidContext = errors.New("invalid binding context")

	// ErrInvalidMode is returned for a mode that cannot be bound.
	ErrInvalidMode = errors.New("invalid binding mode")

	// ErrStaleTarget is returned when a weakly bound target has been
	// collected.
	ErrStaleTarget = errors.New("callback target no longer exists")
)
