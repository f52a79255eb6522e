package lua

import "errors"

var (
	// ErrStateClosed is returned by a State used after Close.
	ErrStateClosed = errors.New("lua: state closed")

	// ErrExecutionTimeout is returned when a script runs past its
	// deadline.
	ErrExecutionTimeout = errors.New("lua: execution timed out")
)
