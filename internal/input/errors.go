package input

import "errors"

// Dispatcher errors.
var (
	// ErrNilForest is returned when a dispatcher is given no forest.
	ErrNilForest = errors.New("nil binding forest")

	// ErrClosed is returned by operations on a closed dispatcher.
	ErrClosed = errors.New("dispatcher is closed")

	// ErrDispatching is returned when the forest is replaced from inside
	// a binding callback.
	ErrDispatching = errors.New("dispatch in progress")
)
