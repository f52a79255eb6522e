package mode

import (
	"fmt"

	"github.com/dshills/chordmap/internal/input/key"
)

// Transition describes one SetMode call.
type Transition struct {
	From Mode
	To   Mode

	// Changed is false when the mode was set to itself.
	Changed bool
}

// ChangeCallback is called after every mode change.
type ChangeCallback func(Transition)

// Controller is the mode state machine.
//
// It is driven from the host's input goroutine and is not safe for
// concurrent use. Callbacks run synchronously in registration order and
// may call SetMode themselves.
type Controller struct {
	current  Mode
	previous Mode

	callbacks []ChangeCallback
}

// NewController creates a controller in the given initial mode.
func NewController(initial Mode) (*Controller, error) {
	if !initial.IsLive() {
		return nil, fmt.Errorf("%w: %s cannot be the initial mode", ErrInvalidMode, initial)
	}
	return &Controller{current: initial, previous: initial}, nil
}

// Current returns the live mode.
func (c *Controller) Current() Mode {
	return c.current
}

// Previous returns the mode before the last transition.
func (c *Controller) Previous() Mode {
	return c.previous
}

// Is returns true if the current mode is m.
func (c *Controller) Is(m Mode) bool {
	return c.current == m
}

// SetMode switches to mode m and notifies every callback, even when m is
// already current. Any is rejected with ErrInvalidMode.
func (c *Controller) SetMode(m Mode) (Transition, error) {
	if !m.IsLive() {
		return Transition{}, fmt.Errorf("%w: %s", ErrInvalidMode, m)
	}

	tr := Transition{From: c.current, To: m, Changed: c.current != m}
	if tr.Changed {
		c.previous = c.current
	}
	c.current = m

	// Copy so callbacks can subscribe or unsubscribe while notified.
	callbacks := make([]ChangeCallback, len(c.callbacks))
	copy(callbacks, c.callbacks)
	for _, cb := range callbacks {
		if cb != nil {
			cb(tr)
		}
	}
	return tr, nil
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (c *Controller) OnChange(callback ChangeCallback) func() {
	c.callbacks = append(c.callbacks, callback)
	index := len(c.callbacks) - 1

	return func() {
		// Nil out rather than remove so other indices stay valid.
		if index < len(c.callbacks) {
			c.callbacks[index] = nil
		}
	}
}

var (
	chordInsert     = key.RuneChord('i', key.ModNone)
	chordVisual     = key.RuneChord('v', key.ModNone)
	chordVisualLine = key.RuneChord('V', key.ModNone)
)

// Builtin returns the mode a built-in transition key leads to from the
// current mode. Only Normal mode has built-in transitions:
// 'i' to Insert, 'v' to Visual and 'V' to VisualLine.
func (c *Controller) Builtin(ch key.Chord) (Mode, bool) {
	if c.current != Normal {
		return 0, false
	}
	switch ch {
	case chordInsert:
		return Insert, true
	case chordVisual:
		return Visual, true
	case chordVisualLine:
		return VisualLine, true
	}
	return 0, false
}
