package action

import (
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/keymap"
)

// Action is a named operation that key bindings can invoke.
//
// An action takes no argument, the key event that completed its binding,
// or the whole matched sequence. Build one with Plain, WithKey or
// WithSequence.
type Action struct {
	Name        string
	Description string

	plain   func() error
	withKey func(key.Event) error
	withSeq func(key.Sequence) error
}

// Plain creates an action that takes no argument.
func Plain(name, description string, fn func() error) Action {
	return Action{Name: name, Description: description, plain: fn}
}

// WithKey creates an action that receives the completing key event.
func WithKey(name, description string, fn func(key.Event) error) Action {
	return Action{Name: name, Description: description, withKey: fn}
}

// WithSequence creates an action that receives the matched sequence.
func WithSequence(name, description string, fn func(key.Sequence) error) Action {
	return Action{Name: name, Description: description, withSeq: fn}
}

// Valid returns true if the action has a name and a function.
func (a Action) Valid() bool {
	return a.Name != "" && (a.plain != nil || a.withKey != nil || a.withSeq != nil)
}

// ErrorFunc receives errors returned by actions run from key bindings.
type ErrorFunc func(name string, err error)

// Callback returns a keymap callback that runs the action. Errors are
// passed to onErr, which may be nil.
func (a Action) Callback(onErr ErrorFunc) keymap.Callback {
	report := func(err error) {
		if err != nil && onErr != nil {
			onErr(a.Name, err)
		}
	}
	switch {
	case a.withKey != nil:
		fn := a.withKey
		return keymap.KeyEventParam{Fn: func(ev key.Event) { report(fn(ev)) }}
	case a.withSeq != nil:
		fn := a.withSeq
		return keymap.SequenceParam{Fn: func(seq key.Sequence) { report(fn(seq)) }}
	case a.plain != nil:
		fn := a.plain
		return keymap.NoParam{Fn: func() { report(fn()) }}
	}
	return nil
}
