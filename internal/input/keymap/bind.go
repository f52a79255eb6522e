package keymap

import (
	"fmt"
	"weak"

	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/mode"
)

// Binding is one registration: a callback for a key sequence under a
// (context, mode) pair.
type Binding struct {
	Context  Context
	Mode     mode.Mode
	Sequence key.Sequence
	Callback Callback

	// Label describes the action for listings.
	Label string
}

// Register stores b in the forest. Registering the same (context, mode,
// sequence) again replaces the earlier callback.
func (f *Forest) Register(b Binding) error {
	if f.sealed {
		return ErrForestSealed
	}
	if !b.Context.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidContext, b.Context)
	}
	if b.Mode > mode.Any {
		return fmt.Errorf("%w: %s", ErrInvalidMode, b.Mode)
	}
	if len(b.Sequence) == 0 {
		return ErrEmptySequence
	}
	if isNilCallback(b.Callback) {
		return ErrNilCallback
	}

	node := f.GetOrCreateRoot(b.Context, b.Mode).FindOrCreateNode(b.Sequence)
	node.callback = b.Callback
	node.Label = b.Label
	return nil
}

func isNilCallback(cb Callback) bool {
	switch c := cb.(type) {
	case NoParam:
		return c.Fn == nil
	case KeyEventParam:
		return c.Fn == nil
	case SequenceParam:
		return c.Fn == nil
	}
	return true
}

// Bind registers a callback that takes no arguments.
func (f *Forest) Bind(ctx Context, m mode.Mode, seq key.Sequence, fn func()) error {
	return f.Register(Binding{Context: ctx, Mode: m, Sequence: seq, Callback: NoParam{Fn: fn}})
}

// BindKeyEvent registers a callback that receives the completing key event.
func (f *Forest) BindKeyEvent(ctx Context, m mode.Mode, seq key.Sequence, fn func(key.Event)) error {
	return f.Register(Binding{Context: ctx, Mode: m, Sequence: seq, Callback: KeyEventParam{Fn: fn}})
}

// BindSequence registers a callback that receives the matched sequence.
func (f *Forest) BindSequence(ctx Context, m mode.Mode, seq key.Sequence, fn func(key.Sequence)) error {
	return f.Register(Binding{Context: ctx, Mode: m, Sequence: seq, Callback: SequenceParam{Fn: fn}})
}

// BindWeak registers method on target without keeping target alive.
// Once target is collected the binding reports ErrStaleTarget on
// invocation.
func BindWeak[T any](f *Forest, ctx Context, m mode.Mode, seq key.Sequence, target *T, method func(*T)) error {
	if target == nil || method == nil {
		return ErrNilCallback
	}
	wp := weak.Make(target)
	return f.Register(Binding{
		Context:  ctx,
		Mode:     m,
		Sequence: seq,
		Callback: NoParam{
			Fn: func() {
				if t := wp.Value(); t != nil {
					method(t)
				}
			},
			Alive: weakAlive(wp),
		},
	})
}

// BindWeakKeyEvent is BindWeak for methods taking the completing key event.
func BindWeakKeyEvent[T any](f *Forest, ctx Context, m mode.Mode, seq key.Sequence, target *T, method func(*T, key.Event)) error {
	if target == nil || method == nil {
		return ErrNilCallback
	}
	wp := weak.Make(target)
	return f.Register(Binding{
		Context:  ctx,
		Mode:     m,
		Sequence: seq,
		Callback: KeyEventParam{
			Fn: func(ev key.Event) {
				if t := wp.Value(); t != nil {
					method(t, ev)
				}
			},
			Alive: weakAlive(wp),
		},
	})
}

// BindWeakSequence is BindWeak for methods taking the matched sequence.
func BindWeakSequence[T any](f *Forest, ctx Context, m mode.Mode, seq key.Sequence, target *T, method func(*T, key.Sequence)) error {
	if target == nil || method == nil {
		return ErrNilCallback
	}
	wp := weak.Make(target)
	return f.Register(Binding{
		Context:  ctx,
		Mode:     m,
		Sequence: seq,
		Callback: SequenceParam{
			Fn: func(seq key.Sequence) {
				if t := wp.Value(); t != nil {
					method(t, seq)
				}
			},
			Alive: weakAlive(wp),
		},
	})
}

func weakAlive[T any](wp weak.Pointer[T]) func() bool {
	return func() bool { return wp.Value() != nil }
}
