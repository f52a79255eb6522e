package keymap

import (
	"fmt"

	"github.com/dshills/chordmap/internal/input/key"
)

// Callback is the action attached to a terminal node. It is one of
// NoParam, KeyEventParam or SequenceParam.
type Callback interface {
	callback()
}

// NoParam is a callback that takes no arguments.
type NoParam struct {
	Fn func()

	// Alive reports whether the bound target still exists.
	// A nil Alive means the target is always alive.
	Alive func() bool
}

// KeyEventParam is a callback that receives the key event that
// completed the sequence.
type KeyEventParam struct {
	Fn    func(key.Event)
	Alive func() bool
}

// SequenceParam is a callback that receives the full matched sequence.
type SequenceParam struct {
	Fn    func(key.Sequence)
	Alive func() bool
}

func (NoParam) callback()       {}
func (KeyEventParam) callback() {}
func (SequenceParam) callback() {}

// Invoke calls cb with the arguments its variant takes.
// It returns ErrStaleTarget without calling anything if the target is gone.
func Invoke(cb Callback, ev key.Event, seq key.Sequence) error {
	switch c := cb.(type) {
	case NoParam:
		if !alive(c.Alive) {
			return ErrStaleTarget
		}
		c.Fn()
	case KeyEventParam:
		if !alive(c.Alive) {
			return ErrStaleTarget
		}
		c.Fn(ev)
	case SequenceParam:
		if !alive(c.Alive) {
			return ErrStaleTarget
		}
		c.Fn(seq)
	case nil:
		return ErrNilCallback
	default:
		return fmt.Errorf("unsupported callback type %T", cb)
	}
	return nil
}

func alive(fn func() bool) bool {
	return fn == nil || fn()
}

// Node is one trie node. Each node exclusively owns its children.
//
// A node with a callback is terminal. It may still have children, but
// they are unreachable during dispatch since the callback fires as soon
// as the node is reached.
type Node struct {
	children map[key.Chord]*Node
	callback Callback

	// Label describes the bound action for listings (e.g., "view.top").
	Label string
}

func newNode() *Node {
	return &Node{children: make(map[key.Chord]*Node)}
}

// Child returns the child for chord c, or nil.
func (n *Node) Child(c key.Chord) *Node {
	return n.children[c]
}

// Len returns the number of children.
func (n *Node) Len() int {
	return len(n.children)
}

// Callback returns the node's callback, or nil for a pure prefix node.
func (n *Node) Callback() Callback {
	return n.callback
}

// IsTerminal returns true if the node has a callback.
func (n *Node) IsTerminal() bool {
	return n.callback != nil
}

// Walk follows seq from n. It returns nil as soon as a chord has no
// child.
func (n *Node) Walk(seq key.Sequence) *Node {
	node := n
	for _, c := range seq {
		node = node.children[c]
		if node == nil {
			return nil
		}
	}
	return node
}

// FindOrCreateNode walks seq from n, creating missing nodes along the way.
func (n *Node) FindOrCreateNode(seq key.Sequence) *Node {
	node := n
	for _, c := range seq {
		child, ok := node.children[c]
		if !ok {
			child = newNode()
			node.children[c] = child
		}
		node = child
	}
	return node
}

// visit calls fn for every terminal node below n, depth first.
func (n *Node) visit(prefix key.Sequence, fn func(key.Sequence, *Node)) {
	if n.callback != nil {
		fn(prefix, n)
	}
	for c, child := range n.children {
		child.visit(append(prefix.Clone(), c), fn)
	}
}
