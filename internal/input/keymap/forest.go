package keymap

import (
	"sort"

	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/mode"
)

// Tier is one (context, mode) root consulted during resolution.
type Tier struct {
	Context Context
	Mode    mode.Mode
}

// Tiers returns the roots consulted for a live context and mode, in
// priority order:
//
//  1. (ctx, m)
//  2. (ctx, Any)
//  3. (Generic, m)
//  4. (Generic, Any)
//
// Duplicates are dropped, so Generic yields two tiers.
func Tiers(ctx Context, m mode.Mode) []Tier {
	all := [4]Tier{
		{ctx, m},
		{ctx, mode.Any},
		{Generic, m},
		{Generic, mode.Any},
	}
	out := make([]Tier, 0, len(all))
	for _, t := range all {
		dup := false
		for _, seen := range out {
			if seen == t {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

// Forest maps (context, mode) pairs to trie roots.
//
// A forest is built through the registration API and then sealed.
// Registration after Seal fails with ErrForestSealed, so readers never
// race writers and no locking is needed.
type Forest struct {
	roots  map[Tier]*Node
	sealed bool
}

// NewForest creates an empty, unsealed forest.
func NewForest() *Forest {
	return &Forest{roots: make(map[Tier]*Node)}
}

// GetOrCreateRoot returns the root for (ctx, m), creating it if needed.
// It must not be called on a sealed forest.
func (f *Forest) GetOrCreateRoot(ctx Context, m mode.Mode) *Node {
	t := Tier{ctx, m}
	root, ok := f.roots[t]
	if !ok {
		root = newNode()
		f.roots[t] = root
	}
	return root
}

// Root returns the root for (ctx, m), or nil if none was registered.
func (f *Forest) Root(ctx Context, m mode.Mode) *Node {
	return f.roots[Tier{ctx, m}]
}

// Len returns the number of roots.
func (f *Forest) Len() int {
	return len(f.roots)
}

// Seal stops further registration.
func (f *Forest) Seal() {
	f.sealed = true
}

// Sealed returns true once Seal has been called.
func (f *Forest) Sealed() bool {
	return f.sealed
}

// Resolve walks seq through each tier for (ctx, m) and returns the node
// reached in the first tier whose walk succeeds, whether that node is a
// prefix or terminal.
func (f *Forest) Resolve(ctx Context, m mode.Mode, seq key.Sequence) (*Node, Tier, bool) {
	if len(seq) == 0 {
		return nil, Tier{}, false
	}
	for _, t := range Tiers(ctx, m) {
		root := f.roots[t]
		if root == nil {
			continue
		}
		if node := root.Walk(seq); node != nil {
			return node, t, true
		}
	}
	return nil, Tier{}, false
}

// Entry describes one registered binding.
type Entry struct {
	Context  Context
	Mode     mode.Mode
	Sequence key.Sequence
	Label    string
}

// Entries lists every terminal binding, sorted by context, mode and
// key sequence.
func (f *Forest) Entries() []Entry {
	var out []Entry
	for t, root := range f.roots {
		root.visit(nil, func(seq key.Sequence, n *Node) {
			out = append(out, Entry{
				Context:  t.Context,
				Mode:     t.Mode,
				Sequence: seq,
				Label:    n.Label,
			})
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Context != b.Context {
			return a.Context < b.Context
		}
		if a.Mode != b.Mode {
			return a.Mode < b.Mode
		}
		return a.Sequence.String() < b.Sequence.String()
	})
	return out
}
