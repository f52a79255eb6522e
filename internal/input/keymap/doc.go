// Package keymap stores key bindings as tries of chords.
//
// A Forest holds one trie root per (Context, mode) pair. Bindings are
// registered at startup, the forest is sealed, and from then on it is
// only read.
//
// # Resolution
//
// A sequence typed in context C and mode M is walked through up to four
// roots, stopping at the first whose walk succeeds:
//
//	(C, M) → (C, Any) → (Generic, M) → (Generic, Any)
//
// The reached node is either a prefix (more keys expected) or terminal
// (its callback fires).
//
// # Registration
//
//	forest := keymap.NewForest()
//	forest.Bind(keymap.Viewport, mode.Normal, key.MustParseSequence("gg"), top)
//	keymap.BindWeak(forest, keymap.TreeView, mode.Any, seq, panel, (*Panel).Collapse)
//	forest.Seal()
//
// Weak bindings do not keep their target alive. A binding whose target
// has been collected is skipped at dispatch time.
package keymap
