// Package input implements modal key-chord dispatch for chordmap.
//
// The Dispatcher sits between a host's raw key events and the bindings
// stored in a keymap.Forest:
//
//	host key down
//	  → Escape, possession and native-escape handling
//	  → mode gate (Insert passes keys through)
//	  → built-in mode keys (i, v, V from Normal)
//	  → ProcessChord: count prefix, then tiered trie lookup
//	  → pending / handled / unhandled
//
// HandleKeyDown returns true when the key was consumed, including the
// case where it only extended a pending sequence. A false return tells
// the host to apply its own handling.
//
// # Notifications
//
// Collaborators observe the dispatcher through a Publisher, which
// receives mode changes, count digits, sequence progress, matches and
// resets under the Topic* names, and a Feedback that displays the keys
// typed so far.
//
// # Usage
//
//	forest := keymap.NewForest()
//	forest.Bind(keymap.Viewport, mode.Normal, key.MustParseSequence("gg"), top)
//
//	d, err := input.NewDispatcher(input.DefaultConfig(), forest,
//	    input.WithFeedback(status), input.WithPublisher(bus))
//	if err != nil {
//	    return err
//	}
//	d.SetContext(keymap.Viewport)
//
//	if !d.HandleKeyDown(ev) {
//	    // native handling
//	}
package input
