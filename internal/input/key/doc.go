// Package key provides key event and chord types for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key down reported by the host
//   - Chord: The normalized, comparable form of an event used for matching
//   - Sequence: A series of chords forming a command
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-p>", "<CR>", "<Esc>"
//
// # Sequences
//
// Multi-key sequences like Vim's "g g" or "<Space>ff" are represented as
// Sequence values. Upper-case letters are equivalent to Shift plus the
// lower-case letter, so "G" and "<S-g>" name the same chord.
package key
