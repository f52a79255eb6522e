package key

import (
	"fmt"
	"time"
	"unicode"
)

// Event is a single key-down (or key-up) reported by the host.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the held modifier keys.
	Modifiers Modifier

	// Repeat is set when the host reports an auto-repeat of a held key.
	Repeat bool

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(k Key, r rune, mods Modifier) Event {
	return Event{
		Key:       k,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return NewEvent(KeyRune, r, mods)
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return NewEvent(k, 0, mods)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if any modifier is pressed.
// For character events Shift alone does not count, since it is part
// of the character.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// IsEscape returns true for the Escape key, with any modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape
}

// IsShiftEscape returns true for Shift+Escape.
func (e Event) IsShiftEscape() bool {
	return e.Key == KeyEscape && e.Modifiers.HasShift()
}

// IsModifierOnly returns true when the event is a bare modifier key down.
func (e Event) IsModifierOnly() bool {
	return e.Key.IsModifierKey()
}

// Chord returns the normalized chord for this event.
func (e Event) Chord() Chord {
	return ChordOf(e)
}

// String returns the canonical chord string.
func (e Event) String() string {
	return e.Chord().String()
}

// Equals returns true if two events produce the same chord.
// Timestamps and the repeat flag are not compared.
func (e Event) Equals(other Event) bool {
	return e.Chord() == other.Chord()
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Chord() == parsed
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s, Repeat: %t}",
		e.Key.String(), e.Rune, e.Modifiers.String(), e.Repeat)
}
