package key

import (
	"strings"
	"unicode"
)

// Chord is one input unit: a key plus the modifiers held with it.
//
// Chords are comparable values and are used directly as map keys.
// Letter chords are normalized to lower case with Shift recorded in
// Mods, so "V" and Shift+v are the same chord. Shift is dropped for
// punctuation, where it is already part of the character.
type Chord struct {
	Key  Key
	Rune rune
	Mods Modifier
}

// NewChord creates a chord for a special key.
func NewChord(k Key, mods Modifier) Chord {
	if k == KeySpace {
		return Chord{Key: KeySpace, Mods: mods}
	}
	return Chord{Key: k, Mods: mods}
}

// RuneChord creates a normalized chord for a character key.
func RuneChord(r rune, mods Modifier) Chord {
	switch {
	case r == ' ':
		return Chord{Key: KeySpace, Mods: mods}
	case unicode.IsUpper(r):
		return Chord{Key: KeyRune, Rune: unicode.ToLower(r), Mods: mods.With(ModShift)}
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return Chord{Key: KeyRune, Rune: r, Mods: mods}
	default:
		return Chord{Key: KeyRune, Rune: r, Mods: mods.Without(ModShift)}
	}
}

// ChordOf converts a host key event into its chord.
func ChordOf(e Event) Chord {
	if e.Key == KeyRune {
		return RuneChord(e.Rune, e.Modifiers)
	}
	return NewChord(e.Key, e.Modifiers)
}

// IsZero returns true for the zero chord.
func (c Chord) IsZero() bool {
	return c == Chord{}
}

// Digit returns the digit character of a bare 0-9 chord.
// Any held modifier disqualifies the chord.
func (c Chord) Digit() (rune, bool) {
	if c.Key != KeyRune || c.Mods != ModNone {
		return 0, false
	}
	if c.Rune < '0' || c.Rune > '9' {
		return 0, false
	}
	return c.Rune, true
}

// Event returns a key event that produces this chord.
func (c Chord) Event() Event {
	if c.Key == KeyRune {
		r := c.Rune
		if c.Mods.HasShift() && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
		}
		return NewRuneEvent(r, c.Mods)
	}
	return NewSpecialEvent(c.Key, c.Mods)
}

// String returns a canonical representation such as "g", "S-v", "C-s"
// or "Esc".
func (c Chord) String() string {
	name := c.shortName()
	if c.Mods == ModNone {
		return name
	}
	return c.Mods.ShortString() + "-" + name
}

// DisplayName returns a label for on-screen feedback, such as "G" or
// "Ctrl+Shift+P".
func (c Chord) DisplayName() string {
	var name string
	if c.Key == KeyRune {
		name = strings.ToUpper(string(c.Rune))
	} else {
		name = c.Key.String()
	}
	if c.Mods == ModNone {
		return name
	}
	return c.Mods.String() + "+" + name
}

// VimString returns Vim notation: "g", "V", "<C-s>", "<Esc>".
func (c Chord) VimString() string {
	if c.Key == KeyRune {
		switch c.Mods {
		case ModNone:
			return string(c.Rune)
		case ModShift:
			if unicode.IsLetter(c.Rune) {
				return string(unicode.ToUpper(c.Rune))
			}
		}
	}

	var parts []string
	if c.Mods.HasCtrl() {
		parts = append(parts, "C")
	}
	if c.Mods.HasAlt() {
		parts = append(parts, "A")
	}
	if c.Mods.HasMeta() {
		parts = append(parts, "D")
	}
	if c.Mods.HasShift() {
		parts = append(parts, "S")
	}
	parts = append(parts, c.vimName())
	return "<" + strings.Join(parts, "-") + ">"
}

func (c Chord) shortName() string {
	switch c.Key {
	case KeyRune:
		return string(c.Rune)
	case KeyEscape:
		return "Esc"
	case KeyBackspace:
		return "BS"
	case KeyDelete:
		return "Del"
	case KeyInsert:
		return "Ins"
	case KeyPageUp:
		return "PgUp"
	case KeyPageDown:
		return "PgDn"
	default:
		return c.Key.String()
	}
}

func (c Chord) vimName() string {
	switch c.Key {
	case KeyRune:
		return string(c.Rune)
	case KeyEnter:
		return "CR"
	default:
		return c.shortName()
	}
}
