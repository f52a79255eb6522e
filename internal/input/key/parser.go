package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a Chord.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Shift+V"
//   - Vim-style: "<C-s>", "<A-f>", "<S-v>", "<CR>", "<Esc>", "<Space>"
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKey(spec, ModNone)
}

// parseVimStyle parses the inside of "<...>" notation, e.g. "C-s", "A-F4".
func parseVimStyle(inner string) (Chord, error) {
	parts := strings.Split(strings.TrimSpace(inner), "-")

	// "<C-->" style: a trailing empty part means the key is '-'.
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = append(parts[:len(parts)-2], "-")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m", "d":
			mods = mods.With(ModMeta)
		default:
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}
	return parseKey(parts[len(parts)-1], mods)
}

// parseModifierStyle parses "Ctrl+S" style notation.
func parseModifierStyle(spec string) (Chord, error) {
	parts := strings.Split(spec, "+")

	// "Ctrl++" means Ctrl and the '+' key.
	if parts[len(parts)-1] == "" {
		parts = append(parts[:len(parts)-2], "+")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

// parseKey parses a key name or single character with known modifiers.
func parseKey(keyPart string, mods Modifier) (Chord, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Chord{}, ErrInvalidSpec
	}

	switch strings.ToLower(keyPart) {
	case "lt":
		return RuneChord('<', mods), nil
	case "gt":
		return RuneChord('>', mods), nil
	case "bar":
		return RuneChord('|', mods), nil
	case "bslash":
		return RuneChord('\\', mods), nil
	case "shift":
		return NewChord(KeyShift, mods), nil
	case "ctrl":
		return NewChord(KeyCtrl, mods), nil
	case "alt":
		return NewChord(KeyAlt, mods), nil
	case "meta":
		return NewChord(KeyMeta, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return RuneChord(r, mods), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewChord(k, mods), nil
	}

	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// NormalizeSpec parses and re-formats a key specification to Vim notation.
func NormalizeSpec(spec string) (string, error) {
	c, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return c.VimString(), nil
}
