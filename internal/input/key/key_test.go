package key

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyTab, "Tab"},
		{KeyUp, "Up"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{KeySpace, "Space"},
		{KeyShift, "Shift"},
		{KeyMeta, "Meta"},
		{KeyRune, "Rune"},
		{Key(999), "Key(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyIsSpecial(t *testing.T) {
	tests := []struct {
		key  Key
		want bool
	}{
		{KeyNone, false},
		{KeyRune, false},
		{KeyEscape, true},
		{KeyF1, true},
		{KeyUp, true},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := tt.key.IsSpecial(); got != tt.want {
				t.Errorf("Key.IsSpecial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyClassification(t *testing.T) {
	if !KeyF5.IsFunctionKey() || KeyEscape.IsFunctionKey() {
		t.Error("IsFunctionKey misclassified")
	}
	if !KeyLeft.IsArrowKey() || KeyHome.IsArrowKey() {
		t.Error("IsArrowKey misclassified")
	}

	for _, k := range []Key{KeyShift, KeyCtrl, KeyAlt, KeyMeta} {
		if !k.IsModifierKey() {
			t.Errorf("%v.IsModifierKey() = false, want true", k)
		}
	}
	for _, k := range []Key{KeyRune, KeyEscape, KeyF12} {
		if k.IsModifierKey() {
			t.Errorf("%v.IsModifierKey() = true, want false", k)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"escape", KeyEscape},
		{"Esc", KeyEscape},
		{"CR", KeyEnter},
		{"return", KeyEnter},
		{"bs", KeyBackspace},
		{" pgdn ", KeyPageDown},
		{"F10", KeyF10},
		{"unknown", KeyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFromName(tt.name); got != tt.want {
				t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
