package mode

import (
	"errors"
	"testing"
)

func TestModeString(t *testing.T) {
	tests := []struct {
		mode    Mode
		name    string
		display string
	}{
		{Normal, "normal", "NORMAL"},
		{Insert, "insert", "INSERT"},
		{Visual, "visual", "VISUAL"},
		{VisualLine, "visual-line", "V-LINE"},
		{Any, "any", "ANY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.mode.DisplayName(); got != tt.display {
				t.Errorf("DisplayName() = %q, want %q", got, tt.display)
			}
		})
	}
}

func TestModeIsLive(t *testing.T) {
	for _, m := range []Mode{Normal, Insert, Visual, VisualLine} {
		if !m.IsLive() {
			t.Errorf("%s.IsLive() = false", m)
		}
	}
	if Any.IsLive() || Mode(42).IsLive() {
		t.Error("Any and out-of-range modes must not be live")
	}
}

func TestModeCursorStyle(t *testing.T) {
	if Insert.CursorStyle() != CursorBar {
		t.Error("insert should use a bar cursor")
	}
	if Normal.CursorStyle() != CursorBlock || VisualLine.CursorStyle() != CursorBlock {
		t.Error("non-insert modes should use a block cursor")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"normal", Normal},
		{"NORMAL", Normal},
		{"n", Normal},
		{"insert", Insert},
		{"v", Visual},
		{"V", VisualLine},
		{"visual-line", VisualLine},
		{"linewise", VisualLine},
		{"any", Any},
		{"", Any},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseMode("replace"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("ParseMode(replace) error = %v, want ErrInvalidMode", err)
	}
}
