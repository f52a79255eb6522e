package backend

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/chordmap/internal/app"
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		st   app.Status
		want StatusLine
	}{
		{
			name: "normal with pending keys",
			st:   app.Status{Mode: mode.Normal, Context: keymap.Viewport, Buffer: "3 G"},
			want: StatusLine{Mode: " NORMAL ", Context: "viewport", Keys: "3 G", Right: "Top"},
		},
		{
			name: "insert shows input",
			st:   app.Status{Mode: mode.Insert, Context: keymap.Generic, Input: "abc"},
			want: StatusLine{Mode: " INSERT ", Context: "generic", Keys: "> abc", Right: "Top"},
		},
		{
			name: "message wins over last match",
			st:   app.Status{Mode: mode.Visual, Message: "hi", LastMatch: "j view.down"},
			want: StatusLine{Mode: " VISUAL ", Context: "text-editing", Right: "hi | Top"},
		},
		{
			name: "last match and capture",
			st:   app.Status{Mode: mode.VisualLine, LastMatch: "j view.down", Possessed: true},
			want: StatusLine{Mode: " V-LINE ", Context: "text-editing [capture]", Right: "j view.down | Top"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compose(tt.st, 0, 10); got != tt.want {
				t.Errorf("Compose() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatusLine_Body(t *testing.T) {
	s := StatusLine{Context: "viewport", Keys: "G", Right: "Top"}

	body := s.Body(30)
	if runewidth.StringWidth(body) != 30 {
		t.Fatalf("Body(30) is %d cells: %q", runewidth.StringWidth(body), body)
	}
	if !strings.HasPrefix(body, " viewport  G") || !strings.HasSuffix(body, "Top ") {
		t.Errorf("Body(30) = %q", body)
	}

	s.Right = strings.Repeat("x", 40)
	body = s.Body(30)
	if runewidth.StringWidth(body) != 30 || !strings.HasSuffix(body, "…") {
		t.Errorf("long right part not truncated: %q", body)
	}

	if got := s.Body(5); runewidth.StringWidth(got) != 5 {
		t.Errorf("Body(5) = %q", got)
	}
	if got := s.Body(0); got != "" {
		t.Errorf("Body(0) = %q", got)
	}
}

func TestScrollPosition(t *testing.T) {
	tests := []struct {
		cursor, total int
		want          string
	}{
		{0, 0, "All"},
		{0, 1, "All"},
		{0, 10, "Top"},
		{9, 10, "Bot"},
		{5, 11, "50%"},
	}
	for _, tt := range tests {
		if got := ScrollPosition(tt.cursor, tt.total); got != tt.want {
			t.Errorf("ScrollPosition(%d, %d) = %q, want %q", tt.cursor, tt.total, got, tt.want)
		}
	}
}
