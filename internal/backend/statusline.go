package backend

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/chordmap/internal/app"
	"github.com/dshills/chordmap/internal/input/mode"
)

// StatusLine is the status line text, split into the parts hosts style
// separately.
type StatusLine struct {
	// Mode is the padded mode badge, e.g. " NORMAL ".
	Mode string

	// Context names the focused binding context.
	Context string

	// Keys is the pending count and keys, or the input line in Insert
	// mode.
	Keys string

	// Right is the message, or the last match, and the scroll position.
	Right string
}

// Compose builds the status line for st with the viewport cursor at
// cursor of total lines.
func Compose(st app.Status, cursor, total int) StatusLine {
	s := StatusLine{
		Mode:    " " + st.Mode.DisplayName() + " ",
		Context: st.Context.String(),
		Keys:    st.Buffer,
	}
	if st.Mode == mode.Insert && s.Keys == "" {
		s.Keys = "> " + st.Input
	}
	if st.Possessed {
		s.Context += " [capture]"
	}

	info := st.Message
	if info == "" {
		info = st.LastMatch
	}
	pos := ScrollPosition(cursor, total)
	if info == "" {
		s.Right = pos
	} else {
		s.Right = info + " | " + pos
	}
	return s
}

// Body lays out everything after the mode badge in exactly width cells:
// context and keys on the left, Right flush right. Right is truncated
// first when space runs out.
func (s StatusLine) Body(width int) string {
	if width <= 0 {
		return ""
	}
	left := " " + s.Context
	if s.Keys != "" {
		left += "  " + s.Keys
	}
	right := s.Right + " "

	lw := runewidth.StringWidth(left)
	if lw >= width {
		return runewidth.FillRight(runewidth.Truncate(left, width, "…"), width)
	}
	if rw := runewidth.StringWidth(right); lw+rw > width {
		right = runewidth.Truncate(right, width-lw, "…")
	}
	gap := width - lw - runewidth.StringWidth(right)
	return left + strings.Repeat(" ", gap) + right
}

// ScrollPosition formats the cursor position: "All" when everything
// fits, "Top", "Bot", or a percentage.
func ScrollPosition(cursor, total int) string {
	switch {
	case total <= 1:
		return "All"
	case cursor <= 0:
		return "Top"
	case cursor >= total-1:
		return "Bot"
	default:
		return fmt.Sprintf("%d%%", cursor*100/(total-1))
	}
}
