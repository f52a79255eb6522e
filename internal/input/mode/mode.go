package mode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned when a mode cannot be the live mode.
var ErrInvalidMode = errors.New("invalid mode")

// Mode is a modal state. Normal, Insert, Visual and VisualLine are live
// states; Any is a binding-time wildcard and is never current.
type Mode uint8

const (
	// Normal interprets keys as commands.
	Normal Mode = iota

	// Insert passes keys through to the host.
	Insert

	// Visual is character-wise selection.
	Visual

	// VisualLine is line-wise selection.
	VisualLine

	// Any matches every live mode when used in a binding.
	Any
)

// Standard mode names.
const (
	NameNormal     = "normal"
	NameInsert     = "insert"
	NameVisual     = "visual"
	NameVisualLine = "visual-line"
	NameAny        = "any"
)

var modeNames = [...]string{
	Normal:     NameNormal,
	Insert:     NameInsert,
	Visual:     NameVisual,
	VisualLine: NameVisualLine,
	Any:        NameAny,
}

// String returns the mode identifier (e.g., "normal", "visual-line").
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// DisplayName returns a human-readable name for the status line.
func (m Mode) DisplayName() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Visual:
		return "VISUAL"
	case VisualLine:
		return "V-LINE"
	case Any:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}

// CursorStyle returns the cursor style hosts should show in this mode.
func (m Mode) CursorStyle() CursorStyle {
	if m == Insert {
		return CursorBar
	}
	return CursorBlock
}

// IsLive returns true if m can be the current mode.
func (m Mode) IsLive() bool {
	return m <= VisualLine
}

// IsVisual returns true for the selection modes.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine
}

// ParseMode returns the mode for a name (case-insensitive).
// Accepts the standard names plus the short forms "n", "i", "v", "V"
// and "linewise".
func ParseMode(name string) (Mode, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "V" {
		return VisualLine, nil
	}
	switch strings.ToLower(trimmed) {
	case NameNormal, "n":
		return Normal, nil
	case NameInsert, "i":
		return Insert, nil
	case NameVisual, "v":
		return Visual, nil
	case NameVisualLine, "visualline", "visual_line", "linewise":
		return VisualLine, nil
	case NameAny, "*", "":
		return Any, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	default:
		return "unknown"
	}
}
