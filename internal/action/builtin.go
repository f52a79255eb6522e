package action

import (
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/mode"
)

// Host is what the built-in actions act on.
type Host interface {
	SetMode(m mode.Mode) error
	ShowMessage(msg string)
	Quit()
}

// Built-in action names.
const (
	ModeNormal     = "mode.normal"
	ModeInsert     = "mode.insert"
	ModeVisual     = "mode.visual"
	ModeVisualLine = "mode.visual-line"
	MessageKeys    = "message.keys"
	MessageClear   = "message.clear"
	AppQuit        = "app.quit"
)

// Builtins returns the actions every host provides.
func Builtins(h Host) []Action {
	setMode := func(m mode.Mode) func() error {
		return func() error { return h.SetMode(m) }
	}
	return []Action{
		Plain(ModeNormal, "Switch to normal mode", setMode(mode.Normal)),
		Plain(ModeInsert, "Switch to insert mode", setMode(mode.Insert)),
		Plain(ModeVisual, "Switch to visual mode", setMode(mode.Visual)),
		Plain(ModeVisualLine, "Switch to visual line mode", setMode(mode.VisualLine)),
		WithSequence(MessageKeys, "Show the matched keys", func(seq key.Sequence) error {
			h.ShowMessage(seq.DisplayString())
			return nil
		}),
		Plain(MessageClear, "Clear the message line", func() error {
			h.ShowMessage("")
			return nil
		}),
		Plain(AppQuit, "Quit", func() error {
			h.Quit()
			return nil
		}),
	}
}

// RegisterBuiltins registers Builtins(h) in r.
func RegisterBuiltins(r *Registry, h Host) error {
	for _, a := range Builtins(h) {
		if err := r.Register(a); err != nil {
			return err
		}
	}
	return nil
}
