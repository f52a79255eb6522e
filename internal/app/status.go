package app

import (
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
)

// Status is what hosts draw on the status line.
type Status struct {
	Mode    mode.Mode
	Context keymap.Context

	// Buffer is the count and keys typed toward a binding.
	Buffer string

	// Message is the message line text.
	Message string

	// Input is the text typed in Insert mode.
	Input string

	// LastMatch describes the last binding that fired.
	LastMatch string

	Possessed bool
}

// Status returns a snapshot for drawing.
func (app *Application) Status() Status {
	return Status{
		Mode:      app.Mode(),
		Context:   app.Context(),
		Buffer:    app.buffer,
		Message:   app.message,
		Input:     string(app.typed),
		LastMatch: app.lastMatch,
		Possessed: app.dispatcher.IsPossessed(),
	}
}
