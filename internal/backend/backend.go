// Package backend holds what the chordmap hosts share: the application
// surface they drive and the status line layout they draw.
//
// Each host lives in a subpackage: terminal draws with tcell, tea runs a
// Bubble Tea program. A host owns the UI goroutine. It feeds key downs to
// App.HandleKeyDown, runs the functions App.Loop delivers, registers a
// native Escape injector and redraws after every event.
package backend

import (
	"github.com/dshills/chordmap/internal/app"
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/schedule"
)

// App is the application surface hosts drive. *app.Application
// implements it.
type App interface {
	HandleKeyDown(ev key.Event) bool
	Status() app.Status
	Viewport() *app.Viewport
	Loop() *schedule.Loop
	Done() <-chan struct{}
	SetNativeInjector(fn func() error)
}
