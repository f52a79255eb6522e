// Package terminal hosts chordmap on a tcell screen.
package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/chordmap/internal/backend"
	"github.com/dshills/chordmap/internal/input/mode"
)

var modeStyles = map[mode.Mode]tcell.Style{
	mode.Normal:     tcell.StyleDefault.Bold(true).Background(tcell.ColorBlue).Foreground(tcell.ColorWhite),
	mode.Insert:     tcell.StyleDefault.Bold(true).Background(tcell.ColorGreen).Foreground(tcell.ColorBlack),
	mode.Visual:     tcell.StyleDefault.Bold(true).Background(tcell.ColorPurple).Foreground(tcell.ColorWhite),
	mode.VisualLine: tcell.StyleDefault.Bold(true).Background(tcell.ColorPurple).Foreground(tcell.ColorWhite),
}

var (
	barStyle    = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
	cursorStyle = tcell.StyleDefault.Reverse(true)
)

// Terminal draws an application on a tcell screen and feeds it keys.
type Terminal struct {
	screen tcell.Screen
	app    backend.App
}

// New creates a terminal host on the process's terminal.
func New(a backend.App) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, a), nil
}

// NewWithScreen creates a terminal host on screen, which is not yet
// initialized.
func NewWithScreen(screen tcell.Screen, a backend.App) *Terminal {
	return &Terminal{screen: screen, app: a}
}

// Run initializes the screen and runs the UI until the application
// quits or ctx is done. The screen is restored before Run returns.
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	defer t.screen.Fini()
	t.screen.EnablePaste()
	t.app.SetNativeInjector(t.injectEscape)

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go t.pollEvents(events, quit)

	t.resize()
	t.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.app.Done():
			return nil
		case ev := <-events:
			t.handleEvent(ev)
		case fn := <-t.app.Loop().C():
			fn()
		}
		t.draw()
	}
}

func (t *Terminal) pollEvents(events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// injectEscape queues a plain Escape behind the keys already waiting.
func (t *Terminal) injectEscape() error {
	return t.screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
}

func (t *Terminal) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if kev, ok := convertKey(e); ok {
			t.app.HandleKeyDown(kev)
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
}

func (t *Terminal) resize() {
	_, h := t.screen.Size()
	t.app.Viewport().SetHeight(h - 1)
}

// draw paints the viewport above a one-line status bar.
func (t *Terminal) draw() {
	s := t.screen
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	v := t.app.Viewport()
	lines, first := v.Visible()
	for i, line := range lines {
		if i >= h-1 {
			break
		}
		style := tcell.StyleDefault
		if first+i == v.Cursor() {
			style = cursorStyle
			fill(s, 0, i, w, style)
		}
		putString(s, 0, i, w, line, style)
	}

	st := t.app.Status()
	status := backend.Compose(st, v.Cursor(), v.Len())
	badge, ok := modeStyles[st.Mode]
	if !ok {
		badge = barStyle
	}
	row := h - 1
	x := putString(s, 0, row, w, status.Mode, badge)
	putString(s, x, row, w, status.Body(w-x), barStyle)

	// The input line only exists in Insert mode, where the cursor sits
	// at its end. Elsewhere the highlighted row is the cursor.
	if st.Mode.CursorStyle() == mode.CursorBar {
		s.SetCursorStyle(tcell.CursorStyleSteadyBar)
		s.ShowCursor(x+runewidth.StringWidth(" "+status.Context+"  "+status.Keys), row)
	} else {
		s.SetCursorStyle(tcell.CursorStyleSteadyBlock)
		s.HideCursor()
	}
	s.Show()
}

func fill(s tcell.Screen, x, y, w int, style tcell.Style) {
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// putString draws str from x on row y, clipped at w, and returns the
// column after it.
func putString(s tcell.Screen, x, y, w int, str string, style tcell.Style) int {
	for _, r := range str {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
