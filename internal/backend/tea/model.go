// Package tea hosts chordmap in a Bubble Tea program.
package tea

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/chordmap/internal/backend"
	"github.com/dshills/chordmap/internal/input/mode"
)

// Styles holds the lipgloss styles the model renders with.
type Styles struct {
	Modes  map[mode.Mode]lipgloss.Style
	Bar    lipgloss.Style
	Cursor lipgloss.Style
	Line   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().Bold(true)
	return Styles{
		Modes: map[mode.Mode]lipgloss.Style{
			mode.Normal:     badge.Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")),
			mode.Insert:     badge.Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0")),
			mode.Visual:     badge.Background(lipgloss.Color("5")).Foreground(lipgloss.Color("15")),
			mode.VisualLine: badge.Background(lipgloss.Color("5")).Foreground(lipgloss.Color("15")),
		},
		Bar:    lipgloss.NewStyle().Background(lipgloss.Color("8")).Foreground(lipgloss.Color("15")),
		Cursor: lipgloss.NewStyle().Reverse(true),
		Line:   lipgloss.NewStyle(),
	}
}

// taskMsg carries a function from the application loop into Update.
type taskMsg struct{ fn func() }

// quitMsg reports that the application quit.
type quitMsg struct{}

// Model is a Bubble Tea model driving an application.
type Model struct {
	app    backend.App
	styles Styles
	width  int
	height int

	// escapePending is set by the native injector while a key is being
	// handled; Update turns it into an Escape key message.
	escapePending bool
}

// New creates a model for a. It registers the model as a's native
// Escape injector.
func New(a backend.App) *Model {
	m := &Model{
		app:    a,
		styles: DefaultStyles(),
		width:  80,
		height: 24,
	}
	a.SetNativeInjector(m.injectEscape)
	return m
}

// Run runs a Bubble Tea program on the alternate screen until the
// application quits or ctx is done.
func Run(ctx context.Context, a backend.App, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(a), opts...).Run()
	return err
}

func (m *Model) injectEscape() error {
	m.escapePending = true
	return nil
}

// Init starts waiting on the application loop.
func (m *Model) Init() tea.Cmd {
	return m.waitForTask()
}

// waitForTask returns a command delivering the next loop function, or
// quitMsg once the application is done.
func (m *Model) waitForTask() tea.Cmd {
	loop, done := m.app.Loop(), m.app.Done()
	return func() tea.Msg {
		select {
		case fn := <-loop.C():
			return taskMsg{fn: fn}
		case <-done:
			return quitMsg{}
		}
	}
}

// Update handles keys, window sizes and loop functions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if ev, ok := convertKey(msg); ok {
			m.app.HandleKeyDown(ev)
		}
		return m, m.afterEvent()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.app.Viewport().SetHeight(m.height - 1)
		return m, nil

	case taskMsg:
		msg.fn()
		return m, tea.Batch(m.afterEvent(), m.waitForTask())

	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

// afterEvent quits once the application is done and delivers a pending
// native Escape.
func (m *Model) afterEvent() tea.Cmd {
	select {
	case <-m.app.Done():
		return tea.Quit
	default:
	}
	if m.escapePending {
		m.escapePending = false
		return func() tea.Msg { return tea.KeyMsg{Type: tea.KeyEsc} }
	}
	return nil
}

// View renders the viewport above the status line.
func (m *Model) View() string {
	v := m.app.Viewport()
	lines, first := v.Visible()
	rows := make([]string, 0, m.height)
	for i, line := range lines {
		if i >= m.height-1 {
			break
		}
		style := m.styles.Line
		if first+i == v.Cursor() {
			style = m.styles.Cursor
		}
		rows = append(rows, style.Width(m.width).MaxWidth(m.width).Render(line))
	}
	for len(rows) < m.height-1 {
		rows = append(rows, "")
	}

	st := m.app.Status()
	status := backend.Compose(st, v.Cursor(), v.Len())
	badge, ok := m.styles.Modes[st.Mode]
	if !ok {
		badge = m.styles.Bar
	}
	left := badge.Render(status.Mode)
	body := m.styles.Bar.Render(status.Body(m.width - lipgloss.Width(left)))
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, body))

	return strings.Join(rows, "\n")
}
