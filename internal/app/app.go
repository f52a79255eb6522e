// Package app wires chordmap's collaborators into a running application:
// settings, the action registry, the binding forest built from defaults,
// keymap files and Lua scripts, the input dispatcher, the event bus and
// the UI loop that hosts drive.
//
// All Application state is owned by the UI goroutine. Hosts call
// HandleKeyDown and Status from that goroutine and run the functions
// received from Loop().C() there too; timers and the config watcher only
// ever post onto the loop.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/chordmap/internal/action"
	"github.com/dshills/chordmap/internal/config"
	"github.com/dshills/chordmap/internal/event"
	"github.com/dshills/chordmap/internal/input"
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
	"github.com/dshills/chordmap/internal/plugin/lua"
	"github.com/dshills/chordmap/internal/schedule"
)

// Defaults for Options.
const (
	DefaultLoopSize   = 64
	DefaultViewHeight = 20
)

// Application is the central coordinator for chordmap.
type Application struct {
	settings config.Settings
	inputCfg input.Config
	logger   *Logger

	bus        *event.Bus
	loop       *schedule.Loop
	scheduler  *schedule.Scheduler
	actions    *action.Registry
	dispatcher *input.Dispatcher
	engine     *lua.Engine
	watcher    *config.Watcher
	viewport   *Viewport
	subs       []*event.Subscription

	native func() error

	buffer    string
	message   string
	typed     []rune
	lastMatch string

	quitOnce sync.Once
	done     chan struct{}
	shutdown bool
}

// Options configures the application.
type Options struct {
	// Settings are the loaded settings. Use config.DefaultSettings for none.
	Settings config.Settings

	// Logger receives application logs. Defaults to NullLogger.
	Logger *Logger

	// LoopSize is the capacity of the UI loop queue.
	LoopSize int

	// ViewHeight is the initial number of visible viewport rows.
	ViewHeight int
}

// New creates an Application and builds its binding forest. Problems in
// individual bindings, keymap files or scripts do not fail New: they are
// logged and shown as a message, and the remaining bindings are used.
func New(opts Options) (*Application, error) {
	if opts.Logger == nil {
		opts.Logger = NullLogger
	}
	if opts.LoopSize <= 0 {
		opts.LoopSize = DefaultLoopSize
	}
	if opts.ViewHeight <= 0 {
		opts.ViewHeight = DefaultViewHeight
	}

	inputCfg, err := opts.Settings.InputConfig()
	if err != nil {
		return nil, NewComponentError("config", "input settings", err)
	}

	app := &Application{
		settings: opts.Settings,
		inputCfg: inputCfg,
		logger:   opts.Logger,
		loop:     schedule.NewLoop(opts.LoopSize),
		viewport: NewViewport(nil, opts.ViewHeight),
		done:     make(chan struct{}),
	}
	app.scheduler = schedule.New(app.loop)
	app.bus = event.NewBus(
		event.WithSource("chordmap"),
		event.WithPanicHandler(func(ev event.Event, r any) {
			app.logger.WithComponent("event").Error("handler for %s panicked: %v", ev.Topic, r)
		}),
	)

	app.actions = action.NewRegistry(app.actionFailed)
	if err := action.RegisterBuiltins(app.actions, app); err != nil {
		return nil, NewComponentError("action", "register builtins", err)
	}
	if err := app.registerActions(); err != nil {
		return nil, NewComponentError("action", "register", err)
	}

	forest, engine, bindErr := app.buildForest()
	app.engine = engine

	app.dispatcher, err = input.NewDispatcher(inputCfg, forest,
		input.WithLogger(app.logger.WithComponent("input")),
		input.WithFeedback(app),
		input.WithPublisher(app.bus),
		input.WithInjector(app),
	)
	if err != nil {
		engine.Close()
		return nil, NewComponentError("input", "create dispatcher", err)
	}
	app.refreshViewport()

	if err := app.subscribe(); err != nil {
		app.Shutdown()
		return nil, NewComponentError("event", "subscribe", err)
	}

	if bindErr != nil {
		app.reportBindErrors(bindErr)
	}

	if app.settings.Watch {
		if err := app.startWatcher(); err != nil {
			app.logger.WithComponent("watcher").Warn("not watching config: %v", err)
		}
	}

	app.logger.Info("started in %s mode, %d bindings", app.Mode(), len(forest.Entries()))
	return app, nil
}

// buildForest builds and seals a forest from the default bindings, the
// keymap files and the scripts, in that order. It returns the Lua engine
// owning the script callbacks and every problem found along the way.
func (app *Application) buildForest() (*keymap.Forest, *lua.Engine, error) {
	s := app.settings
	leader := s.Input.Leader
	forest := keymap.NewForest()
	var errs []error

	if !s.NoDefaults {
		if err := config.ApplyDefaults(forest, app.actions, leader); err != nil {
			errs = append(errs, NewComponentError("keymap", config.DefaultsSource, err))
		}
	}

	for _, path := range s.Keymaps {
		km, err := config.LoadKeymap(path)
		if err != nil {
			errs = append(errs, NewComponentError("keymap", "load", err))
			continue
		}
		if err := config.ApplyKeymap(forest, app.actions, km, leader); err != nil {
			errs = append(errs, NewComponentError("keymap", path, err))
		}
	}

	engine := lua.NewEngine(app, app.logger.WithComponent("lua"),
		lua.WithActions(app.actions),
		lua.WithLeader(leader),
	)
	for _, path := range s.Scripts {
		if err := engine.RunFile(path); err != nil {
			errs = append(errs, NewComponentError("lua", "run", err))
		}
	}
	if err := engine.Apply(forest); err != nil {
		errs = append(errs, NewComponentError("lua", "apply", err))
	}

	forest.Seal()
	return forest, engine, errors.Join(errs...)
}

func (app *Application) reportBindErrors(err error) {
	app.logger.WithComponent("keymap").Warn("%v", err)
	n := 1
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		n = len(joined.Unwrap())
	}
	if n == 1 {
		app.ShowMessage(err.Error())
		return
	}
	app.ShowMessage(fmt.Sprintf("%d keymap problems, see log", n))
}

func (app *Application) actionFailed(name string, err error) {
	app.logger.WithComponent("action").Warn("%s: %v", name, err)
	app.ShowMessage(fmt.Sprintf("%s: %v", name, err))
}

// HandleKeyDown routes a host key down through the dispatcher. Keys the
// dispatcher does not consume get the application's native handling.
// It returns true when the dispatcher consumed the key.
func (app *Application) HandleKeyDown(ev key.Event) bool {
	if app.shutdown {
		return false
	}
	if app.dispatcher.HandleKeyDown(ev) {
		return true
	}
	app.handleNative(ev)
	return false
}

// HandleKeyUp forwards a host key up to the dispatcher's listeners.
func (app *Application) HandleKeyUp(ev key.Event) {
	if app.shutdown {
		return
	}
	app.dispatcher.HandleKeyUp(ev)
}

// handleNative edits the input line in Insert mode. A native Escape
// clears it without leaving the mode.
func (app *Application) handleNative(ev key.Event) {
	switch {
	case ev.IsEscape():
		app.typed = app.typed[:0]
		app.message = ""
	case app.Mode() != mode.Insert:
	case ev.IsChar():
		app.typed = append(app.typed, ev.Rune)
	case ev.Key == key.KeySpace && !ev.IsModified():
		app.typed = append(app.typed, ' ')
	case ev.Key == key.KeyBackspace:
		if len(app.typed) > 0 {
			app.typed = app.typed[:len(app.typed)-1]
		}
	case ev.Key == key.KeyEnter:
		app.message = string(app.typed)
		app.typed = app.typed[:0]
	}
}

// Mode returns the current mode. Before the dispatcher exists, for
// example while startup scripts run, it is the configured initial mode.
func (app *Application) Mode() mode.Mode {
	if app.dispatcher == nil {
		return app.inputCfg.InitialMode
	}
	return app.dispatcher.Mode()
}

// SetMode switches mode. Before the dispatcher exists it changes the
// initial mode instead.
func (app *Application) SetMode(m mode.Mode) error {
	if app.dispatcher == nil {
		if !m.IsLive() {
			return fmt.Errorf("%w: %s", mode.ErrInvalidMode, m)
		}
		app.inputCfg.InitialMode = m
		return nil
	}
	return app.dispatcher.SetMode(m)
}

// SetModeAfter switches to m after d. The switch runs on the UI loop and
// can be cancelled through the returned task.
func (app *Application) SetModeAfter(m mode.Mode, d time.Duration) {
	app.ScheduleMode(m, d)
}

// ScheduleMode is SetModeAfter returning the task handle.
func (app *Application) ScheduleMode(m mode.Mode, d time.Duration) *schedule.Task {
	return app.scheduler.After(d, func() {
		if err := app.SetMode(m); err != nil {
			app.logger.Warn("delayed mode %s: %v", m, err)
		}
	})
}

// Context returns the current binding context.
func (app *Application) Context() keymap.Context {
	if app.dispatcher == nil {
		return app.inputCfg.InitialContext
	}
	return app.dispatcher.Context()
}

// SetContext sets the binding context.
func (app *Application) SetContext(ctx keymap.Context) error {
	if !ctx.IsValid() {
		return keymap.ErrInvalidContext
	}
	if app.dispatcher == nil {
		app.inputCfg.InitialContext = ctx
		return nil
	}
	return app.dispatcher.SetContext(ctx)
}

// ShowMessage sets the message line. An empty message clears it.
func (app *Application) ShowMessage(msg string) {
	app.message = msg
}

// ShowBuffer displays the keys typed so far.
func (app *Application) ShowBuffer(text string) {
	app.buffer = text
}

// ClearBuffer hides the typed keys.
func (app *Application) ClearBuffer() {
	app.buffer = ""
}

// SetNativeInjector sets how InjectNativeEscape reaches the host. Hosts
// call it once they can deliver keys.
func (app *Application) SetNativeInjector(fn func() error) {
	app.native = fn
}

// InjectNativeEscape asks the host to deliver a plain Escape.
func (app *Application) InjectNativeEscape() error {
	if app.native == nil {
		return ErrNoNativeInjector
	}
	return app.native()
}

// Quit asks the host to stop. It is safe to call from any goroutine.
func (app *Application) Quit() {
	app.quitOnce.Do(func() { close(app.done) })
}

// Done is closed once Quit has been called.
func (app *Application) Done() <-chan struct{} {
	return app.done
}

// Loop returns the UI loop hosts drain.
func (app *Application) Loop() *schedule.Loop {
	return app.loop
}

// Bus returns the event bus carrying dispatcher notifications.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Dispatcher returns the input dispatcher.
func (app *Application) Dispatcher() *input.Dispatcher {
	return app.dispatcher
}

// Actions returns the action registry.
func (app *Application) Actions() *action.Registry {
	return app.actions
}

// Viewport returns the binding list view.
func (app *Application) Viewport() *Viewport {
	return app.viewport
}

// Settings returns the settings the application was built from.
func (app *Application) Settings() config.Settings {
	return app.settings
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}
