package lua

import (
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/chordmap/internal/action"
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
)

// ModuleName is the name scripts require.
const ModuleName = "modal"

// Host is what the modal module acts on.
type Host interface {
	Mode() mode.Mode
	SetMode(m mode.Mode) error
	SetModeAfter(m mode.Mode, d time.Duration)
	Context() keymap.Context
	SetContext(ctx keymap.Context) error
	ShowMessage(msg string)
}

// Logger receives modal.log output and callback errors.
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// Engine runs scripts against a Host and collects their bindings.
type Engine struct {
	state    *State
	host     Host
	actions  *action.Registry
	logger   Logger
	leader   string
	bindings []keymap.Binding
	scripts  []string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithActions lets modal.bind name registered actions.
func WithActions(r *action.Registry) EngineOption {
	return func(e *Engine) {
		e.actions = r
	}
}

// WithLeader sets the key that replaces "<leader>" in bound sequences.
func WithLeader(leader string) EngineOption {
	return func(e *Engine) {
		e.leader = leader
	}
}

// WithStateOptions configures the underlying State.
func WithStateOptions(opts ...StateOption) EngineOption {
	return func(e *Engine) {
		e.state = NewState(opts...)
	}
}

// NewEngine creates an engine with a fresh sandboxed state.
func NewEngine(host Host, logger Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		host:   host,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.state == nil {
		e.state = NewState()
	}

	e.state.PreloadModule(ModuleName, map[string]lua.LGFunction{
		"bind":           e.bind,
		"set_mode":       e.setMode,
		"set_mode_after": e.setModeAfter,
		"mode":           e.mode,
		"context":        e.context,
		"set_context":    e.setContext,
		"log":            e.log,
		"message":        e.message,
	})
	return e
}

// RunFile runs a script file.
func (e *Engine) RunFile(path string) error {
	if err := e.state.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	e.scripts = append(e.scripts, path)
	return nil
}

// RunString runs script source. name identifies it in errors.
func (e *Engine) RunString(name, code string) error {
	if err := e.state.DoString(code); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	e.scripts = append(e.scripts, name)
	return nil
}

// Scripts returns the names of the scripts run so far.
func (e *Engine) Scripts() []string {
	return append([]string(nil), e.scripts...)
}

// Bindings returns the bindings collected so far.
func (e *Engine) Bindings() []keymap.Binding {
	return append([]keymap.Binding(nil), e.bindings...)
}

// Apply registers the collected bindings in forest, in the order the
// scripts made them. A binding the forest rejects does not stop the rest;
// every rejection is returned joined.
func (e *Engine) Apply(forest *keymap.Forest) error {
	if forest.Sealed() {
		return keymap.ErrForestSealed
	}
	var errs []error
	for _, b := range e.bindings {
		if err := forest.Register(b); err != nil {
			errs = append(errs, fmt.Errorf("lua binding %q: %w", b.Sequence.VimString(), err))
		}
	}
	return errors.Join(errs...)
}

// State returns the engine's Lua state.
func (e *Engine) State() *State {
	return e.state
}

// Close releases the Lua state. Bound Lua callbacks stop working.
func (e *Engine) Close() error {
	return e.state.Close()
}

// bind(context, mode, keys, fn_or_action, description?)
func (e *Engine) bind(L *lua.LState) int {
	ctx, err := keymap.ParseContext(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	m, err := mode.ParseMode(L.CheckString(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	keys := L.CheckString(3)
	seq, err := key.ParseSequence(key.ExpandLeader(keys, e.leader))
	if err != nil {
		L.ArgError(3, err.Error())
		return 0
	}
	label := L.OptString(5, "")

	var cb keymap.Callback
	switch target := L.Get(4).(type) {
	case *lua.LFunction:
		cb = e.luaCallback(target, keys)
		if label == "" {
			label = "lua:" + keys
		}
	case lua.LString:
		if e.actions == nil {
			L.RaiseError("bind: no action registry available")
			return 0
		}
		a, err := e.actions.Lookup(string(target))
		if err != nil {
			L.ArgError(4, err.Error())
			return 0
		}
		cb = a.Callback(e.actions.ErrorFunc())
		if label == "" {
			label = a.Name
		}
	default:
		L.TypeError(4, lua.LTFunction)
		return 0
	}

	e.bindings = append(e.bindings, keymap.Binding{
		Context:  ctx,
		Mode:     m,
		Sequence: seq,
		Callback: cb,
		Label:    label,
	})
	return 0
}

func (e *Engine) luaCallback(fn *lua.LFunction, keys string) keymap.Callback {
	return keymap.SequenceParam{
		Fn: func(seq key.Sequence) {
			if err := e.state.CallFunction(fn, lua.LString(seq.VimString())); err != nil && e.logger != nil {
				e.logger.Warn("lua binding %q: %v", keys, err)
			}
		},
		Alive: func() bool { return !e.state.IsClosed() },
	}
}

// set_mode(name)
func (e *Engine) setMode(L *lua.LState) int {
	m, err := mode.ParseMode(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if err := e.host.SetMode(m); err != nil {
		L.RaiseError("set_mode: %v", err)
	}
	return 0
}

// set_mode_after(name, milliseconds)
func (e *Engine) setModeAfter(L *lua.LState) int {
	m, err := mode.ParseMode(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if !m.IsLive() {
		L.ArgError(1, fmt.Sprintf("%q is not a live mode", m))
		return 0
	}
	ms := L.CheckInt(2)
	if ms < 0 {
		L.ArgError(2, "delay must not be negative")
		return 0
	}
	e.host.SetModeAfter(m, time.Duration(ms)*time.Millisecond)
	return 0
}

// mode() -> string
func (e *Engine) mode(L *lua.LState) int {
	L.Push(lua.LString(e.host.Mode().String()))
	return 1
}

// context() -> string
func (e *Engine) context(L *lua.LState) int {
	L.Push(lua.LString(e.host.Context().String()))
	return 1
}

// set_context(name)
func (e *Engine) setContext(L *lua.LState) int {
	ctx, err := keymap.ParseContext(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if err := e.host.SetContext(ctx); err != nil {
		L.RaiseError("set_context: %v", err)
	}
	return 0
}

// log(msg)
func (e *Engine) log(L *lua.LState) int {
	msg := L.CheckString(1)
	if e.logger != nil {
		e.logger.Info("lua: %s", msg)
	}
	return 0
}

// message(msg)
func (e *Engine) message(L *lua.LState) int {
	e.host.ShowMessage(L.OptString(1, ""))
	return 0
}
