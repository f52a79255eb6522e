package lua

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/chordmap/internal/action"
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
)

type fakeHost struct {
	mode     mode.Mode
	context  keymap.Context
	messages []string
	delayed  []delayedMode
}

type delayedMode struct {
	mode  mode.Mode
	delay time.Duration
}

func (h *fakeHost) Mode() mode.Mode { return h.mode }

func (h *fakeHost) SetMode(m mode.Mode) error {
	if !m.IsLive() {
		return mode.ErrInvalidMode
	}
	h.mode = m
	return nil
}

func (h *fakeHost) SetModeAfter(m mode.Mode, d time.Duration) {
	h.delayed = append(h.delayed, delayedMode{mode: m, delay: d})
}

func (h *fakeHost) Context() keymap.Context { return h.context }

func (h *fakeHost) SetContext(ctx keymap.Context) error {
	h.context = ctx
	return nil
}

func (h *fakeHost) ShowMessage(msg string) { h.messages = append(h.messages, msg) }

type fakeLogger struct {
	infos []string
	warns []string
}

func (l *fakeLogger) Info(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *fakeLogger) Warn(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *fakeHost, *fakeLogger) {
	t.Helper()
	host := &fakeHost{mode: mode.Normal, context: keymap.Generic}
	logger := &fakeLogger{}
	e := NewEngine(host, logger, opts...)
	t.Cleanup(func() { e.Close() })
	return e, host, logger
}

func resolveAndInvoke(t *testing.T, f *keymap.Forest, ctx keymap.Context, m mode.Mode, keys string) error {
	t.Helper()
	seq := key.MustParseSequence(keys)
	node, _, ok := f.Resolve(ctx, m, seq)
	if !ok || !node.IsTerminal() {
		t.Fatalf("no binding for %q in %s/%s", keys, ctx, m)
	}
	return keymap.Invoke(node.Callback(), seq.Last().Event(), seq)
}

func TestEngine_BindFunction(t *testing.T) {
	e, _, logger := newTestEngine(t)

	err := e.RunString("init.lua", `
local modal = require("modal")
modal.bind("viewport", "normal", "z z", function(keys)
    modal.log("pressed " .. keys)
end)
`)
	if err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}

	bindings := e.Bindings()
	if len(bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(bindings))
	}
	b := bindings[0]
	if b.Context != keymap.Viewport || b.Mode != mode.Normal {
		t.Errorf("binding tier = %s/%s", b.Context, b.Mode)
	}
	if b.Label != "lua:z z" {
		t.Errorf("Label = %q", b.Label)
	}

	forest := keymap.NewForest()
	if err := e.Apply(forest); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if err := resolveAndInvoke(t, forest, keymap.Viewport, mode.Normal, "zz"); err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}

	if len(logger.infos) != 1 || logger.infos[0] != "lua: pressed zz" {
		t.Errorf("infos = %q", logger.infos)
	}
}

func TestEngine_BindAction(t *testing.T) {
	ran := 0
	reg := action.NewRegistry(nil)
	reg.Register(action.Plain("view.top", "Top", func() error {
		ran++
		return nil
	}))

	e, _, _ := newTestEngine(t, WithActions(reg), WithLeader("<Space>"))
	if err := e.RunString("init.lua", `modal.bind("generic", "any", "<leader>t", "view.top")`); err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}

	forest := keymap.NewForest()
	if err := e.Apply(forest); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if err := resolveAndInvoke(t, forest, keymap.Generic, mode.Visual, "<Space>t"); err != nil {
		t.Fatal(err)
	}
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if e.Bindings()[0].Label != "view.top" {
		t.Errorf("Label = %q, want view.top", e.Bindings()[0].Label)
	}
}

func TestEngine_BindErrors(t *testing.T) {
	reg := action.NewRegistry(nil)
	reg.Register(action.Plain("view.top", "", func() error { return nil }))

	tests := []struct {
		name string
		code string
		want string
	}{
		{"bad context", `modal.bind("nowhere", "normal", "x", function() end)`, "invalid binding context"},
		{"bad mode", `modal.bind("generic", "replace", "x", function() end)`, "invalid mode"},
		{"bad keys", `modal.bind("generic", "normal", "<Q-x>", function() end)`, "invalid key specification"},
		{"bad target", `modal.bind("generic", "normal", "x", 42)`, "function expected"},
		{"unknown action", `modal.bind("generic", "normal", "x", "view.tpo")`, `did you mean "view.top"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t, WithActions(reg))
			err := e.RunString("bad.lua", tt.code)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err.Error(), tt.want)
			}
			if len(e.Bindings()) != 0 {
				t.Error("failed bind should not be collected")
			}
		})
	}
}

func TestEngine_ModeAndContext(t *testing.T) {
	e, host, _ := newTestEngine(t)

	err := e.RunString("init.lua", `
assert(modal.mode() == "normal")
assert(modal.context() == "generic")
modal.set_mode("visual-line")
modal.set_context("tree-view")
modal.message("hello")
`)
	if err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}
	if host.mode != mode.VisualLine {
		t.Errorf("mode = %v, want visual-line", host.mode)
	}
	if host.context != keymap.TreeView {
		t.Errorf("context = %v, want tree-view", host.context)
	}
	if len(host.messages) != 1 || host.messages[0] != "hello" {
		t.Errorf("messages = %q", host.messages)
	}
}

func TestEngine_SetModeAnyFails(t *testing.T) {
	e, _, _ := newTestEngine(t)
	err := e.RunString("init.lua", `modal.set_mode("any")`)
	if err == nil || !strings.Contains(err.Error(), "set_mode") {
		t.Errorf("RunString() = %v, want set_mode error", err)
	}
}

func TestEngine_SetModeAfter(t *testing.T) {
	e, host, _ := newTestEngine(t)
	if err := e.RunString("init.lua", `modal.set_mode_after("insert", 250)`); err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}
	want := delayedMode{mode: mode.Insert, delay: 250 * time.Millisecond}
	if len(host.delayed) != 1 || host.delayed[0] != want {
		t.Errorf("delayed = %+v, want [%+v]", host.delayed, want)
	}

	for _, code := range []string{
		`modal.set_mode_after("any", 10)`,
		`modal.set_mode_after("bogus", 10)`,
		`modal.set_mode_after("normal", -1)`,
	} {
		if err := e.RunString("bad.lua", code); err == nil {
			t.Errorf("RunString(%s) succeeded, want error", code)
		}
	}
	if len(host.delayed) != 1 {
		t.Errorf("delayed = %+v after bad calls", host.delayed)
	}
}

func TestEngine_CallbackErrorLogged(t *testing.T) {
	e, _, logger := newTestEngine(t)
	if err := e.RunString("init.lua", `modal.bind("generic", "normal", "x", function() error("boom") end)`); err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}

	forest := keymap.NewForest()
	if err := e.Apply(forest); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if err := resolveAndInvoke(t, forest, keymap.Generic, mode.Normal, "x"); err != nil {
		t.Fatalf("Invoke() = %v", err)
	}
	if len(logger.warns) != 1 || !strings.Contains(logger.warns[0], "boom") {
		t.Errorf("warns = %q", logger.warns)
	}
}

func TestEngine_ClosedCallbackIsStale(t *testing.T) {
	host := &fakeHost{mode: mode.Normal}
	e := NewEngine(host, nil)
	if err := e.RunString("init.lua", `modal.bind("generic", "normal", "x", function() end)`); err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}

	forest := keymap.NewForest()
	if err := e.Apply(forest); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	e.Close()

	err := resolveAndInvoke(t, forest, keymap.Generic, mode.Normal, "x")
	if !errors.Is(err, keymap.ErrStaleTarget) {
		t.Errorf("Invoke() = %v, want ErrStaleTarget", err)
	}
}

func TestEngine_ApplySealedForest(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if err := e.RunString("init.lua", `modal.bind("generic", "normal", "x", function() end)`); err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}

	forest := keymap.NewForest()
	forest.Seal()
	if err := e.Apply(forest); !errors.Is(err, keymap.ErrForestSealed) {
		t.Errorf("Apply() = %v, want ErrForestSealed", err)
	}
}

func TestEngine_ApplyKeepsValidBindings(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if err := e.RunString("init.lua", `
modal.bind("generic", "normal", "x", function() end)
modal.bind("generic", "normal", "y", function() end)
`); err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}
	// A rejected binding ahead of the script's bindings.
	e.bindings = append([]keymap.Binding{{
		Context:  keymap.Generic,
		Mode:     mode.Normal,
		Callback: keymap.NoParam{Fn: func() {}},
	}}, e.bindings...)

	forest := keymap.NewForest()
	err := e.Apply(forest)
	if !errors.Is(err, keymap.ErrEmptySequence) {
		t.Errorf("Apply() = %v, want ErrEmptySequence", err)
	}
	for _, keys := range []string{"x", "y"} {
		if err := resolveAndInvoke(t, forest, keymap.Generic, mode.Normal, keys); err != nil {
			t.Errorf("%s: Invoke() = %v", keys, err)
		}
	}
}

func TestEngine_RunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`modal.bind("generic", "normal", "q", function() end)`), 0o644); err != nil {
		t.Fatal(err)
	}

	e, _, _ := newTestEngine(t)
	if err := e.RunFile(path); err != nil {
		t.Fatalf("RunFile() failed: %v", err)
	}
	if scripts := e.Scripts(); len(scripts) != 1 || scripts[0] != path {
		t.Errorf("Scripts() = %v", scripts)
	}

	if err := e.RunFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestSandbox(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"io", `io.write("x")`},
		{"os", `os.exit(1)`},
		{"dofile", `dofile("/etc/passwd")`},
		{"loadstring", `loadstring("return 1")()`},
		{"require io", `require("io")`},
		{"require file", `require("evil")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			defer s.Close()
			if err := s.DoString(tt.code); err == nil {
				t.Errorf("DoString(%q) should fail in the sandbox", tt.code)
			}
		})
	}
}

func TestSandbox_SafeLibraries(t *testing.T) {
	s := NewState()
	defer s.Close()

	err := s.DoString(`
local s = require("string")
assert(s.upper("a") == "A")
assert(math.max(1, 2) == 2)
assert(table.concat({"a", "b"}, ",") == "a,b")
`)
	if err != nil {
		t.Errorf("DoString() failed: %v", err)
	}
}

func TestState_Timeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	err := s.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("DoString() = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := s.DoString(`x = 1`); err != nil {
		t.Errorf("DoString() after timeout failed: %v", err)
	}
}

func TestState_Closed(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()

	if !s.IsClosed() {
		t.Error("IsClosed() = false")
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() = %v, want ErrStateClosed", err)
	}
}
