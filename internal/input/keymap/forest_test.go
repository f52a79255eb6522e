package keymap

import (
	"errors"
	"runtime"
	"testing"

	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/mode"
)

func seq(s string) key.Sequence {
	return key.MustParseSequence(s)
}

func TestTiers(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		mode mode.Mode
		want []Tier
	}{
		{
			name: "specific context",
			ctx:  Viewport,
			mode: mode.Normal,
			want: []Tier{
				{Viewport, mode.Normal},
				{Viewport, mode.Any},
				{Generic, mode.Normal},
				{Generic, mode.Any},
			},
		},
		{
			name: "generic context",
			ctx:  Generic,
			mode: mode.Visual,
			want: []Tier{
				{Generic, mode.Visual},
				{Generic, mode.Any},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tiers(tt.ctx, tt.mode)
			if len(got) != len(tt.want) {
				t.Fatalf("Tiers() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tiers()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGetOrCreateRoot(t *testing.T) {
	f := NewForest()
	a := f.GetOrCreateRoot(TreeView, mode.Normal)
	b := f.GetOrCreateRoot(TreeView, mode.Normal)
	if a != b {
		t.Error("GetOrCreateRoot should return the existing root")
	}
	if f.Root(TreeView, mode.Visual) != nil {
		t.Error("Root should be nil for an unregistered pair")
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
}

func TestFindOrCreateNode(t *testing.T) {
	root := newNode()
	leaf := root.FindOrCreateNode(seq("gg"))
	if root.FindOrCreateNode(seq("gg")) != leaf {
		t.Error("FindOrCreateNode should reuse existing nodes")
	}
	if root.Len() != 1 {
		t.Errorf("root children = %d, want 1", root.Len())
	}
	if root.Walk(seq("g")) == nil || root.Walk(seq("gg")) != leaf {
		t.Error("Walk did not follow created path")
	}
	if root.Walk(seq("gd")) != nil {
		t.Error("Walk should fail on a missing chord")
	}
}

func TestRegisterErrors(t *testing.T) {
	f := NewForest()
	noop := func() {}

	if err := f.Bind(Generic, mode.Normal, nil, noop); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("empty sequence error = %v", err)
	}
	if err := f.Bind(Generic, mode.Normal, seq("x"), nil); !errors.Is(err, ErrNilCallback) {
		t.Errorf("nil callback error = %v", err)
	}
	if err := f.Bind(Context(99), mode.Normal, seq("x"), noop); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("invalid context error = %v", err)
	}
	if err := f.Bind(Generic, mode.Mode(99), seq("x"), noop); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("invalid mode error = %v", err)
	}
	if err := f.Register(Binding{Context: Generic, Sequence: seq("x")}); !errors.Is(err, ErrNilCallback) {
		t.Errorf("missing callback error = %v", err)
	}

	f.Seal()
	if err := f.Bind(Generic, mode.Normal, seq("x"), noop); !errors.Is(err, ErrForestSealed) {
		t.Errorf("sealed error = %v", err)
	}
	if f.Len() != 0 {
		t.Errorf("failed registrations created %d roots", f.Len())
	}
}

func TestReRegistrationLastWins(t *testing.T) {
	f := NewForest()
	var got string
	_ = f.Bind(Viewport, mode.Normal, seq("gg"), func() { got = "first" })
	_ = f.Bind(Viewport, mode.Normal, seq("gg"), func() { got = "second" })

	node, _, ok := f.Resolve(Viewport, mode.Normal, seq("gg"))
	if !ok {
		t.Fatal("Resolve failed")
	}
	if err := Invoke(node.Callback(), key.Event{}, nil); err != nil {
		t.Fatal(err)
	}
	if got != "second" {
		t.Errorf("invoked %q, want second", got)
	}
}

func TestResolveTierOrder(t *testing.T) {
	f := NewForest()
	_ = f.Register(Binding{Context: Generic, Mode: mode.Any, Sequence: seq("x"), Callback: NoParam{Fn: func() {}}, Label: "generic-any"})
	_ = f.Register(Binding{Context: Generic, Mode: mode.Normal, Sequence: seq("x"), Callback: NoParam{Fn: func() {}}, Label: "generic-normal"})
	_ = f.Register(Binding{Context: Viewport, Mode: mode.Any, Sequence: seq("x"), Callback: NoParam{Fn: func() {}}, Label: "viewport-any"})
	_ = f.Register(Binding{Context: Viewport, Mode: mode.Normal, Sequence: seq("x"), Callback: NoParam{Fn: func() {}}, Label: "viewport-normal"})
	_ = f.Register(Binding{Context: Generic, Mode: mode.Any, Sequence: seq("gz"), Callback: NoParam{Fn: func() {}}, Label: "generic-gz"})

	tests := []struct {
		name      string
		ctx       Context
		mode      mode.Mode
		keys      string
		wantLabel string
		wantTier  Tier
	}{
		{"exact", Viewport, mode.Normal, "x", "viewport-normal", Tier{Viewport, mode.Normal}},
		{"context any", Viewport, mode.Visual, "x", "viewport-any", Tier{Viewport, mode.Any}},
		{"generic mode", TreeView, mode.Normal, "x", "generic-normal", Tier{Generic, mode.Normal}},
		{"generic any", TreeView, mode.Visual, "x", "generic-any", Tier{Generic, mode.Any}},
		{"generic sequence from specific context", Viewport, mode.Normal, "gz", "generic-gz", Tier{Generic, mode.Any}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, tier, ok := f.Resolve(tt.ctx, tt.mode, seq(tt.keys))
			if !ok {
				t.Fatal("Resolve failed")
			}
			if node.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", node.Label, tt.wantLabel)
			}
			if tier != tt.wantTier {
				t.Errorf("tier = %v, want %v", tier, tt.wantTier)
			}
		})
	}
}

func TestResolvePrefixStopsAtFirstTier(t *testing.T) {
	f := NewForest()
	_ = f.Bind(Viewport, mode.Normal, seq("gg"), func() {})
	_ = f.Bind(Generic, mode.Any, seq("g"), func() {})

	node, tier, ok := f.Resolve(Viewport, mode.Normal, seq("g"))
	if !ok {
		t.Fatal("Resolve failed")
	}
	if node.IsTerminal() {
		t.Error("expected the specific tier's prefix node, got a terminal")
	}
	if tier != (Tier{Viewport, mode.Normal}) {
		t.Errorf("tier = %v", tier)
	}

	if _, _, ok := f.Resolve(Viewport, mode.Normal, seq("q")); ok {
		t.Error("unregistered chord should not resolve")
	}
	if _, _, ok := f.Resolve(Viewport, mode.Normal, nil); ok {
		t.Error("empty sequence should not resolve")
	}
}

func TestTerminalNodeWithChildren(t *testing.T) {
	f := NewForest()
	_ = f.Bind(Generic, mode.Any, seq("d"), func() {})
	_ = f.Bind(Generic, mode.Any, seq("dd"), func() {})

	node, _, _ := f.Resolve(Generic, mode.Normal, seq("d"))
	if !node.IsTerminal() || node.Len() != 1 {
		t.Error("prefix node should be terminal and keep its child")
	}
}

func TestInvokeVariants(t *testing.T) {
	ev := key.NewRuneEvent('h', key.ModNone)
	s := seq("gh")

	var gotEvent key.Event
	var gotSeq key.Sequence
	calls := 0

	cases := []Callback{
		NoParam{Fn: func() { calls++ }},
		KeyEventParam{Fn: func(e key.Event) { gotEvent = e }},
		SequenceParam{Fn: func(q key.Sequence) { gotSeq = q }},
	}
	for _, cb := range cases {
		if err := Invoke(cb, ev, s); err != nil {
			t.Fatalf("Invoke(%T) error = %v", cb, err)
		}
	}

	if calls != 1 {
		t.Errorf("NoParam calls = %d", calls)
	}
	if !gotEvent.Equals(ev) {
		t.Errorf("KeyEventParam got %v", gotEvent)
	}
	if !gotSeq.Equals(s) {
		t.Errorf("SequenceParam got %v", gotSeq)
	}
	if err := Invoke(nil, ev, s); !errors.Is(err, ErrNilCallback) {
		t.Errorf("Invoke(nil) error = %v", err)
	}
}

func TestInvokeStale(t *testing.T) {
	called := false
	cb := NoParam{Fn: func() { called = true }, Alive: func() bool { return false }}
	if err := Invoke(cb, key.Event{}, nil); !errors.Is(err, ErrStaleTarget) {
		t.Errorf("error = %v, want ErrStaleTarget", err)
	}
	if called {
		t.Error("stale callback was invoked")
	}
}

type panel struct {
	name string
	hits int
	last key.Sequence
	ev   key.Event
	_    [64]byte
}

func (p *panel) Hit() { p.hits++ }

func (p *panel) HitSeq(s key.Sequence) {
	p.hits++
	p.last = s
}

func (p *panel) HitEvent(e key.Event) {
	p.hits++
	p.ev = e
}

func TestBindWeakAlive(t *testing.T) {
	f := NewForest()
	p := &panel{name: "outline"}

	if err := BindWeak(f, TreeView, mode.Normal, seq("za"), p, (*panel).Hit); err != nil {
		t.Fatal(err)
	}
	if err := BindWeakSequence(f, TreeView, mode.Normal, seq("zc"), p, (*panel).HitSeq); err != nil {
		t.Fatal(err)
	}
	if err := BindWeakKeyEvent(f, TreeView, mode.Normal, seq("zo"), p, (*panel).HitEvent); err != nil {
		t.Fatal(err)
	}

	for _, keys := range []string{"za", "zc", "zo"} {
		node, _, ok := f.Resolve(TreeView, mode.Normal, seq(keys))
		if !ok {
			t.Fatalf("Resolve(%q) failed", keys)
		}
		if err := Invoke(node.Callback(), key.NewRuneEvent('o', key.ModNone), seq(keys)); err != nil {
			t.Fatalf("Invoke(%q) error = %v", keys, err)
		}
	}

	if p.hits != 3 {
		t.Errorf("hits = %d, want 3", p.hits)
	}
	if !p.last.Equals(seq("zc")) {
		t.Errorf("last sequence = %v", p.last)
	}
	runtime.KeepAlive(p)
}

func TestBindWeakStale(t *testing.T) {
	f := NewForest()
	p := &panel{name: "gone"}
	if err := BindWeak(f, TreeView, mode.Normal, seq("za"), p, (*panel).Hit); err != nil {
		t.Fatal(err)
	}
	p = nil
	runtime.GC()
	runtime.GC()

	node, _, ok := f.Resolve(TreeView, mode.Normal, seq("za"))
	if !ok {
		t.Fatal("Resolve failed")
	}
	if err := Invoke(node.Callback(), key.Event{}, nil); !errors.Is(err, ErrStaleTarget) {
		t.Errorf("Invoke error = %v, want ErrStaleTarget", err)
	}
}

func TestBindWeakNil(t *testing.T) {
	f := NewForest()
	if err := BindWeak[panel](f, TreeView, mode.Normal, seq("za"), nil, (*panel).Hit); !errors.Is(err, ErrNilCallback) {
		t.Errorf("error = %v, want ErrNilCallback", err)
	}
}

func TestEntries(t *testing.T) {
	f := NewForest()
	_ = f.Register(Binding{Context: Viewport, Mode: mode.Normal, Sequence: seq("gg"), Callback: NoParam{Fn: func() {}}, Label: "view.top"})
	_ = f.Register(Binding{Context: TextEditing, Mode: mode.Any, Sequence: seq("x"), Callback: NoParam{Fn: func() {}}, Label: "text.cut"})
	_ = f.Register(Binding{Context: Viewport, Mode: mode.Normal, Sequence: seq("g"), Callback: NoParam{Fn: func() {}}, Label: "view.g"})

	entries := f.Entries()
	if len(entries) != 3 {
		t.Fatalf("len(Entries()) = %d, want 3", len(entries))
	}
	wantLabels := []string{"text.cut", "view.g", "view.top"}
	for i, e := range entries {
		if e.Label != wantLabels[i] {
			t.Errorf("entries[%d].Label = %q, want %q", i, e.Label, wantLabels[i])
		}
	}
}
