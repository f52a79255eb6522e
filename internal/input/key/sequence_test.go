package key

import (
	"errors"
	"testing"
)

func TestChordStrings(t *testing.T) {
	tests := []struct {
		chord   Chord
		str     string
		display string
		vim     string
	}{
		{RuneChord('g', ModNone), "g", "G", "g"},
		{RuneChord('V', ModNone), "S-v", "Shift+V", "V"},
		{RuneChord('s', ModCtrl), "C-s", "Ctrl+S", "<C-s>"},
		{RuneChord('p', ModCtrl|ModShift), "C-S-p", "Ctrl+Shift+P", "<C-S-p>"},
		{NewChord(KeyEscape, ModNone), "Esc", "Escape", "<Esc>"},
		{NewChord(KeyEnter, ModNone), "Enter", "Enter", "<CR>"},
		{NewChord(KeySpace, ModNone), "Space", "Space", "<Space>"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.chord.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.chord.DisplayName(); got != tt.display {
				t.Errorf("DisplayName() = %q, want %q", got, tt.display)
			}
			if got := tt.chord.VimString(); got != tt.vim {
				t.Errorf("VimString() = %q, want %q", got, tt.vim)
			}
		})
	}
}

func TestChordDigit(t *testing.T) {
	tests := []struct {
		chord Chord
		want  rune
		ok    bool
	}{
		{RuneChord('0', ModNone), '0', true},
		{RuneChord('7', ModNone), '7', true},
		{RuneChord('1', ModCtrl), 0, false},
		{RuneChord('1', ModShift), 0, false},
		{RuneChord('a', ModNone), 0, false},
		{NewChord(KeyF1, ModNone), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.chord.Digit()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%v.Digit() = (%q, %v), want (%q, %v)", tt.chord, got, ok, tt.want, tt.ok)
		}
	}
}

func TestChordEventRoundTrip(t *testing.T) {
	for _, c := range []Chord{
		RuneChord('V', ModNone),
		RuneChord('x', ModAlt),
		NewChord(KeyTab, ModShift),
	} {
		if got := c.Event().Chord(); got != c {
			t.Errorf("Event().Chord() = %v, want %v", got, c)
		}
	}
}

func TestSequenceBasicOperations(t *testing.T) {
	var empty Sequence
	if !empty.IsEmpty() || empty.Len() != 0 || !empty.Last().IsZero() {
		t.Error("zero sequence should be empty")
	}

	seq := SequenceOf(RuneChord('g', ModNone), RuneChord('d', ModNone))
	if seq.Len() != 2 {
		t.Errorf("Len() = %d, want 2", seq.Len())
	}
	if seq.Last() != RuneChord('d', ModNone) {
		t.Errorf("Last() = %v, want d", seq.Last())
	}
}

func TestSequenceFormatting(t *testing.T) {
	seq := MustParseSequence("<C-x>gG")

	if got := seq.String(); got != "C-x g S-g" {
		t.Errorf("String() = %q", got)
	}
	if got := seq.VimString(); got != "<C-x>gG" {
		t.Errorf("VimString() = %q", got)
	}
	if got := seq.DisplayString(); got != "Ctrl+X + G + Shift+G" {
		t.Errorf("DisplayString() = %q", got)
	}
}

func TestSequenceEqualsAndPrefix(t *testing.T) {
	gg := MustParseSequence("gg")
	g := MustParseSequence("g")
	gd := MustParseSequence("gd")

	if !gg.Equals(MustParseSequence("g g")) {
		t.Error("continuous and spaced forms should be equal")
	}
	if gg.Equals(gd) || gg.Equals(g) {
		t.Error("different sequences compared equal")
	}
	if !gg.HasPrefix(g) || !gg.HasPrefix(nil) {
		t.Error("expected prefix match")
	}
	if g.HasPrefix(gg) || gd.HasPrefix(MustParseSequence("gg")) {
		t.Error("unexpected prefix match")
	}
}

func TestSequenceClone(t *testing.T) {
	seq := MustParseSequence("dw")
	clone := seq.Clone()
	clone[0] = RuneChord('c', ModNone)

	if seq[0] != RuneChord('d', ModNone) {
		t.Error("Clone shares backing storage")
	}
	if Sequence(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		input string
		want  Sequence
	}{
		{"gg", SequenceOf(RuneChord('g', ModNone), RuneChord('g', ModNone))},
		{"G G", SequenceOf(RuneChord('g', ModShift), RuneChord('g', ModShift))},
		{"<C-x><C-s>", SequenceOf(RuneChord('x', ModCtrl), RuneChord('s', ModCtrl))},
		{"Ctrl+x Ctrl+s", SequenceOf(RuneChord('x', ModCtrl), RuneChord('s', ModCtrl))},
		{"<Space>ff", SequenceOf(NewChord(KeySpace, ModNone), RuneChord('f', ModNone), RuneChord('f', ModNone))},
		{"a<b", SequenceOf(RuneChord('a', ModNone), RuneChord('<', ModNone), RuneChord('b', ModNone))},
		{"12", SequenceOf(RuneChord('1', ModNone), RuneChord('2', ModNone))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSequence(tt.input)
			if err != nil {
				t.Fatalf("ParseSequence(%q) error = %v", tt.input, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("ParseSequence(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSequenceErrors(t *testing.T) {
	if _, err := ParseSequence("  "); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("empty input error = %v, want ErrEmptySpec", err)
	}
	if _, err := ParseSequence("g <X-q>"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("bad chord error = %v, want ErrInvalidSpec", err)
	}
	if _, err := ParseSequence("<Bogus>"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("bad bracket error = %v, want ErrInvalidSpec", err)
	}
}

func TestExpandLeader(t *testing.T) {
	tests := []struct {
		spec   string
		leader string
		want   string
	}{
		{"<leader>ff", "<Space>", "<Space>ff"},
		{"<Leader> w", ",", ", w"},
		{"<leader><leader>", "\\", "\\\\"},
		{"gg", ",", "gg"},
		{"<leader>x", "", "<leader>x"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := ExpandLeader(tt.spec, tt.leader); got != tt.want {
				t.Errorf("ExpandLeader(%q, %q) = %q, want %q", tt.spec, tt.leader, got, tt.want)
			}
		})
	}
}
