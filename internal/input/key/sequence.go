package key

import (
	"strings"
)

// Sequence is an ordered run of chords forming a command.
// Examples: "g g" (go to top), "<Space> f f", "<C-x> <C-s>".
type Sequence []Chord

// SequenceOf builds a sequence from chords.
func SequenceOf(chords ...Chord) Sequence {
	return Sequence(chords)
}

// Len returns the number of chords in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty returns true if the sequence has no chords.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Last returns the final chord, or the zero chord if empty.
func (s Sequence) Last() Chord {
	if len(s) == 0 {
		return Chord{}
	}
	return s[len(s)-1]
}

// String returns the chords joined by spaces, e.g. "g g" or "C-x C-s".
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// VimString returns continuous Vim notation, e.g. "gg" or "<C-x><C-s>".
func (s Sequence) VimString() string {
	var sb strings.Builder
	for _, c := range s {
		sb.WriteString(c.VimString())
	}
	return sb.String()
}

// DisplayString returns the feedback form, e.g. "G + G".
func (s Sequence) DisplayString() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.DisplayName()
	}
	return strings.Join(parts, " + ")
}

// Equals returns true if both sequences hold the same chords.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if s starts with prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	return s[:len(prefix)].Equals(prefix)
}

// Clone returns an independent copy.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// ParseSequence parses a key sequence string.
// The string can hold space-separated specs ("g g", "Ctrl+x Ctrl+s")
// or a continuous Vim-style run ("gg", "<C-x><C-s>", "<Space>ff").
func ParseSequence(s string) (Sequence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySpec
	}

	if strings.Contains(s, " ") {
		fields := strings.Fields(s)
		seq := make(Sequence, 0, len(fields))
		for _, part := range fields {
			c, err := Parse(part)
			if err != nil {
				return nil, err
			}
			seq = append(seq, c)
		}
		return seq, nil
	}

	seq := make(Sequence, 0, len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if runes[i] == '<' {
			end := indexRune(runes[i:], '>')
			if end > 1 {
				c, err := Parse(string(runes[i : i+end+1]))
				if err != nil {
					return nil, err
				}
				seq = append(seq, c)
				i += end + 1
				continue
			}
		}
		seq = append(seq, RuneChord(runes[i], ModNone))
		i++
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}

func indexRune(rs []rune, r rune) int {
	for i, c := range rs {
		if c == r {
			return i
		}
	}
	return -1
}

// LeaderToken is the placeholder for the leader key in sequence specs.
const LeaderToken = "<leader>"

// ExpandLeader replaces every LeaderToken in spec with leader, ignoring
// case. An empty leader leaves spec unchanged.
func ExpandLeader(spec, leader string) string {
	if leader == "" {
		return spec
	}
	lower := strings.ToLower(spec)
	var sb strings.Builder
	for {
		i := strings.Index(lower, LeaderToken)
		if i < 0 {
			sb.WriteString(spec)
			return sb.String()
		}
		sb.WriteString(spec[:i])
		sb.WriteString(leader)
		spec = spec[i+len(LeaderToken):]
		lower = lower[i+len(LeaderToken):]
	}
}
