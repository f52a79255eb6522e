package input

import (
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/vim"
)

// TrackerState is the state of the sequence tracker between key events.
type TrackerState uint8

const (
	// StateIdle means nothing has been typed.
	StateIdle TrackerState = iota

	// StateCounting means only count digits have been typed.
	StateCounting

	// StatePending means a prefix of a binding has been typed.
	StatePending
)

// String returns a string representation of the state.
func (s TrackerState) String() string {
	switch s {
	case StateCounting:
		return "counting"
	case StatePending:
		return "pending"
	default:
		return "idle"
	}
}

// Tracker holds the keys typed since the last reset.
type Tracker struct {
	sequence key.Sequence
	count    vim.CountBuffer
}

// State returns the tracker state.
func (t *Tracker) State() TrackerState {
	switch {
	case len(t.sequence) > 0:
		return StatePending
	case t.count.IsCounting():
		return StateCounting
	default:
		return StateIdle
	}
}

// Sequence returns a copy of the chords typed so far.
func (t *Tracker) Sequence() key.Sequence {
	return t.sequence.Clone()
}

// CountBuffer returns the count digits typed so far.
func (t *Tracker) CountBuffer() string {
	return t.count.String()
}

// IsCounting returns true while count digits are buffered.
func (t *Tracker) IsCounting() bool {
	return t.count.IsCounting()
}

// Count returns the clamped repeat count.
func (t *Tracker) Count() int {
	return t.count.Count()
}

// Display returns the feedback text: the count digits followed by the
// display names of the typed chords joined by " + ".
func (t *Tracker) Display() string {
	digits := t.count.String()
	if len(t.sequence) == 0 {
		return digits
	}
	if digits == "" {
		return t.sequence.DisplayString()
	}
	return digits + " " + t.sequence.DisplayString()
}

// acceptDigit offers c to the count buffer.
func (t *Tracker) acceptDigit(c key.Chord) (rune, bool) {
	return t.count.Accept(c, len(t.sequence) == 0)
}

func (t *Tracker) push(c key.Chord) {
	t.sequence = append(t.sequence, c)
}

func (t *Tracker) reset() {
	t.sequence = t.sequence[:0]
	t.count.Reset()
}
