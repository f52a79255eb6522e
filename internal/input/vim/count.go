package vim

import (
	"github.com/dshills/chordmap/internal/input/key"
)

// Count limits.
const (
	MinCount = 1
	MaxCount = 999
)

// CountBuffer accumulates a count prefix typed before a command, as in
// "12H".
//
// Digits are only accepted at the very start of a sequence. Once the
// first command chord has been typed, later digits belong to the
// sequence itself.
type CountBuffer struct {
	digits []rune

	// value saturates just above MaxCount so long digit runs cannot
	// overflow.
	value int
}

// Accept offers chord c as a count digit. seqEmpty reports whether the
// command sequence is still empty. It returns the digit and true when
// the chord was taken into the buffer. Chords with any modifier held are
// never count digits.
func (b *CountBuffer) Accept(c key.Chord, seqEmpty bool) (rune, bool) {
	if !seqEmpty {
		return 0, false
	}
	r, ok := c.Digit()
	if !ok {
		return 0, false
	}
	b.digits = append(b.digits, r)
	if b.value <= MaxCount {
		b.value = b.value*10 + int(r-'0')
	}
	return r, true
}

// IsCounting returns true while digits are buffered.
func (b *CountBuffer) IsCounting() bool {
	return len(b.digits) > 0
}

// Count returns the buffered count clamped to [MinCount, MaxCount].
// An empty buffer counts as 1.
func (b *CountBuffer) Count() int {
	return Clamp(b.value)
}

// String returns the digits typed so far.
func (b *CountBuffer) String() string {
	return string(b.digits)
}

// Reset clears the buffer.
func (b *CountBuffer) Reset() {
	b.digits = b.digits[:0]
	b.value = 0
}

// Clamp bounds n to [MinCount, MaxCount].
func Clamp(n int) int {
	switch {
	case n < MinCount:
		return MinCount
	case n > MaxCount:
		return MaxCount
	default:
		return n
	}
}
