package input

import (
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
)

// Result is the outcome of feeding one chord to the dispatcher.
type Result uint8

const (
	// Unhandled means no binding matched; the host should handle the key.
	Unhandled Result = iota

	// Pending means the chord was taken as a count digit or a prefix of a
	// longer binding.
	Pending

	// Handled means a binding fired.
	Handled
)

// String returns a string representation of the result.
func (r Result) String() string {
	switch r {
	case Pending:
		return "pending"
	case Handled:
		return "handled"
	default:
		return "unhandled"
	}
}

// Consumed returns true if the host should not handle the key itself.
func (r Result) Consumed() bool {
	return r != Unhandled
}

// Logger is the logging surface the dispatcher needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Feedback shows the in-progress sequence to the user.
type Feedback interface {
	// ShowBuffer displays the typed keys, e.g. "12 G + G".
	ShowBuffer(text string)

	// ClearBuffer hides the display.
	ClearBuffer()
}

// Publisher broadcasts dispatcher notifications.
type Publisher interface {
	Publish(topic string, payload any)
}

// Injector delivers a key to the host's native handling, bypassing the
// dispatcher.
type Injector interface {
	InjectNativeEscape() error
}

// Possessor takes over every key down while installed with Possess.
type Possessor interface {
	PossessedKeyDown(ev key.Event)

	// Dispossessed is called once when the possessor is removed.
	Dispossessed()
}

// Notification topics.
const (
	TopicModeChanged      = "input.mode.changed"
	TopicCountDigit       = "input.count.digit"
	TopicSequenceReset    = "input.sequence.reset"
	TopicSequenceAdvanced = "input.sequence.advanced"
	TopicSequenceMatched  = "input.sequence.matched"
)

// ModeChanged is published on TopicModeChanged.
type ModeChanged struct {
	From    mode.Mode
	To      mode.Mode
	Changed bool
}

// CountDigit is published on TopicCountDigit.
type CountDigit struct {
	// Digit is the digit just typed.
	Digit string

	// Buffer is every digit typed so far.
	Buffer string
}

// SequenceReset is published on TopicSequenceReset.
type SequenceReset struct{}

// SequenceAdvanced is published on TopicSequenceAdvanced when a chord
// extends a pending prefix.
type SequenceAdvanced struct {
	Sequence key.Sequence
	Count    string
}

// SequenceMatched is published on TopicSequenceMatched after a binding
// fires.
type SequenceMatched struct {
	Sequence key.Sequence
	Count    int
	Label    string
	Tier     keymap.Tier
}
