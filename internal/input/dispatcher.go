package input

import (
	"errors"

	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
)

// Dispatcher turns host key events into binding invocations.
//
// It is driven from the host's input goroutine, one event at a time,
// and is not safe for concurrent use. The forest it reads is sealed, so
// matching takes no locks.
type Dispatcher struct {
	config Config

	forest  *keymap.Forest
	modes   *mode.Controller
	tracker Tracker
	context keymap.Context

	logger    Logger
	feedback  Feedback
	publisher Publisher
	injector  Injector
	metrics   *Metrics

	possessor      Possessor
	keyUpListeners []func(key.Event)

	// nativeEscapes counts injected Escapes not yet seen. Hosts deliver
	// them behind keys already queued, so only a plain Escape consumes one
	// and reaches the host untouched.
	nativeEscapes int

	// dispatching is set while binding callbacks run.
	dispatching bool

	closed bool
}

// NewDispatcher creates a dispatcher over forest. The forest is sealed
// if it is not already.
func NewDispatcher(cfg Config, forest *keymap.Forest, opts ...Option) (*Dispatcher, error) {
	if forest == nil {
		return nil, ErrNilForest
	}
	modes, err := mode.NewController(cfg.InitialMode)
	if err != nil {
		return nil, err
	}
	if !cfg.InitialContext.IsValid() {
		return nil, keymap.ErrInvalidContext
	}

	forest.Seal()
	d := &Dispatcher{
		config:  cfg,
		forest:  forest,
		modes:   modes,
		context: cfg.InitialContext,
		logger:  nopLogger{},
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(d)
	}

	// Registered first so every other listener sees a reset tracker.
	modes.OnChange(d.onModeChange)
	return d, nil
}

func (d *Dispatcher) onModeChange(tr mode.Transition) {
	d.Reset()
	d.logger.Debug("mode %s -> %s", tr.From, tr.To)
	d.publish(TopicModeChanged, ModeChanged{From: tr.From, To: tr.To, Changed: tr.Changed})
}

// HandleKeyDown processes one key down from the host. It returns true
// when the key was consumed and false when the host should apply its
// own handling.
func (d *Dispatcher) HandleKeyDown(ev key.Event) bool {
	if d.closed {
		return false
	}
	timer := d.metrics.StartKeyDownTimer()
	defer timer.Stop()

	consumed := d.handleKeyDown(ev)
	if !consumed {
		d.metrics.RecordPassthrough()
	}
	return consumed
}

func (d *Dispatcher) handleKeyDown(ev key.Event) bool {
	if d.nativeEscapes > 0 && ev.IsEscape() && ev.Modifiers == key.ModNone {
		d.nativeEscapes--
		return false
	}

	if ev.IsShiftEscape() && d.injector != nil {
		d.nativeEscapes++
		if err := d.injector.InjectNativeEscape(); err != nil {
			d.nativeEscapes--
			d.logger.Warn("native escape: %v", err)
		} else {
			return true
		}
	}

	if ev.IsEscape() {
		d.Unpossess()
		d.setMode(mode.Normal)
		return true
	}

	if d.possessor != nil {
		d.possessor.PossessedKeyDown(ev)
		return true
	}

	current := d.modes.Current()
	if current == mode.Insert {
		return false
	}

	if ev.IsModifierOnly() {
		return d.config.SwallowModifierKeys
	}

	if len(d.tracker.sequence) == 0 {
		if next, ok := d.modes.Builtin(ev.Chord()); ok {
			d.setMode(next)
			return true
		}
	}

	return d.ProcessChord(ev).Consumed()
}

// HandleKeyUp forwards a key up to the registered listeners. Key ups are
// never consumed.
func (d *Dispatcher) HandleKeyUp(ev key.Event) bool {
	if d.closed {
		return false
	}
	listeners := make([]func(key.Event), len(d.keyUpListeners))
	copy(listeners, d.keyUpListeners)
	for _, fn := range listeners {
		if fn != nil {
			fn(ev)
		}
	}
	return false
}

// OnKeyUp registers a key up listener.
// Returns a function to unregister the listener.
func (d *Dispatcher) OnKeyUp(fn func(key.Event)) func() {
	d.keyUpListeners = append(d.keyUpListeners, fn)
	index := len(d.keyUpListeners) - 1
	return func() {
		if index < len(d.keyUpListeners) {
			d.keyUpListeners[index] = nil
		}
	}
}

// ProcessChord feeds one key event to the sequence tracker and the
// binding forest, regardless of mode.
//
// A bare digit typed before any other chord is buffered as a count. Any
// other chord extends the sequence, which is resolved through the
// forest's tiers. A prefix leaves the sequence pending. A terminal node
// has its callback invoked count times, and the tracker resets. No match
// resets the tracker and reports Unhandled.
func (d *Dispatcher) ProcessChord(ev key.Event) Result {
	if d.closed {
		return Unhandled
	}
	if d.dispatching {
		d.logger.Warn("ignoring %s: dispatch already in progress", ev)
		return Unhandled
	}
	r := d.processChord(ev)
	d.metrics.RecordResult(r)
	return r
}

func (d *Dispatcher) processChord(ev key.Event) Result {
	c := ev.Chord()

	if digit, ok := d.tracker.acceptDigit(c); ok {
		d.publish(TopicCountDigit, CountDigit{Digit: string(digit), Buffer: d.tracker.CountBuffer()})
		d.showFeedback()
		return Pending
	}

	d.tracker.push(c)
	d.showFeedback()

	node, tier, ok := d.forest.Resolve(d.context, d.modes.Current(), d.tracker.sequence)
	if !ok {
		d.logger.Debug("no binding for %q in %s/%s", d.tracker.sequence.VimString(), d.context, d.modes.Current())
		d.Reset()
		return Unhandled
	}

	if !node.IsTerminal() {
		d.publish(TopicSequenceAdvanced, SequenceAdvanced{
			Sequence: d.tracker.Sequence(),
			Count:    d.tracker.CountBuffer(),
		})
		return Pending
	}

	seq := d.tracker.Sequence()
	count := d.tracker.Count()
	invoked, err := d.invoke(node.Callback(), ev, seq, count)
	d.Reset()

	if err != nil {
		if errors.Is(err, keymap.ErrStaleTarget) {
			d.metrics.RecordStaleTarget()
		}
		d.logger.Warn("binding %q (%s): %v", seq.VimString(), node.Label, err)
		if invoked == 0 {
			return Unhandled
		}
	}

	d.publish(TopicSequenceMatched, SequenceMatched{
		Sequence: seq,
		Count:    invoked,
		Label:    node.Label,
		Tier:     tier,
	})
	return Handled
}

// invoke runs cb count times, stopping at the first error.
func (d *Dispatcher) invoke(cb keymap.Callback, ev key.Event, seq key.Sequence, count int) (int, error) {
	d.dispatching = true
	defer func() { d.dispatching = false }()

	invoked := 0
	for range count {
		if err := keymap.Invoke(cb, ev, seq); err != nil {
			d.metrics.RecordInvocations(invoked)
			return invoked, err
		}
		invoked++
	}
	d.metrics.RecordInvocations(invoked)
	return invoked, nil
}

// Reset clears the typed sequence and count and notifies collaborators.
func (d *Dispatcher) Reset() {
	d.tracker.reset()
	if d.feedback != nil {
		d.feedback.ClearBuffer()
	}
	d.metrics.RecordReset()
	d.publish(TopicSequenceReset, SequenceReset{})
}

// Mode returns the current mode.
func (d *Dispatcher) Mode() mode.Mode {
	return d.modes.Current()
}

// Modes returns the mode controller. Collaborators use it to subscribe to
// mode changes.
func (d *Dispatcher) Modes() *mode.Controller {
	return d.modes
}

// SetMode switches mode. The tracker is reset and ModeChanged is
// published even when m is already current.
func (d *Dispatcher) SetMode(m mode.Mode) error {
	if d.closed {
		return ErrClosed
	}
	_, err := d.modes.SetMode(m)
	return err
}

// setMode is SetMode for modes known to be live.
func (d *Dispatcher) setMode(m mode.Mode) {
	if err := d.SetMode(m); err != nil {
		d.logger.Warn("set mode %s: %v", m, err)
	}
}

// Context returns the current binding context.
func (d *Dispatcher) Context() keymap.Context {
	return d.context
}

// SetContext sets the binding context, usually on focus change. A change
// of context resets the tracker.
func (d *Dispatcher) SetContext(ctx keymap.Context) error {
	if !ctx.IsValid() {
		return keymap.ErrInvalidContext
	}
	if ctx == d.context {
		return nil
	}
	d.context = ctx
	d.Reset()
	return nil
}

// Tracker returns the sequence tracker for inspection.
func (d *Dispatcher) Tracker() *Tracker {
	return &d.tracker
}

// Forest returns the binding forest in use.
func (d *Dispatcher) Forest() *keymap.Forest {
	return d.forest
}

// ReplaceForest swaps in a rebuilt forest between key events, for
// example after a keymap file changed. The new forest is sealed and the
// tracker is reset.
func (d *Dispatcher) ReplaceForest(forest *keymap.Forest) error {
	if forest == nil {
		return ErrNilForest
	}
	if d.dispatching {
		return ErrDispatching
	}
	forest.Seal()
	d.forest = forest
	d.Reset()
	return nil
}

// Possess routes every following key down to p until Unpossess or
// Escape. Installing a new possessor dispossesses the previous one.
func (d *Dispatcher) Possess(p Possessor) {
	d.Unpossess()
	d.possessor = p
	d.Reset()
}

// Unpossess removes the current possessor, if any.
func (d *Dispatcher) Unpossess() {
	p := d.possessor
	if p == nil {
		return
	}
	d.possessor = nil
	p.Dispossessed()
}

// IsPossessed returns true while a possessor is installed.
func (d *Dispatcher) IsPossessed() bool {
	return d.possessor != nil
}

// Metrics returns the dispatcher's metrics.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Close stops the dispatcher. Later key events are not consumed.
func (d *Dispatcher) Close() {
	if d.closed {
		return
	}
	d.Unpossess()
	d.Reset()
	d.closed = true
}

// IsClosed returns true if the dispatcher has been closed.
func (d *Dispatcher) IsClosed() bool {
	return d.closed
}

func (d *Dispatcher) showFeedback() {
	if d.feedback == nil {
		return
	}
	if text := d.tracker.Display(); text != "" {
		d.feedback.ShowBuffer(text)
	} else {
		d.feedback.ClearBuffer()
	}
}

func (d *Dispatcher) publish(topic string, payload any) {
	if d.publisher != nil {
		d.publisher.Publish(topic, payload)
	}
}
