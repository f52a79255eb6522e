package schedule

import (
	"sync"
	"time"
)

// Debouncer groups rapid successive calls into a single call after a
// quiet period. The callback is delivered through a Poster, so it runs on
// the loop goroutine.
//
// All methods are safe for concurrent use.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	poster   Poster
	timer    *time.Timer
	pending  bool
	seq      uint64 // detects stale timer callbacks
	callback func()
}

// NewDebouncer creates a debouncer that posts callback to p once no call
// has been made for delay.
func NewDebouncer(delay time.Duration, p Poster, callback func()) *Debouncer {
	return &Debouncer{
		delay:    delay,
		poster:   p,
		callback: callback,
	}
}

// Call schedules the callback, restarting the quiet period.
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.seq++
	currentSeq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.poster.Post(func() { d.fire(currentSeq) })
	})
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if !d.pending || d.seq != seq || d.callback == nil {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()
	d.callback()
}

// Cancel cancels any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
}

// IsPending returns true while a call is waiting to fire.
func (d *Debouncer) IsPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
