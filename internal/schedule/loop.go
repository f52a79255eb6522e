package schedule

import (
	"context"
	"sync"
)

// Poster accepts functions to run on the UI goroutine. Post returns false
// when the function was dropped.
type Poster interface {
	Post(fn func()) bool
}

// PosterFunc adapts a function to the Poster interface.
type PosterFunc func(fn func()) bool

// Post calls f(fn).
func (f PosterFunc) Post(fn func()) bool {
	return f(fn)
}

// Loop is a queue of functions run by a single goroutine.
//
// Post is safe for concurrent use. Run, Drain and the functions they call
// belong to the goroutine that owns the loop.
type Loop struct {
	queue     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(size int) *Loop {
	if size < 1 {
		size = 1
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It blocks while the queue is full and returns false if
// the loop is closed.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// C returns the queue for hosts that select on it alongside their own
// event sources. Each received function must be called.
func (l *Loop) C() <-chan func() {
	return l.queue
}

// Run calls queued functions until ctx is done or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrLoopClosed
		case fn := <-l.queue:
			fn()
		}
	}
}

// Drain calls every function queued so far without blocking and returns
// how many ran.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			fn()
			n++
		default:
			return n
		}
	}
}

// Close stops the loop. Queued functions are discarded. It is safe to call
// Close multiple times.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}
