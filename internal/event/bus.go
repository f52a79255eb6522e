package event

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Bus delivers published events to matching subscriptions.
//
// Bus is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine, outside the bus lock, so a handler may subscribe,
// unsubscribe or publish.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	closed bool

	config busConfig

	published atomic.Uint64
	delivered atomic.Uint64
	panics    atomic.Uint64
}

// Stats contains bus statistics.
type Stats struct {
	// EventsPublished is the number of events published.
	EventsPublished uint64

	// EventsDelivered is the number of handler invocations.
	EventsDelivered uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscribers is the current number of subscriptions.
	ActiveSubscribers int
}

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) *Bus {
	cfg := defaultBusConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Bus{config: cfg}
}

// Subscribe registers h for topics matching pattern.
func (b *Bus) Subscribe(pattern string, h Handler) (*Subscription, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if !ValidTopic(pattern) {
		return nil, ErrInvalidTopic
	}

	sub := &Subscription{
		id:      uuid.New(),
		pattern: pattern,
		handler: h,
		bus:     b,
	}
	sub.active.Store(true)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBusClosed
	}
	b.subs = append(b.subs, sub)
	return sub, nil
}

// SubscribeAll registers h for every topic.
func (b *Bus) SubscribeAll(h Handler) (*Subscription, error) {
	return b.Subscribe(WildcardMulti, h)
}

// Unsubscribe removes the subscription with the given ID.
func (b *Bus) Unsubscribe(id uuid.UUID) error {
	b.mu.RLock()
	idx := b.indexOf(id)
	var sub *Subscription
	if idx >= 0 {
		sub = b.subs[idx]
	}
	b.mu.RUnlock()

	if sub == nil {
		return ErrSubscriptionNotFound
	}
	sub.Unsubscribe()
	return nil
}

// Publish delivers payload to every subscription matching topic. Events
// published after Close, or on an invalid topic, are dropped.
func (b *Bus) Publish(topic string, payload any) {
	if !ValidTopic(topic) || IsPattern(topic) {
		return
	}
	b.PublishEvent(NewEvent(topic, payload, b.config.source))
}

// PublishEvent delivers a prepared event.
func (b *Bus) PublishEvent(ev Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	var targets []*Subscription
	for _, sub := range b.subs {
		if Match(sub.pattern, ev.Topic) {
			targets = append(targets, sub)
		}
	}
	b.mu.RUnlock()

	b.published.Add(1)
	for _, sub := range targets {
		// A handler earlier in the list may have removed this one.
		if !sub.IsActive() {
			continue
		}
		b.deliver(sub, ev)
	}
}

func (b *Bus) deliver(sub *Subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			b.config.panicHandler(ev, r)
		}
	}()
	b.delivered.Add(1)
	sub.handler(ev)
}

// HasSubscribers returns true if any subscription matches topic.
func (b *Bus) HasSubscribers(topic string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if Match(sub.pattern, topic) {
			return true
		}
	}
	return false
}

// Stats returns a snapshot of bus statistics.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		EventsPublished:   b.published.Load(),
		EventsDelivered:   b.delivered.Load(),
		HandlerPanics:     b.panics.Load(),
		ActiveSubscribers: n,
	}
}

// Close removes every subscription. Later publishes are dropped. It is
// safe to call Close multiple times.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		sub.active.Store(false)
	}
	b.subs = nil
}

// IsClosed returns true after Close.
func (b *Bus) IsClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

func (b *Bus) remove(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if idx := b.indexOf(id); idx >= 0 {
		b.subs = slices.Delete(b.subs, idx, idx+1)
	}
}

// indexOf must be called with b.mu held.
func (b *Bus) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(b.subs, func(s *Subscription) bool { return s.id == id })
}
