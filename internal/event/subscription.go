package event

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is a registered handler on a Bus.
type Subscription struct {
	id      uuid.UUID
	pattern string
	handler Handler
	bus     *Bus
	active  atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Pattern returns the subscribed topic pattern.
func (s *Subscription) Pattern() string {
	return s.pattern
}

// IsActive returns true until the subscription is removed or the bus closes.
func (s *Subscription) IsActive() bool {
	return s.active.Load()
}

// Unsubscribe removes the subscription from its bus. It is safe to call
// more than once.
func (s *Subscription) Unsubscribe() {
	if s.active.Swap(false) {
		s.bus.remove(s.id)
	}
}
