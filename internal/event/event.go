package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is one published notification.
type Event struct {
	// Topic is the dot-separated event type, e.g. "input.mode.changed".
	Topic string

	// Payload carries the event data. Its type is determined by the topic.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID uniquely identifies this event instance.
	ID uuid.UUID

	// Timestamp is when the event was published.
	Timestamp time.Time

	// Source identifies the bus owner that published the event.
	Source string
}

// NewEvent creates an event with fresh metadata.
func NewEvent(topic string, payload any, source string) Event {
	return Event{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.New(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// Handler receives published events.
type Handler func(Event)

// PanicHandler is called when a handler panics.
type PanicHandler func(ev Event, recovered any)

// DefaultPanicHandler discards the panic. The remaining handlers still run.
func DefaultPanicHandler(Event, any) {}
