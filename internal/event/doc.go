// Package event provides a synchronous publish/subscribe bus for chordmap.
//
// The input dispatcher publishes mode changes and sequence progress on
// dot-separated topics such as "input.mode.changed". Subscribers register
// a topic pattern and a Handler:
//
//	bus := event.NewBus()
//	sub, err := bus.Subscribe("input.sequence.*", func(ev event.Event) {
//	    log.Printf("%s: %v", ev.Topic, ev.Payload)
//	})
//	defer sub.Unsubscribe()
//
// Patterns support two wildcards:
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Delivery is synchronous and in subscription order, on the publishing
// goroutine. A handler that panics is isolated from the other handlers and
// from the publisher.
package event
