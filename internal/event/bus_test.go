package event

import (
	"sync"
	"testing"
)

func TestBus_SubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var got []Event
	sub, err := bus.Subscribe("input.mode.changed", func(ev Event) {
		got = append(got, ev)
	})
	if err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}
	if sub.Pattern() != "input.mode.changed" {
		t.Errorf("Pattern() = %q, want input.mode.changed", sub.Pattern())
	}
	if !sub.IsActive() {
		t.Error("expected subscription to be active")
	}

	bus.Publish("input.mode.changed", "normal")
	bus.Publish("input.sequence.reset", nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Topic != "input.mode.changed" {
		t.Errorf("Topic = %q", got[0].Topic)
	}
	if got[0].Payload != "normal" {
		t.Errorf("Payload = %v, want normal", got[0].Payload)
	}
	if got[0].Metadata.Source != "chordmap" {
		t.Errorf("Source = %q, want chordmap", got[0].Metadata.Source)
	}
	if got[0].Metadata.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestBus_Subscribe_Errors(t *testing.T) {
	bus := NewBus()

	if _, err := bus.Subscribe("input", nil); err != ErrNilHandler {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
	if _, err := bus.Subscribe("", func(Event) {}); err != ErrInvalidTopic {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}

	bus.Close()
	if _, err := bus.Subscribe("input", func(Event) {}); err != ErrBusClosed {
		t.Errorf("expected ErrBusClosed, got %v", err)
	}
}

func TestBus_UniqueSubscriptionIDs(t *testing.T) {
	bus := NewBus()
	a, _ := bus.Subscribe("a", func(Event) {})
	b, _ := bus.Subscribe("a", func(Event) {})
	if a.ID() == b.ID() {
		t.Error("expected distinct subscription IDs")
	}
}

func TestBus_DeliveryOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	for i := range 3 {
		bus.Subscribe("input.**", func(Event) { order = append(order, i) })
	}
	bus.Publish("input.sequence.matched", nil)

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	sub, _ := bus.Subscribe("input.*", func(Event) { calls++ })

	bus.Publish("input.reset", nil)
	sub.Unsubscribe()
	sub.Unsubscribe()
	bus.Publish("input.reset", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if sub.IsActive() {
		t.Error("expected subscription to be inactive")
	}
	if err := bus.Unsubscribe(sub.ID()); err != ErrSubscriptionNotFound {
		t.Errorf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestBus_UnsubscribeByID(t *testing.T) {
	bus := NewBus()
	sub, _ := bus.Subscribe("input", func(Event) {})

	if err := bus.Unsubscribe(sub.ID()); err != nil {
		t.Fatalf("Unsubscribe() failed: %v", err)
	}
	if bus.HasSubscribers("input") {
		t.Error("expected no subscribers")
	}
}

func TestBus_UnsubscribeDuringDelivery(t *testing.T) {
	bus := NewBus()

	var second *Subscription
	secondCalls := 0
	bus.Subscribe("x", func(Event) { second.Unsubscribe() })
	second, _ = bus.Subscribe("x", func(Event) { secondCalls++ })

	bus.Publish("x", nil)
	if secondCalls != 0 {
		t.Errorf("removed handler ran %d times", secondCalls)
	}
}

func TestBus_PublishFromHandler(t *testing.T) {
	bus := NewBus()

	var topics []string
	bus.Subscribe("a", func(Event) { bus.Publish("b", nil) })
	bus.SubscribeAll(func(ev Event) { topics = append(topics, ev.Topic) })

	bus.Publish("a", nil)
	if len(topics) != 2 {
		t.Fatalf("topics = %v", topics)
	}
}

func TestBus_PanicIsolation(t *testing.T) {
	var recovered any
	bus := NewBus(WithPanicHandler(func(_ Event, r any) { recovered = r }))

	ran := false
	bus.Subscribe("x", func(Event) { panic("boom") })
	bus.Subscribe("x", func(Event) { ran = true })

	bus.Publish("x", nil)

	if recovered != "boom" {
		t.Errorf("recovered = %v, want boom", recovered)
	}
	if !ran {
		t.Error("expected second handler to run")
	}
	if bus.Stats().HandlerPanics != 1 {
		t.Errorf("HandlerPanics = %d, want 1", bus.Stats().HandlerPanics)
	}
}

func TestBus_PublishRejectsPatterns(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.SubscribeAll(func(Event) { calls++ })

	bus.Publish("input.*", nil)
	bus.Publish("", nil)
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestBus_Close(t *testing.T) {
	bus := NewBus(WithSource("test"))
	calls := 0
	sub, _ := bus.Subscribe("x", func(Event) { calls++ })

	bus.Close()
	bus.Close()
	bus.Publish("x", nil)

	if calls != 0 {
		t.Errorf("calls = %d after Close", calls)
	}
	if sub.IsActive() {
		t.Error("expected subscription inactive after Close")
	}
	if !bus.IsClosed() {
		t.Error("expected IsClosed")
	}
}

func TestBus_Stats(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("x", func(Event) {})
	bus.Subscribe("x", func(Event) {})

	bus.Publish("x", nil)
	bus.Publish("y", nil)

	s := bus.Stats()
	if s.EventsPublished != 2 {
		t.Errorf("EventsPublished = %d, want 2", s.EventsPublished)
	}
	if s.EventsDelivered != 2 {
		t.Errorf("EventsDelivered = %d, want 2", s.EventsDelivered)
	}
	if s.ActiveSubscribers != 2 {
		t.Errorf("ActiveSubscribers = %d, want 2", s.ActiveSubscribers)
	}
}

func TestBus_Concurrent(t *testing.T) {
	bus := NewBus()
	var mu sync.Mutex
	count := 0
	bus.Subscribe("x", func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				bus.Publish("x", nil)
			}
		}()
	}
	wg.Wait()

	if count != 1000 {
		t.Errorf("count = %d, want 1000", count)
	}
}
