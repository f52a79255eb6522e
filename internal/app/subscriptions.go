package app

import (
	"fmt"

	"github.com/dshills/chordmap/internal/event"
	"github.com/dshills/chordmap/internal/input"
)

// Application topics.
const (
	// TopicConfigReloaded is published after a reload, successful or not.
	TopicConfigReloaded = "config.reloaded"
)

// ConfigReloaded is published on TopicConfigReloaded.
type ConfigReloaded struct {
	// Changed lists the files that triggered the reload, if any.
	Changed []string

	// Bindings is the number of bindings now active.
	Bindings int

	// Err holds binding problems. The reload still took effect.
	Err error
}

func (app *Application) subscribe() error {
	log := app.logger.WithComponent("event")
	handlers := []struct {
		pattern string
		handler event.Handler
	}{
		{"input.**", func(ev event.Event) {
			if log.Enabled(LogLevelDebug) {
				log.Debug("%s %+v", ev.Topic, ev.Payload)
			}
		}},
		{input.TopicSequenceMatched, func(ev event.Event) {
			if m, ok := ev.Payload.(input.SequenceMatched); ok {
				app.lastMatch = describeMatch(m)
			}
		}},
		{TopicConfigReloaded, func(ev event.Event) {
			if r, ok := ev.Payload.(ConfigReloaded); ok {
				log.Info("config reloaded: %d bindings", r.Bindings)
			}
		}},
	}

	for _, h := range handlers {
		sub, err := app.bus.Subscribe(h.pattern, h.handler)
		if err != nil {
			return fmt.Errorf("%s: %w", h.pattern, err)
		}
		app.subs = append(app.subs, sub)
	}
	return nil
}

func (app *Application) unsubscribe() {
	for _, sub := range app.subs {
		sub.Unsubscribe()
	}
	app.subs = nil
}

func describeMatch(m input.SequenceMatched) string {
	s := m.Sequence.VimString() + " " + m.Label
	if m.Count > 1 {
		s = fmt.Sprintf("%d%s", m.Count, s)
	}
	return s
}
