package input

import (
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
)

// Config configures the dispatcher.
type Config struct {
	// InitialMode is the starting mode (default: Insert).
	InitialMode mode.Mode

	// InitialContext is the starting binding context (default: Generic).
	InitialContext keymap.Context

	// SwallowModifierKeys consumes bare Shift, Ctrl, Alt and Meta key
	// downs outside Insert mode (default: true).
	SwallowModifierKeys bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialMode:         mode.Insert,
		InitialContext:      keymap.Generic,
		SwallowModifierKeys: true,
	}
}

// Option configures optional dispatcher collaborators.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithFeedback sets the sequence display.
func WithFeedback(f Feedback) Option {
	return func(d *Dispatcher) {
		d.feedback = f
	}
}

// WithPublisher sets the notification sink.
func WithPublisher(p Publisher) Option {
	return func(d *Dispatcher) {
		d.publisher = p
	}
}

// WithInjector enables Shift+Escape native escape delivery.
func WithInjector(i Injector) Option {
	return func(d *Dispatcher) {
		d.injector = i
	}
}

// WithMetrics sets the metrics tracker. The default keeps a private one.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		if m != nil {
			d.metrics = m
		}
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
