package event

// BusOption configures an event Bus.
type BusOption func(*busConfig)

// busConfig contains configuration for the event bus.
type busConfig struct {
	// source is stamped on the metadata of every published event.
	source string

	// panicHandler is called when a handler panics.
	panicHandler PanicHandler
}

// defaultBusConfig returns the default configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		source:       "chordmap",
		panicHandler: DefaultPanicHandler,
	}
}

// WithSource sets the source recorded on published events.
func WithSource(source string) BusOption {
	return func(c *busConfig) {
		if source != "" {
			c.source = source
		}
	}
}

// WithPanicHandler sets the panic handler for the bus.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		if h != nil {
			c.panicHandler = h
		}
	}
}
