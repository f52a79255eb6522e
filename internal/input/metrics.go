package input

import (
	"sync/atomic"
	"time"
)

// Metrics counts dispatch outcomes. Counters are atomic so a status
// view on another goroutine can read them while keys are processed.
type Metrics struct {
	keyDowns     atomic.Uint64
	passthrough  atomic.Uint64
	pending      atomic.Uint64
	handled      atomic.Uint64
	unhandled    atomic.Uint64
	invocations  atomic.Uint64
	staleTargets atomic.Uint64
	resets       atomic.Uint64

	peakLatency atomic.Int64
	startTime   time.Time

	enabled atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// RecordKeyDown records one HandleKeyDown call and its processing time.
func (m *Metrics) RecordKeyDown(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}
	m.keyDowns.Add(1)

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}
}

// RecordPassthrough records a key left to the host.
func (m *Metrics) RecordPassthrough() {
	if m.enabled.Load() {
		m.passthrough.Add(1)
	}
}

// RecordResult records the outcome of a ProcessChord call.
func (m *Metrics) RecordResult(r Result) {
	if !m.enabled.Load() {
		return
	}
	switch r {
	case Pending:
		m.pending.Add(1)
	case Handled:
		m.handled.Add(1)
	default:
		m.unhandled.Add(1)
	}
}

// RecordInvocations records n callback invocations.
func (m *Metrics) RecordInvocations(n int) {
	if m.enabled.Load() && n > 0 {
		m.invocations.Add(uint64(n))
	}
}

// RecordStaleTarget records a binding whose target was gone.
func (m *Metrics) RecordStaleTarget() {
	if m.enabled.Load() {
		m.staleTargets.Add(1)
	}
}

// RecordReset records a tracker reset.
func (m *Metrics) RecordReset() {
	if m.enabled.Load() {
		m.resets.Add(1)
	}
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyDowns     uint64
	Passthrough  uint64
	Pending      uint64
	Handled      uint64
	Unhandled    uint64
	Invocations  uint64
	StaleTargets uint64
	Resets       uint64

	PeakLatency time.Duration
	Uptime      time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		KeyDowns:     m.keyDowns.Load(),
		Passthrough:  m.passthrough.Load(),
		Pending:      m.pending.Load(),
		Handled:      m.handled.Load(),
		Unhandled:    m.unhandled.Load(),
		Invocations:  m.invocations.Load(),
		StaleTargets: m.staleTargets.Load(),
		Resets:       m.resets.Load(),
		PeakLatency:  time.Duration(m.peakLatency.Load()),
		Uptime:       time.Since(m.startTime),
	}
}

// Timer helps measure operation duration.
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// StartKeyDownTimer starts a timer for measuring key down processing.
func (m *Metrics) StartKeyDownTimer() *Timer {
	return &Timer{start: time.Now(), metrics: m}
}

// Stop stops the timer and records the key down latency.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.metrics.RecordKeyDown(elapsed)
	return elapsed
}
