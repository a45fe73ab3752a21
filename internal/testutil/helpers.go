package testutil

import (
	"time"

	"github.com/rs/zerolog"
)

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ManualScheduler records scheduled callbacks and runs them only when the
// test says so
type ManualScheduler struct {
	pending []func()
	delays  []time.Duration
}

// NewManualScheduler creates an empty manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc queues f; d is recorded for assertions
func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) {
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

// Pending returns the number of queued callbacks
func (m *ManualScheduler) Pending() int { return len(m.pending) }

// Delays returns every delay ever requested
func (m *ManualScheduler) Delays() []time.Duration {
	return append([]time.Duration(nil), m.delays...)
}

// Fire runs the queued callbacks in order. Callbacks scheduled while firing
// stay queued for the next call.
func (m *ManualScheduler) Fire() int {
	queued := m.pending
	m.pending = nil
	for _, f := range queued {
		f()
	}
	return len(queued)
}
