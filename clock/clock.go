// Package clock provides the time source used by progress bars.
//
// Time is expressed as float64 seconds on a monotonic scale. Only differences
// between two readings are meaningful; the absolute value has no relation to
// wall-clock time.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current monotonic time in seconds.
type Clock interface {
	Now() float64
}

// Monotonic reads the runtime monotonic clock relative to the instant it was
// created.
type Monotonic struct {
	base time.Time
}

// NewMonotonic calibrates a monotonic clock. The calibration instant becomes
// time zero, so readings stay small and keep full float64 precision for the
// lifetime of a process.
func NewMonotonic() *Monotonic {
	return &Monotonic{base: time.Now()}
}

// Now returns the seconds elapsed since the clock was calibrated.
func (m *Monotonic) Now() float64 {
	return time.Since(m.base).Seconds()
}

// Manual is a Clock that only moves when told to. It is meant for tests.
type Manual struct {
	mu  sync.Mutex
	now float64
}

// NewManual creates a manual clock reading start.
func NewManual(start float64) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d seconds.
func (m *Manual) Advance(d float64) {
	m.mu.Lock()
	m.now += d
	m.mu.Unlock()
}

// Set moves the clock to t seconds.
func (m *Manual) Set(t float64) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}
