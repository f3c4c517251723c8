package reporter

import (
	"sync"
	"time"

	"github.com/konveyor/termbar/progress"
)

// ThrottledReporter forwards at most one updating snapshot per interval to
// the wrapped reporter. Started and finished snapshots are always
// forwarded.
//
// The bar already limits frames to its refresh interval; a ThrottledReporter
// lowers the rate further for sinks such as an events file that only need a
// coarse record:
//
//	file := reporter.NewJSONReporter(f)
//	bar := progress.New(0, total, cfg,
//	    progress.WithReporters(reporter.NewThrottledReporter(file, time.Second)),
//	)
//
// Intervals are measured between snapshot timestamps. It is safe for
// concurrent use.
type ThrottledReporter struct {
	reporter progress.Reporter
	interval time.Duration

	mu           sync.Mutex
	lastReported time.Time
}

// NewThrottledReporter wraps r. An interval of zero or less forwards every
// snapshot.
func NewThrottledReporter(r progress.Reporter, interval time.Duration) *ThrottledReporter {
	return &ThrottledReporter{
		reporter: r,
		interval: interval,
	}
}

// Report forwards s if it is the first or last snapshot of a bar, or if the
// interval has elapsed since the last forwarded one.
func (t *ThrottledReporter) Report(s progress.Snapshot) {
	normalize(&s)

	t.mu.Lock()
	forward := s.Phase != progress.PhaseUpdating ||
		t.lastReported.IsZero() ||
		s.Timestamp.Sub(t.lastReported) >= t.interval
	if forward {
		t.lastReported = s.Timestamp
	}
	t.mu.Unlock()

	if forward {
		t.reporter.Report(s)
	}
}

// Reset forgets the last forwarded snapshot, for reuse with another bar.
func (t *ThrottledReporter) Reset() {
	t.mu.Lock()
	t.lastReported = time.Time{}
	t.mu.Unlock()
}
