// Package estimator turns raw (time, percentage) samples into a completion rate
// and a remaining-time estimate.
//
// Samples arrive at whatever frequency the caller reports progress, which may
// be millions of times per second. The Estimator throttles them: a sample is
// only accepted once the configured minimum refresh interval has passed since
// the previously accepted one. Accepted samples are stored as deltas in a
// fixed-size ring window, and the estimate blends the short-window rate with
// the rate observed since the start:
//
//	blended = w*recent + (1-w)*overall
//
// A throttled Sample call never mutates state and never allocates, so it is
// safe to call unconditionally from hot loops. An Estimator is not safe for
// concurrent use.
package estimator

import (
	"math"
)

// DefaultWindowSize is the number of accepted sample deltas kept for the
// recent rate.
const DefaultWindowSize = 5

// Result reports whether a sample was taken into account.
type Result int

const (
	// Throttled means the sample arrived before the minimum refresh interval
	// elapsed and was dropped.
	Throttled Result = iota
	// Accepted means the sample updated the estimator state.
	Accepted
)

func (r Result) String() string {
	if r == Accepted {
		return "accepted"
	}
	return "throttled"
}

type delta struct {
	seconds float64
	percent float64
}

// Estimator holds the sample window and the rate bookkeeping of one progress
// bar.
type Estimator struct {
	minRefresh float64
	weight     float64
	window     []delta

	// updates counts accepted samples after the first one; -1 until the first
	// sample is taken. It doubles as the ring write cursor.
	updates int64
	begun   bool

	timeStart    float64
	percentStart float64
	lastTime     float64
	lastPercent  float64
}

// New creates an Estimator with a ring of windowSize slots. minRefresh is the
// minimum number of seconds between accepted samples and weight the share,
// in [0, 1], given to the recent rate in the blended rate. Out of range
// arguments are clamped.
func New(windowSize int, minRefresh, weight float64) *Estimator {
	if windowSize < 1 {
		windowSize = DefaultWindowSize
	}
	if minRefresh < 0 || math.IsNaN(minRefresh) {
		minRefresh = 0
	}
	if math.IsNaN(weight) {
		weight = 0
	}
	weight = math.Min(math.Max(weight, 0), 1)
	return &Estimator{
		minRefresh: minRefresh,
		weight:     weight,
		window:     make([]delta, windowSize),
		updates:    -1,
	}
}

// Reset discards every sample and the baseline.
func (e *Estimator) Reset() {
	for i := range e.window {
		e.window[i] = delta{}
	}
	e.updates = -1
	e.begun = false
	e.timeStart, e.percentStart = 0, 0
	e.lastTime, e.lastPercent = 0, 0
}

// Begin sets the baseline of the estimate: the start time and the percentage
// reached at that time. The sample counter stays at its sentinel, so the next
// Sample is accepted regardless of how little time has passed.
func (e *Estimator) Begin(now, percent float64) {
	e.timeStart = now
	e.percentStart = percent
	e.lastTime = now
	e.lastPercent = percent
	e.begun = true
}

// Sample offers one observation to the estimator.
//
// The first sample is always accepted. It sets the baseline if Begin was not
// called and writes nothing to the window. Later samples are throttled when
// fewer than minRefresh seconds passed since the last accepted one; otherwise
// their delta goes into the ring slot updates mod W.
func (e *Estimator) Sample(now, percent float64) Result {
	if e.updates < 0 {
		if !e.begun {
			e.Begin(now, percent)
		}
		e.lastTime = now
		e.lastPercent = percent
		e.updates = 0
		return Accepted
	}

	dt := now - e.lastTime
	if dt < e.minRefresh || math.IsNaN(dt) {
		return Throttled
	}
	e.record(now, dt, percent)
	return Accepted
}

// Finish takes a final sample at exactly 100 percent, bypassing the throttle.
func (e *Estimator) Finish(now float64) {
	if e.updates < 0 {
		if !e.begun {
			e.Begin(now, 100)
		}
		e.lastTime = now
		e.lastPercent = 100
		e.updates = 0
		return
	}
	dt := now - e.lastTime
	if dt < 0 {
		dt = 0
	}
	e.record(now, dt, 100)
}

func (e *Estimator) record(now, dt, percent float64) {
	slot := &e.window[e.updates%int64(len(e.window))]
	slot.seconds = dt
	slot.percent = percent - e.lastPercent
	e.lastTime = now
	e.lastPercent = percent
	e.updates++
}

// Updates returns the number of accepted samples after the first, or -1
// before any sample was accepted.
func (e *Estimator) Updates() int64 {
	return e.updates
}

// Started reports whether a baseline exists.
func (e *Estimator) Started() bool {
	return e.begun
}

// Elapsed returns the seconds between the baseline and the last accepted
// sample.
func (e *Estimator) Elapsed() float64 {
	return e.lastTime - e.timeStart
}

// LastPercent returns the percentage of the last accepted sample.
func (e *Estimator) LastPercent() float64 {
	return e.lastPercent
}

// OverallRate returns the percent per second achieved since the baseline, or
// 0 when no time has elapsed.
func (e *Estimator) OverallRate() float64 {
	elapsed := e.Elapsed()
	if elapsed <= 0 {
		return 0
	}
	return (e.lastPercent - e.percentStart) / elapsed
}

// RecentRate returns the percent per second over the populated window slots,
// or 0 when they cover no time.
func (e *Estimator) RecentRate() float64 {
	n := int64(len(e.window))
	if e.updates < n {
		n = e.updates
	}
	var seconds, percent float64
	for i := int64(0); i < n; i++ {
		seconds += e.window[i].seconds
		percent += e.window[i].percent
	}
	if seconds <= 0 {
		return 0
	}
	return percent / seconds
}

// BlendedRate weighs the recent rate against the overall rate.
func (e *Estimator) BlendedRate() float64 {
	return e.weight*e.RecentRate() + (1-e.weight)*e.OverallRate()
}

// Remaining returns the estimated seconds until 100 percent. The boolean is
// false when the blended rate is not positive, in which case no estimate
// exists.
func (e *Estimator) Remaining() (float64, bool) {
	rate := e.BlendedRate()
	if !(rate > 0) || math.IsInf(rate, 0) {
		return 0, false
	}
	remaining := (100 - e.lastPercent) / rate
	if math.IsNaN(remaining) || math.IsInf(remaining, 0) {
		return 0, false
	}
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}
