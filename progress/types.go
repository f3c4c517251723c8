package progress

import (
	"time"
)

// Reporter observes the frames a Bar draws.
//
// Reporters are called synchronously from Start, Update and Finish, only for
// samples that produced a frame, so they never run on the throttled path.
// Implementations should be quick; a slow reporter slows down the caller's
// loop at the refresh rate.
//
// Implementations in progress/reporter:
//   - JSONReporter: newline-delimited JSON for log files and tooling
//   - TextReporter: timestamped human-readable lines
//   - NoopReporter: discards everything
type Reporter interface {
	// Report receives the state of the frame that was just drawn.
	Report(snapshot Snapshot)
}

// Snapshot is the state of a Bar at the time a frame was drawn.
type Snapshot struct {
	// Timestamp is the wall-clock time the frame was drawn.
	Timestamp time.Time `json:"timestamp"`

	// Phase tells which operation drew the frame.
	Phase Phase `json:"phase"`

	// Description is the configured description text.
	Description string `json:"description,omitempty"`

	// Current and Total are the raw counter values. Start is not included.
	Current int64 `json:"current"`
	Total   int64 `json:"total"`

	// Percent is the completion percentage (0-100) that was drawn.
	Percent float64 `json:"percent"`

	// Elapsed is the time between the start and the drawn sample.
	Elapsed time.Duration `json:"elapsed"`

	// Remaining is the estimated time left. It is only meaningful when
	// HasRemaining is true.
	Remaining    time.Duration `json:"remaining,omitempty"`
	HasRemaining bool          `json:"has_remaining"`

	// Updates counts the accepted samples after the first.
	Updates int64 `json:"updates"`
}

// Phase identifies the lifecycle operation behind a Snapshot.
//
// Phases occur in sequence:
//  1. PhaseStarted - Start drew the baseline frame
//  2. PhaseUpdating - an accepted Update, any number of times
//  3. PhaseFinished - Finish drew the final frame
type Phase string

const (
	// PhaseStarted is reported once by Start.
	PhaseStarted Phase = "started"

	// PhaseUpdating is reported for each Update that passed the throttle.
	PhaseUpdating Phase = "updating"

	// PhaseFinished is reported once by Finish.
	PhaseFinished Phase = "finished"
)
