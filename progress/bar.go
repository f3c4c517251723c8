package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/konveyor/termbar/capability"
	"github.com/konveyor/termbar/clock"
	"github.com/konveyor/termbar/estimator"
	"github.com/konveyor/termbar/progress/render"
)

// Bar is a progress bar over the counter range [start, total].
//
// Lifecycle:
//  1. Create with New
//  2. Start draws the first frame and fixes the time origin
//  3. Update moves the counter; a frame is drawn when the refresh interval
//     has passed since the previous one
//  4. Finish draws a final 100% frame in the completed color, shows the
//     cursor again and ends the line
//
// Update calls made after Finish are ignored. A nil *Bar is valid: every
// method is a no-op on it.
//
// The only errors returned are failures to write to the output, which
// usually mean the terminal went away.
type Bar struct {
	start   int64
	total   int64
	current int64

	started  bool
	finished bool

	cfg       Config
	estimator *estimator.Estimator

	writer       io.Writer
	clock        clock.Clock
	caps         capability.Capabilities
	capsSet      bool
	profile      render.Profile
	cursorHidden bool

	reporters []Reporter
	log       logr.Logger
}

// Option configures a Bar during creation.
type Option func(b *Bar)

// WithWriter sets the output stream. The default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(b *Bar) {
		b.writer = w
	}
}

// WithClock sets the time source. The default is a clock.Monotonic
// calibrated by New.
func WithClock(c clock.Clock) Option {
	return func(b *Bar) {
		b.clock = c
	}
}

// WithCapabilities skips terminal detection and draws for caps instead.
func WithCapabilities(caps capability.Capabilities) Option {
	return func(b *Bar) {
		b.caps = caps
		b.capsSet = true
	}
}

// WithLogger sets the logger used for lifecycle and diagnostic messages.
func WithLogger(log logr.Logger) Option {
	return func(b *Bar) {
		b.log = log
	}
}

// WithReporters adds observers that receive a Snapshot for every frame
// drawn.
//
// Example:
//
//	progress.New(0, 100, cfg,
//	    progress.WithReporters(reporter.NewJSONReporter(logFile)),
//	)
func WithReporters(reporters ...Reporter) Option {
	return func(b *Bar) {
		b.reporters = append(b.reporters, reporters...)
	}
}

// New creates a bar for the range [start, total] with the counter at start.
//
// Out of range configuration fields are replaced with their defaults. When
// no capabilities are given, they are detected from the output stream.
func New(start, total int64, cfg Config, opts ...Option) *Bar {
	b := &Bar{
		start:   start,
		total:   total,
		current: start,
		writer:  os.Stdout,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.clock == nil {
		b.clock = clock.NewMonotonic()
	}
	if !b.capsSet {
		b.caps = capability.Detect(b.writer)
		b.log.V(5).Info("detected terminal capabilities",
			"tty", b.caps.IsTTY, "unicode", b.caps.Unicode, "color", b.caps.Color, "width", b.caps.Width)
	}
	b.profile = render.SelectProfile(b.caps.Unicode, b.caps.Color)

	cfg, fixed := cfg.withDefaults()
	if len(fixed) > 0 {
		b.log.Info("replaced invalid progress configuration with defaults", "fields", fixed)
	}
	b.cfg = cfg
	b.estimator = estimator.New(cfg.WindowSize, cfg.MinRefreshInterval.Seconds(), cfg.ETARecencyWeight)
	return b
}

// Start records the time origin and draws the initial frame. Calling it on a
// bar that already started or finished does nothing.
func (b *Bar) Start() error {
	if b == nil || b.started || b.finished {
		return nil
	}
	b.started = true
	b.estimator.Begin(b.clock.Now(), b.Percent())
	b.log.V(3).Info("progress started", "start", b.start, "total", b.total, "profile", b.profile.String())
	return b.draw(PhaseStarted)
}

// Update moves the counter to current and draws a frame unless the sample
// is throttled. The first Update after Start always draws. Update on a bar
// that was never started starts it.
func (b *Bar) Update(current int64) error {
	if b == nil || b.finished {
		return nil
	}
	b.current = current
	if b.estimator.Sample(b.clock.Now(), b.Percent()) == estimator.Throttled {
		return nil
	}
	b.started = true
	return b.draw(PhaseUpdating)
}

// Finish draws the final frame at 100%, regardless of the throttle and of
// the counter value, then restores the cursor and ends the line. Only the
// first call draws.
func (b *Bar) Finish() error {
	if b == nil || b.finished {
		return nil
	}
	b.started = true
	b.finished = true
	b.estimator.Finish(b.clock.Now())
	err := b.draw(PhaseFinished)
	b.cursorHidden = false
	b.log.V(3).Info("progress finished", "elapsed", b.elapsed().String(), "updates", b.estimator.Updates())
	return err
}

// Close restores the cursor if a frame hid it and the bar did not finish,
// for example when the work is interrupted. It does not finish the bar.
func (b *Bar) Close() error {
	if b == nil || !b.cursorHidden {
		return nil
	}
	b.cursorHidden = false
	if _, err := io.WriteString(b.writer, b.profile.ShowCursor()+"\n"); err != nil {
		return fmt.Errorf("failed to restore cursor: %w", err)
	}
	return nil
}

// Percent returns the completion percentage of the current counter value.
func (b *Bar) Percent() float64 {
	if b == nil {
		return 0
	}
	return Percentage(b.start, b.total, b.current, b.cfg.MaxPercent)
}

// Started reports whether the bar drew its first frame.
func (b *Bar) Started() bool {
	return b != nil && b.started
}

// Finished reports whether Finish was called.
func (b *Bar) Finished() bool {
	return b != nil && b.finished
}

// Capabilities returns the capabilities the bar draws for.
func (b *Bar) Capabilities() capability.Capabilities {
	if b == nil {
		return capability.Capabilities{}
	}
	return b.caps
}

// Snapshot returns the state of the last drawn frame.
func (b *Bar) Snapshot() Snapshot {
	if b == nil {
		return Snapshot{}
	}
	phase := PhaseUpdating
	switch {
	case b.finished:
		phase = PhaseFinished
	case b.estimator.Updates() < 0:
		phase = PhaseStarted
	}
	return b.snapshot(phase)
}

func (b *Bar) snapshot(phase Phase) Snapshot {
	remaining, ok := b.estimator.Remaining()
	s := Snapshot{
		Timestamp:    time.Now(),
		Phase:        phase,
		Description:  b.cfg.Description,
		Current:      b.current,
		Total:        b.total,
		Percent:      b.estimator.LastPercent(),
		Elapsed:      b.elapsed(),
		HasRemaining: ok,
		Updates:      b.estimator.Updates(),
	}
	if ok {
		s.Remaining = seconds(remaining)
	}
	return s
}

func (b *Bar) elapsed() time.Duration {
	return seconds(b.estimator.Elapsed())
}

func (b *Bar) draw(phase Phase) error {
	remaining, ok := b.estimator.Remaining()
	frame := render.Render(render.Input{
		Profile:       b.profile,
		Percent:       b.estimator.LastPercent(),
		Finished:      b.finished,
		Updates:       b.estimator.Updates(),
		Elapsed:       b.estimator.Elapsed(),
		Remaining:     remaining,
		HasRemaining:  ok,
		Description:   b.cfg.Description,
		BarWidth:      b.cfg.BarWidth,
		TerminalWidth: b.caps.Width,
	})

	if _, err := io.WriteString(b.writer, frame); err != nil {
		return fmt.Errorf("failed to write progress frame: %w", err)
	}
	if b.profile.ShowCursor() != "" {
		b.cursorHidden = true
	}

	if len(b.reporters) > 0 {
		s := b.snapshot(phase)
		for _, r := range b.reporters {
			r.Report(s)
		}
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
