package reporter

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/konveyor/termbar/progress"
)

// ChannelReporter forwards snapshots to a Go channel for consumers that run
// in their own goroutine, such as a tracer recording each frame as a span
// event.
//
// Sends never block. When the consumer falls behind and the buffer is full
// the snapshot is dropped and counted, see DroppedSnapshots, so a slow
// consumer cannot stall the loop that drives the bar.
//
// The channel is closed when the context passed to NewChannelReporter is
// cancelled.
//
// Example:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	ch := reporter.NewChannelReporter(ctx)
//
//	go func() {
//	    for s := range ch.Snapshots() {
//	        fmt.Printf("%s %.1f%%\n", s.Phase, s.Percent)
//	    }
//	}()
//
//	bar := progress.New(0, total, cfg, progress.WithReporters(ch))
type ChannelReporter struct {
	snapshots chan progress.Snapshot
	mu        sync.RWMutex
	closed    bool
	dropped   atomic.Uint64
	log       logr.Logger
}

// DefaultChannelBuffer is the buffer size of the snapshot channel.
const DefaultChannelBuffer = 100

// ChannelReporterOption configures a ChannelReporter.
type ChannelReporterOption func(*ChannelReporter)

// WithLogger sets the logger that records dropped snapshots.
func WithLogger(log logr.Logger) ChannelReporterOption {
	return func(r *ChannelReporter) {
		r.log = log
	}
}

// WithBuffer sets the channel buffer size. Values below 1 are ignored.
func WithBuffer(size int) ChannelReporterOption {
	return func(r *ChannelReporter) {
		if size > 0 {
			r.snapshots = make(chan progress.Snapshot, size)
		}
	}
}

// NewChannelReporter creates a channel reporter whose channel closes once
// ctx is done.
func NewChannelReporter(ctx context.Context, opts ...ChannelReporterOption) *ChannelReporter {
	r := &ChannelReporter{
		snapshots: make(chan progress.Snapshot, DefaultChannelBuffer),
		log:       logr.Discard(),
	}

	for _, opt := range opts {
		opt(r)
	}

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		close(r.snapshots)
		r.closed = true
		r.mu.Unlock()
	}()

	return r
}

// Report sends s without blocking. It is a no-op after the context is done.
func (c *ChannelReporter) Report(s progress.Snapshot) {
	normalize(&s)

	// The read lock keeps the channel from being closed mid-send.
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return
	}

	select {
	case c.snapshots <- s:
	default:
		dropped := c.dropped.Add(1)
		c.log.V(1).Info("progress snapshot dropped due to slow consumer",
			"phase", s.Phase,
			"percent", s.Percent,
			"total_dropped", dropped,
		)
	}
}

// Snapshots returns the receive side of the channel.
func (c *ChannelReporter) Snapshots() <-chan progress.Snapshot {
	return c.snapshots
}

// DroppedSnapshots returns how many snapshots were dropped because the
// buffer was full.
func (c *ChannelReporter) DroppedSnapshots() uint64 {
	return c.dropped.Load()
}
