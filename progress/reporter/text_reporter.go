package reporter

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/konveyor/termbar/progress"
	"github.com/konveyor/termbar/progress/render"
)

// TextReporter writes snapshots as timestamped, human-readable lines. It is
// meant for log files and CI output where an in-place bar is unreadable.
//
// Example output:
//
//	[17:06:14] Indexing: started
//	[17:06:15] Indexing: 20.0% (elapsed 00:00:01, remaining 00:00:04)
//	[17:06:19] Indexing: done in 00:00:05
//
// The reporter is safe for concurrent use.
type TextReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewTextReporter creates a text reporter that writes to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{
		writer: w,
	}
}

// Report writes one line for s.
//
// The line depends on the phase:
//   - PhaseStarted: "[HH:MM:SS] <description>: started"
//   - PhaseUpdating: "[HH:MM:SS] <description>: P% (elapsed HH:MM:SS, remaining HH:MM:SS)"
//   - PhaseFinished: "[HH:MM:SS] <description>: done in HH:MM:SS"
//
// Without a description the "<description>: " prefix is left out.
func (t *TextReporter) Report(s progress.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	normalize(&s)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", s.Timestamp.Format("15:04:05"))
	if s.Description != "" {
		b.WriteString(s.Description)
		b.WriteString(": ")
	}

	elapsed := render.FormatClock(s.Elapsed.Seconds())
	switch s.Phase {
	case progress.PhaseStarted:
		b.WriteString("started")
	case progress.PhaseFinished:
		fmt.Fprintf(&b, "done in %s", elapsed)
	default:
		fmt.Fprintf(&b, "%.1f%% (elapsed %s, remaining %s)", s.Percent, elapsed, remainingText(s))
	}
	b.WriteByte('\n')

	t.writer.Write([]byte(b.String()))
}
