package reporter

import (
	"time"

	"github.com/konveyor/termbar/progress"
	"github.com/konveyor/termbar/progress/render"
)

// normalize sets Timestamp to now if it is zero.
func normalize(s *progress.Snapshot) {
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
}

// remainingText formats the remaining time of s, or a placeholder when it
// is unknown.
func remainingText(s progress.Snapshot) string {
	if !s.HasRemaining {
		return render.FormatClock(-1)
	}
	return render.FormatClock(s.Remaining.Seconds())
}
