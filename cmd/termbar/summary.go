package main

import (
	"fmt"

	"github.com/cbroglie/mustache"
	"github.com/konveyor/termbar/progress"
	"github.com/konveyor/termbar/progress/render"
)

// renderSummary fills the mustache template tmpl with the outcome of a run.
//
// Available variables: items, workers, elapsed (HH:MM:SS), seconds, rate
// (items per second) and updates (frames drawn after the first).
func renderSummary(tmpl string, items int64, workers int, s progress.Snapshot) (string, error) {
	seconds := s.Elapsed.Seconds()
	rate := "0"
	if seconds > 0 {
		rate = fmt.Sprintf("%.0f", float64(items)/seconds)
	}

	out, err := mustache.Render(tmpl, map[string]interface{}{
		"items":   items,
		"workers": workers,
		"elapsed": render.FormatClock(seconds),
		"seconds": fmt.Sprintf("%.2f", seconds),
		"rate":    rate,
		"updates": s.Updates,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render summary template: %w", err)
	}
	return out, nil
}
