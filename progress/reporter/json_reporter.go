package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/konveyor/termbar/progress"
)

// JSONReporter writes snapshots as newline-delimited JSON (NDJSON).
//
// Each drawn frame becomes one JSON object on its own line, so the stream
// can be tailed and parsed line by line while the bar is running. Durations
// are encoded in nanoseconds.
//
// Example output:
//
//	{"timestamp":"2024-10-29T17:06:14Z","phase":"started","current":0,"total":200,"percent":0,"elapsed":0,"has_remaining":false,"updates":-1}
//	{"timestamp":"2024-10-29T17:06:15Z","phase":"updating","current":40,"total":200,"percent":20,"elapsed":1000000000,"remaining":4000000000,"has_remaining":true,"updates":3}
//	{"timestamp":"2024-10-29T17:06:19Z","phase":"finished","current":200,"total":200,"percent":100,"elapsed":5000000000,"has_remaining":false,"updates":4}
//
// Usage:
//
//	f, _ := os.Create("progress.ndjson")
//	defer f.Close()
//	bar := progress.New(0, 200, cfg,
//	    progress.WithReporters(reporter.NewJSONReporter(f)),
//	)
//
// The reporter is safe for concurrent use.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a JSON reporter that writes to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		writer: w,
	}
}

// Report writes s as a JSON line. A zero Timestamp is set to the current
// time.
//
// Marshaling and write errors are dropped so that a broken event log never
// interrupts the bar.
func (j *JSONReporter) Report(s progress.Snapshot) {
	j.mu.Lock()
	defer j.mu.Unlock()

	normalize(&s)

	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	fmt.Fprintln(j.writer, string(data))
}
