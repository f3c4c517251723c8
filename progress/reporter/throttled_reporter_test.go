package reporter

import (
	"sync"
	"testing"
	"time"

	"github.com/konveyor/termbar/progress"
)

// mockReporter captures all reported snapshots for testing
type mockReporter struct {
	snapshots []progress.Snapshot
	mu        sync.Mutex
}

func (m *mockReporter) Report(s progress.Snapshot) {
	m.mu.Lock()
	m.snapshots = append(m.snapshots, s)
	m.mu.Unlock()
}

func (m *mockReporter) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

func snapshotAt(phase progress.Phase, offset time.Duration) progress.Snapshot {
	return progress.Snapshot{Timestamp: fixedTime.Add(offset), Phase: phase}
}

func TestThrottledReporter_StartAndFinishAlwaysReported(t *testing.T) {
	mock := &mockReporter{}
	reporter := NewThrottledReporter(mock, time.Hour)

	reporter.Report(snapshotAt(progress.PhaseStarted, 0))
	for i := 1; i <= 50; i++ {
		reporter.Report(snapshotAt(progress.PhaseUpdating, time.Duration(i)*time.Millisecond))
	}
	reporter.Report(snapshotAt(progress.PhaseFinished, time.Second))

	if mock.Count() != 2 {
		t.Fatalf("Expected only start and finish to be reported, got %d snapshots", mock.Count())
	}
	if mock.snapshots[0].Phase != progress.PhaseStarted {
		t.Errorf("Expected first snapshot to be started, got %s", mock.snapshots[0].Phase)
	}
	if mock.snapshots[1].Phase != progress.PhaseFinished {
		t.Errorf("Expected last snapshot to be finished, got %s", mock.snapshots[1].Phase)
	}
}

func TestThrottledReporter_IntervalElapsed(t *testing.T) {
	mock := &mockReporter{}
	reporter := NewThrottledReporter(mock, 100*time.Millisecond)

	reporter.Report(snapshotAt(progress.PhaseStarted, 0))
	// One snapshot every 30ms for 300ms: forwarded ones land at 120, 240ms.
	for i := 1; i <= 10; i++ {
		reporter.Report(snapshotAt(progress.PhaseUpdating, time.Duration(i)*30*time.Millisecond))
	}

	if got := mock.Count(); got != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", got)
	}
	if want := fixedTime.Add(120 * time.Millisecond); !mock.snapshots[1].Timestamp.Equal(want) {
		t.Errorf("Expected second snapshot at %v, got %v", want, mock.snapshots[1].Timestamp)
	}
}

func TestThrottledReporter_FirstUpdateReported(t *testing.T) {
	mock := &mockReporter{}
	reporter := NewThrottledReporter(mock, time.Hour)

	reporter.Report(snapshotAt(progress.PhaseUpdating, 0))
	reporter.Report(snapshotAt(progress.PhaseUpdating, time.Millisecond))
	if mock.Count() != 1 {
		t.Errorf("Expected the first snapshot to be reported, got %d", mock.Count())
	}

	reporter.Reset()
	reporter.Report(snapshotAt(progress.PhaseUpdating, 2*time.Millisecond))
	if mock.Count() != 2 {
		t.Errorf("Expected a snapshot after Reset, got %d", mock.Count())
	}
}

func TestThrottledReporter_ZeroInterval(t *testing.T) {
	mock := &mockReporter{}
	reporter := NewThrottledReporter(mock, 0)

	for i := 0; i < 5; i++ {
		reporter.Report(snapshotAt(progress.PhaseUpdating, 0))
	}
	if mock.Count() != 5 {
		t.Errorf("Expected every snapshot to be forwarded, got %d", mock.Count())
	}
}

func TestThrottledReporter_ConcurrentUse(t *testing.T) {
	mock := &mockReporter{}
	reporter := NewThrottledReporter(mock, time.Millisecond)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				reporter.Report(progress.Snapshot{Phase: progress.PhaseUpdating})
			}
		}()
	}
	wg.Wait()

	if mock.Count() == 0 {
		t.Error("Expected at least one snapshot to be forwarded")
	}
}
