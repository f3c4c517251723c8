package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstSampleAlwaysAccepted(t *testing.T) {
	e := New(DefaultWindowSize, 10, 0.3)
	assert.Equal(t, int64(-1), e.Updates())

	assert.Equal(t, Accepted, e.Sample(1, 5))
	assert.Equal(t, int64(0), e.Updates())
	assert.Equal(t, 5.0, e.LastPercent())
	assert.Equal(t, 0.0, e.Elapsed())
	assert.Equal(t, 0.0, e.RecentRate(), "first sample writes no window entry")
}

func TestFirstSampleAfterBeginKeepsBaseline(t *testing.T) {
	e := New(DefaultWindowSize, 10, 0)
	e.Begin(0, 0)
	assert.Equal(t, int64(-1), e.Updates())

	// Well inside the refresh interval, still accepted.
	assert.Equal(t, Accepted, e.Sample(0.01, 1))
	assert.Equal(t, int64(0), e.Updates())
	assert.InDelta(t, 0.01, e.Elapsed(), 1e-12)
	assert.InDelta(t, 100.0, e.OverallRate(), 1e-9)
}

func TestThrottleLeavesStateUntouched(t *testing.T) {
	e := New(DefaultWindowSize, 0.1, 0.3)
	require.Equal(t, Accepted, e.Sample(0, 0))
	require.Equal(t, Accepted, e.Sample(0.2, 10))

	before := *e
	window := append([]delta(nil), e.window...)

	assert.Equal(t, Throttled, e.Sample(0.25, 20))
	assert.Equal(t, before.updates, e.updates)
	assert.Equal(t, before.lastTime, e.lastTime)
	assert.Equal(t, before.lastPercent, e.lastPercent)
	assert.Equal(t, window, e.window)
}

func TestThrottleBoundary(t *testing.T) {
	e := New(DefaultWindowSize, 0.5, 0.3)
	e.Sample(0, 0)
	assert.Equal(t, Throttled, e.Sample(0.49, 1))
	assert.Equal(t, Accepted, e.Sample(0.5, 1), "an interval equal to the minimum is accepted")
	assert.Equal(t, Throttled, e.Sample(0.4, 2), "time going backwards is throttled")
}

func TestRingWrapsAtWindowSize(t *testing.T) {
	e := New(3, 0, 1)
	e.Sample(0, 0)
	// Slow deltas first, then fast ones that should push them out.
	e.Sample(10, 1)
	e.Sample(20, 2)
	e.Sample(30, 3)
	assert.InDelta(t, 0.1, e.RecentRate(), 1e-12)

	e.Sample(31, 13)
	e.Sample(32, 23)
	e.Sample(33, 33)
	assert.Equal(t, int64(6), e.Updates())
	assert.InDelta(t, 10.0, e.RecentRate(), 1e-12)
}

func TestRecentRateUsesPopulatedSlotsOnly(t *testing.T) {
	e := New(5, 0, 1)
	e.Sample(0, 0)
	e.Sample(2, 10)
	assert.InDelta(t, 5.0, e.RecentRate(), 1e-12)
}

func TestBlendedRateAndRemaining(t *testing.T) {
	e := New(DefaultWindowSize, 0.1, 0.3)
	e.Begin(0, 0)
	e.Sample(2.5, 0)
	e.Sample(5, 50)

	assert.InDelta(t, 10.0, e.OverallRate(), 1e-9)
	assert.InDelta(t, 20.0, e.RecentRate(), 1e-9)
	assert.InDelta(t, 13.0, e.BlendedRate(), 1e-9)

	remaining, ok := e.Remaining()
	require.True(t, ok)
	assert.InDelta(t, 50.0/13.0, remaining, 1e-9)
}

func TestRemainingUndefinedWithoutProgress(t *testing.T) {
	tests := []struct {
		name   string
		sample func(e *Estimator)
	}{
		{
			name:   "no samples",
			sample: func(e *Estimator) {},
		},
		{
			name:   "single sample",
			sample: func(e *Estimator) { e.Sample(1, 30) },
		},
		{
			name: "stalled",
			sample: func(e *Estimator) {
				e.Sample(0, 30)
				e.Sample(1, 30)
				e.Sample(2, 30)
			},
		},
		{
			name: "going backwards",
			sample: func(e *Estimator) {
				e.Sample(0, 30)
				e.Sample(1, 10)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(DefaultWindowSize, 0, 0.3)
			tt.sample(e)
			_, ok := e.Remaining()
			assert.False(t, ok)
		})
	}
}

func TestFinishBypassesThrottle(t *testing.T) {
	e := New(DefaultWindowSize, 100, 0.3)
	e.Sample(0, 0)
	assert.Equal(t, Throttled, e.Sample(1, 40))

	e.Finish(1)
	assert.Equal(t, 100.0, e.LastPercent())
	assert.Equal(t, int64(1), e.Updates())
	assert.InDelta(t, 100.0, e.OverallRate(), 1e-9)

	remaining, ok := e.Remaining()
	require.True(t, ok)
	assert.Equal(t, 0.0, remaining)
}

func TestFinishWithoutSamples(t *testing.T) {
	e := New(DefaultWindowSize, 0.1, 0.3)
	e.Finish(7)
	assert.True(t, e.Started())
	assert.Equal(t, 100.0, e.LastPercent())
	assert.Equal(t, int64(0), e.Updates())
	assert.Equal(t, 0.0, e.Elapsed())
}

func TestNewClampsArguments(t *testing.T) {
	e := New(0, -1, 7)
	assert.Len(t, e.window, DefaultWindowSize)
	assert.Equal(t, 0.0, e.minRefresh)
	assert.Equal(t, 1.0, e.weight)
}

func TestReset(t *testing.T) {
	e := New(DefaultWindowSize, 0, 0.3)
	e.Sample(0, 0)
	e.Sample(1, 50)
	e.Reset()
	assert.Equal(t, int64(-1), e.Updates())
	assert.False(t, e.Started())
	assert.Equal(t, 0.0, e.RecentRate())
}

func TestThrottledSampleDoesNotAllocate(t *testing.T) {
	e := New(DefaultWindowSize, 1000, 0.3)
	e.Sample(0, 0)
	allocs := testing.AllocsPerRun(1000, func() {
		e.Sample(1, 50)
	})
	assert.Equal(t, 0.0, allocs)
}

func BenchmarkThrottledSample(b *testing.B) {
	e := New(DefaultWindowSize, 1e9, 0.3)
	e.Sample(0, 0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Sample(float64(i), 1)
	}
}
