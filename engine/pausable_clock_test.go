package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newMockClock(maxDelta time.Duration) (*PausableClock, *MockTimeProvider) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewPausableClock(mock, maxDelta), mock
}

func TestPausableClockSteps(t *testing.T) {
	tests := []struct {
		name     string
		maxDelta time.Duration
		advance  time.Duration
		want     time.Duration
	}{
		{"one frame", time.Second, 50 * time.Millisecond, 50 * time.Millisecond},
		{"at the clamp", 250 * time.Millisecond, 250 * time.Millisecond, 250 * time.Millisecond},
		{"stall is clamped", 250 * time.Millisecond, 10 * time.Second, 250 * time.Millisecond},
		{"no clamp", 0, 10 * time.Second, 10 * time.Second},
		{"no time passed", time.Second, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mock := newMockClock(tt.maxDelta)
			mock.Advance(tt.advance)
			assert.Equal(t, tt.want, c.Step())
			assert.Equal(t, tt.want, c.DeltaTime())
		})
	}
}

func TestPausableClockClampedTimeIsDropped(t *testing.T) {
	c, mock := newMockClock(250 * time.Millisecond)
	mock.Advance(2 * time.Second)
	c.Step()

	// The next frame measures from the stall, not from before it
	mock.Advance(50 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, c.Step())
}

func TestPausableClockExcludesPause(t *testing.T) {
	c, mock := newMockClock(time.Second)

	mock.Advance(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, c.Step())

	c.Pause()
	assert.True(t, c.IsPaused())
	mock.Advance(3 * time.Second)
	assert.Zero(t, c.Step(), "no game time passes while paused")
	assert.Zero(t, c.DeltaTime())
	assert.Equal(t, 100*time.Millisecond, c.Elapsed(), "elapsed frozen while paused")
	assert.Equal(t, 3*time.Second, c.TotalPaused())

	c.Resume()
	assert.False(t, c.IsPaused())
	mock.Advance(40 * time.Millisecond)
	assert.Equal(t, 40*time.Millisecond, c.Step(), "resume does not release the paused span")
	assert.Equal(t, 140*time.Millisecond, c.Elapsed())
}

func TestPausableClockPauseIsIdempotent(t *testing.T) {
	c, mock := newMockClock(time.Second)

	c.Pause()
	mock.Advance(time.Second)
	c.Pause()
	mock.Advance(time.Second)
	c.Resume()
	c.Resume()

	assert.Equal(t, 2*time.Second, c.TotalPaused())
	mock.Advance(30 * time.Millisecond)
	assert.Equal(t, 30*time.Millisecond, c.Step())
}

func TestPausableClockIgnoresBackwardJump(t *testing.T) {
	c, mock := newMockClock(time.Second)
	mock.Advance(time.Second)
	c.Step()

	mock.Set(mock.Now().Add(-500 * time.Millisecond))
	assert.Zero(t, c.Step())
}

func TestPausableClockDefaultsToRealTime(t *testing.T) {
	c := NewPausableClock(nil, time.Second)
	time.Sleep(5 * time.Millisecond)
	d := c.Step()
	assert.Greater(t, d, time.Duration(0))
	assert.LessOrEqual(t, d, time.Second)
}
