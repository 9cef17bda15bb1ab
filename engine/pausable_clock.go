package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock is the game clock the host loop steps once per tick
// DeltaTime is the time consumed by the current tick and is what tasks read
type Clock interface {
	Step() time.Duration
	DeltaTime() time.Duration
	Elapsed() time.Duration
	Pause()
	Resume()
	IsPaused() bool
}

// FixedClock advances by a constant step per tick, zero while paused
// Used by headless runs and tests so simulations are reproducible
type FixedClock struct {
	step    time.Duration
	delta   time.Duration
	elapsed time.Duration
	paused  atomic.Bool
}

// NewFixedClock creates a clock stepping by step
func NewFixedClock(step time.Duration) *FixedClock {
	return &FixedClock{step: step}
}

func (c *FixedClock) Step() time.Duration {
	if c.paused.Load() {
		c.delta = 0
	} else {
		c.delta = c.step
	}
	c.elapsed += c.delta
	return c.delta
}

func (c *FixedClock) DeltaTime() time.Duration { return c.delta }
func (c *FixedClock) Elapsed() time.Duration   { return c.elapsed }
func (c *FixedClock) Pause()                   { c.paused.Store(true) }
func (c *FixedClock) Resume()                  { c.paused.Store(false) }
func (c *FixedClock) IsPaused() bool           { return c.paused.Load() }

// PausableClock measures game time from a TimeSource, excluding paused spans
// Deltas are clamped to maxDelta so a stalled process does not teleport actors
type PausableClock struct {
	mu sync.RWMutex

	source   TimeSource
	maxDelta time.Duration

	start       time.Time
	lastStep    time.Time     // Game time at previous Step
	pausedAt    time.Time     // Real time the current pause began
	totalPaused time.Duration // Cumulative finished pauses
	delta       time.Duration

	paused atomic.Bool
}

// NewPausableClock creates a clock reading source, clamping deltas to maxDelta
func NewPausableClock(source TimeSource, maxDelta time.Duration) *PausableClock {
	if source == nil {
		source = NewTimeProvider()
	}
	now := source.Now()
	return &PausableClock{
		source:   source,
		maxDelta: maxDelta,
		start:    now,
		lastStep: now,
	}
}

// gameNow returns real time minus paused time; caller holds mu
func (pc *PausableClock) gameNow() time.Time {
	if pc.paused.Load() {
		return pc.pausedAt.Add(-pc.totalPaused)
	}
	return pc.source.Now().Add(-pc.totalPaused)
}

// Step measures game time since the previous Step
func (pc *PausableClock) Step() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := pc.gameNow()
	d := now.Sub(pc.lastStep)
	if d < 0 {
		d = 0
	}
	if pc.maxDelta > 0 && d > pc.maxDelta {
		d = pc.maxDelta
	}
	pc.lastStep = now
	pc.delta = d
	return d
}

func (pc *PausableClock) DeltaTime() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.delta
}

// Elapsed returns game time since creation
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.gameNow().Sub(pc.start)
}

// Pause freezes game time
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused.CompareAndSwap(false, true) {
		pc.pausedAt = pc.source.Now()
	}
}

// Resume continues game time, discarding the paused span
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused.CompareAndSwap(true, false) {
		pc.totalPaused += pc.source.Now().Sub(pc.pausedAt)
		pc.pausedAt = time.Time{}
	}
}

func (pc *PausableClock) IsPaused() bool {
	return pc.paused.Load()
}

// TotalPaused returns cumulative paused time including a pause in progress
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.totalPaused
	if pc.paused.Load() {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}
