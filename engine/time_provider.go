package engine

import (
	"sync"
	"time"
)

// TimeSource supplies wall-clock readings
type TimeSource interface {
	Now() time.Time
}

// TimeProvider reads the real system time with its monotonic component
type TimeProvider struct{}

// NewTimeProvider creates a real-time source
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns time.Now()
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a TimeSource that only moves when told to
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider starts the mock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Set jumps the mocked time to t
func (m *MockTimeProvider) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}
