package engine

import (
	"sync"
	"time"
)

// ManualTime is a TimeProvider that only moves when told to, for tests and replay
type ManualTime struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualTime starts at a fixed epoch so runs are reproducible
func NewManualTime() *ManualTime {
	return &ManualTime{now: time.Unix(1_700_000_000, 0)}
}

func (m *ManualTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves time forward by d and returns the new reading
func (m *ManualTime) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// AdvanceSeconds is Advance with a float seconds argument
func (m *ManualTime) AdvanceSeconds(s float64) time.Time {
	return m.Advance(time.Duration(s * float64(time.Second)))
}
