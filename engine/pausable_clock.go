package engine

import (
	"sync"
	"time"
)

// PausableClock computes effective simulation time with pause/resume offset correction
// Effective time continues from the pause point after resume, it never jumps or resets
type PausableClock struct {
	mu sync.RWMutex

	provider TimeProvider

	startTime     time.Time     // Effective time epoch, shifted forward on resume
	pausedElapsed time.Duration // Effective time frozen at pause
	isPaused      bool
}

// NewPausableClock creates a running clock at effective time zero
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		provider:  provider,
		startTime: provider.Now(),
	}
}

// Elapsed returns effective time (frozen while paused)
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused {
		return pc.pausedElapsed
	}
	return pc.provider.Now().Sub(pc.startTime)
}

// EffectiveTime returns Elapsed in seconds
func (pc *PausableClock) EffectiveTime() float64 {
	return pc.Elapsed().Seconds()
}

// Pause freezes effective time, no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused {
		return
	}
	pc.pausedElapsed = pc.provider.Now().Sub(pc.startTime)
	pc.isPaused = true
}

// Resume continues effective time from the pause point, no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.isPaused {
		return
	}
	pc.startTime = pc.provider.Now().Add(-pc.pausedElapsed)
	pc.isPaused = false
}

// Toggle flips pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.isPaused
}

