package engine

import (
	"time"

	"github.com/lixenwraith/starfall/parameter"
)

// FrameTimer turns frame timestamps into clamped deltas
type FrameTimer struct {
	last     time.Time
	maxDelta time.Duration
	started  bool
}

// NewFrameTimer creates a timer clamping deltas to maxDelta, zero uses parameter.MaxFrameDelta
func NewFrameTimer(maxDelta time.Duration) *FrameTimer {
	if maxDelta <= 0 {
		maxDelta = parameter.MaxFrameDelta
	}
	return &FrameTimer{maxDelta: maxDelta}
}

// Delta returns seconds since the previous timestamp in [0, maxDelta]
// First call returns 0
func (ft *FrameTimer) Delta(ts time.Time) float64 {
	if !ft.started {
		ft.started = true
		ft.last = ts
		return 0
	}

	d := ts.Sub(ft.last)
	ft.last = ts
	if d < 0 {
		d = 0
	}
	if d > ft.maxDelta {
		d = ft.maxDelta
	}
	return d.Seconds()
}
