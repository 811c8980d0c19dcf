package engine

import (
	"time"

	"github.com/lixenwraith/starfall/vmath"
)

// EaseFunc maps normalized progress [0,1] to eased progress
type EaseFunc func(t float64) float64

// Tween interpolates a scalar from From to To over Duration of frame time
// It is self-terminating and runs independently of the simulation clock
type Tween struct {
	From, To float64
	Duration time.Duration
	Ease     EaseFunc
	Apply    func(v float64)
	OnDone   func()

	start   time.Time
	started bool
}

// Step applies the value for frame timestamp ts and reports completion
// The final step always applies exactly To
func (tw *Tween) Step(ts time.Time) bool {
	if !tw.started {
		tw.started = true
		tw.start = ts
	}

	progress := 1.0
	if tw.Duration > 0 {
		progress = float64(ts.Sub(tw.start)) / float64(tw.Duration)
	}

	if progress >= 1 {
		tw.apply(tw.To)
		if tw.OnDone != nil {
			tw.OnDone()
		}
		return true
	}

	ease := tw.Ease
	if ease == nil {
		ease = vmath.Linear
	}
	tw.apply(vmath.Lerp(tw.From, tw.To, ease(progress)))
	return false
}

func (tw *Tween) apply(v float64) {
	if tw.Apply != nil {
		tw.Apply(v)
	}
}
