package camera

import (
	"time"

	"github.com/lixenwraith/starfall/engine"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/vmath"
)

// FocusTweenKey is the scheduler key of the camera distance tween
const FocusTweenKey = "camera.distance"

// Focus animates camera distance between the unfocused and focused targets
type Focus struct {
	cam   *Camera
	sched *engine.Scheduler

	Focused       bool
	Unfocused     float64
	FocusDistance float64
	Duration      time.Duration
}

// NewFocus binds the focus toggle of cam to sched
func NewFocus(cam *Camera, sched *engine.Scheduler) *Focus {
	return &Focus{
		cam:           cam,
		sched:         sched,
		Unfocused:     parameter.CameraDistance,
		FocusDistance: parameter.CameraFocusDistance,
		Duration:      parameter.CameraFocusDuration,
	}
}

// Toggle flips focus and starts the zoom tween, returns the new state
func (f *Focus) Toggle() bool {
	f.Set(!f.Focused)
	return f.Focused
}

// Set starts a tween from the current camera distance toward the target for focused
// A running zoom is replaced so only one writer touches the camera
func (f *Focus) Set(focused bool) {
	f.Focused = focused
	target := f.Unfocused
	if focused {
		target = f.FocusDistance
	}
	cam := f.cam
	f.sched.AddTween(FocusTweenKey, &engine.Tween{
		From:     cam.Distance,
		To:       target,
		Duration: f.Duration,
		Ease:     vmath.EaseOutCubic,
		Apply:    func(v float64) { cam.Distance = v },
	})
}

// Target returns the distance the camera is heading to
func (f *Focus) Target() float64 {
	if f.Focused {
		return f.FocusDistance
	}
	return f.Unfocused
}

// Animating reports whether the zoom tween is still running
func (f *Focus) Animating() bool {
	return f.sched.HasTween(FocusTweenKey)
}
