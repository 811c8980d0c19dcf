package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/vmath"
)

type chanSource struct {
	ch      chan time.Time
	stopped bool
}

func (c *chanSource) Frames() <-chan time.Time { return c.ch }
func (c *chanSource) Stop()                    { c.stopped = true }

func TestScheduler_FrameCallbackIsOneShot(t *testing.T) {
	s := NewScheduler(nil)
	base := time.Unix(0, 0)

	calls := 0
	s.RequestFrame(func(time.Time) { calls++ })
	s.Frame(base)
	s.Frame(base.Add(time.Millisecond))
	assert.Equal(t, 1, calls, "callback without re-request runs once")
}

func TestScheduler_ReRequestKeepsRunning(t *testing.T) {
	s := NewScheduler(nil)
	base := time.Unix(0, 0)

	var stamps []time.Time
	var loop FrameFunc
	loop = func(ts time.Time) {
		stamps = append(stamps, ts)
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	for i := 0; i < 5; i++ {
		s.Frame(base.Add(time.Duration(i) * time.Millisecond))
	}
	require.Len(t, stamps, 5)
	for i := 1; i < len(stamps); i++ {
		assert.True(t, stamps[i].After(stamps[i-1]))
	}
}

func TestScheduler_CancelFrame(t *testing.T) {
	s := NewScheduler(nil)
	called := false
	id := s.RequestFrame(func(time.Time) { called = true })

	s.CancelFrame(id + 1) // stale id is ignored
	s.CancelFrame(id)
	s.Frame(time.Unix(0, 0))
	assert.False(t, called)
}

func TestScheduler_TweensRunBeforeCallback(t *testing.T) {
	s := NewScheduler(nil)
	base := time.Unix(0, 0)

	var order []string
	s.AddTween("a", &Tween{From: 0, To: 1, Duration: time.Second, Apply: func(float64) { order = append(order, "tween") }})
	s.RequestFrame(func(time.Time) { order = append(order, "main") })
	s.Frame(base)

	assert.Equal(t, []string{"tween", "main"}, order)
}

func TestScheduler_TweenCompletes(t *testing.T) {
	s := NewScheduler(nil)
	base := time.Unix(0, 0)

	var value float64
	done := false
	s.AddTween("zoom", &Tween{
		From: 10, To: 4, Duration: time.Second,
		Ease:   vmath.EaseOutCubic,
		Apply:  func(v float64) { value = v },
		OnDone: func() { done = true },
	})

	s.Frame(base)
	assert.Equal(t, 10.0, value)

	s.Frame(base.Add(500 * time.Millisecond))
	assert.InDelta(t, 10-6*0.875, value, 1e-9)
	assert.True(t, s.HasTween("zoom"))

	s.Frame(base.Add(1100 * time.Millisecond))
	assert.Equal(t, 4.0, value, "final step lands exactly on target")
	assert.True(t, done)
	assert.False(t, s.HasTween("zoom"))
	assert.Equal(t, 0, s.ActiveTweens())
}

func TestScheduler_TweenReplacedBySameKey(t *testing.T) {
	s := NewScheduler(nil)
	base := time.Unix(0, 0)

	var first, second int
	s.AddTween("k", &Tween{Duration: time.Second, Apply: func(float64) { first++ }})
	s.Frame(base)
	s.AddTween("k", &Tween{Duration: time.Second, Apply: func(float64) { second++ }})
	s.Frame(base.Add(10 * time.Millisecond))

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, s.ActiveTweens())
}

func TestScheduler_StopAbandonsWork(t *testing.T) {
	s := NewScheduler(nil)
	calls := 0
	s.AddTween("k", &Tween{Duration: time.Second, Apply: func(float64) { calls++ }})
	s.RequestFrame(func(time.Time) { calls++ })

	s.Stop()
	s.Frame(time.Unix(0, 0))
	assert.Equal(t, 0, calls)
	assert.True(t, s.Stopped())
}

func TestScheduler_RunUntilCancelled(t *testing.T) {
	s := NewScheduler(nil)
	src := &chanSource{ch: make(chan time.Time, 3)}
	ctx, cancel := context.WithCancel(context.Background())

	frames := 0
	var loop FrameFunc
	loop = func(time.Time) {
		frames++
		if frames == 3 {
			cancel()
		}
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	base := time.Unix(0, 0)
	for i := 0; i < 3; i++ {
		src.ch <- base.Add(time.Duration(i) * time.Millisecond)
	}

	err := s.Run(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, frames)
	assert.True(t, src.stopped)
	assert.True(t, s.Stopped())
}

func TestScheduler_RunReturnsWhenStoppedInFrame(t *testing.T) {
	s := NewScheduler(nil)
	src := &chanSource{ch: make(chan time.Time, 1)}
	s.RequestFrame(func(time.Time) { s.Stop() })
	src.ch <- time.Unix(0, 0)

	require.NoError(t, s.Run(context.Background(), src))
}
