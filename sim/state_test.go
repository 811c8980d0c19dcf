package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/camera"
	"github.com/lixenwraith/starfall/control"
	"github.com/lixenwraith/starfall/device"
	"github.com/lixenwraith/starfall/engine"
	"github.com/lixenwraith/starfall/status"
)

func newTestState(t *testing.T, mutate func(*Options)) (*State, *engine.ManualTime) {
	t.Helper()
	mt := engine.NewManualTime()
	opts := DefaultOptions()
	opts.Seed = 42
	opts.Time = mt
	if mutate != nil {
		mutate(&opts)
	}
	s, err := New(opts)
	require.NoError(t, err)
	return s, mt
}

// run advances the manual clock in fixed frames, stepping the scheduler and the state
func run(s *State, mt *engine.ManualTime, frames int, dt float64) {
	for range frames {
		ts := mt.AdvanceSeconds(dt)
		s.Scheduler.Frame(ts)
		s.Step(dt)
	}
}

func TestNewAllocatesScene(t *testing.T) {
	s, _ := newTestState(t, nil)

	assert.Equal(t, 2000, s.Field.Density())
	assert.Equal(t, 2000, s.Controls.Density)
	assert.NotZero(t, s.Planet.Texture)
	assert.NotZero(t, s.Moon.Texture)

	stats := s.Device.Stats()
	assert.Equal(t, 1, stats[device.KindBuffer].Live())
	assert.Equal(t, 2, stats[device.KindTexture].Live())
	assert.Equal(t, 0, stats[device.KindMaterial].Live())
}

func TestResizeOnlyChangesCamera(t *testing.T) {
	s, mt := newTestState(t, nil)
	run(s, mt, 30, 0.05)

	elapsed := s.Elapsed()
	planet := s.Planet.Position
	moon := s.Moon.Position
	meteors := s.Meteors.Len()
	ctrl := s.Controls
	angle := s.Field.Angle()
	dist := s.Camera.Distance

	s.Resize(camera.Viewport{Width: 1600, Height: 900, PixelRatio: 3})

	assert.InDelta(t, 1600.0/900.0, s.Camera.Aspect, 1e-12)
	assert.Equal(t, 2.0, s.Camera.PixelRatio)
	assert.Equal(t, elapsed, s.Elapsed())
	assert.Equal(t, planet, s.Planet.Position)
	assert.Equal(t, moon, s.Moon.Position)
	assert.Equal(t, meteors, s.Meteors.Len())
	assert.Equal(t, ctrl, s.Controls)
	assert.Equal(t, angle, s.Field.Angle())
	assert.Equal(t, dist, s.Camera.Distance)
}

func TestDensityChangeMidRun(t *testing.T) {
	s, mt := newTestState(t, nil)
	run(s, mt, 10, 0.016)

	old := s.Field.Buffer()
	before := s.Device.Stats()[device.KindBuffer]

	require.NoError(t, s.Apply(control.Density(500)))
	assert.Equal(t, 500, s.Field.Density())
	assert.Equal(t, 500, s.Controls.Density)
	assert.NotEqual(t, old, s.Field.Buffer())

	after := s.Device.Stats()[device.KindBuffer]
	assert.Equal(t, before.Allocated+1, after.Allocated)
	assert.Equal(t, before.Released+1, after.Released)
	assert.Equal(t, 1, after.Live())
	assert.ErrorIs(t, s.Device.Release(old), device.ErrDoubleRelease)

	run(s, mt, 5, 0.016)
	assert.Equal(t, 500, s.Field.Density())
	assert.Equal(t, int64(500), s.Status().Ints.Get(status.FieldPoints).Load())
}

func TestPauseFreezesScene(t *testing.T) {
	s, mt := newTestState(t, nil)
	run(s, mt, 40, 0.05)

	require.NoError(t, s.Apply(control.Change{Kind: control.TogglePause}))
	assert.True(t, s.Controls.Paused)

	frozen := s.Elapsed()
	planet := s.Planet.Body.Rotation
	count := s.Meteors.Len()
	spawned := s.Meteors.Spawned()

	run(s, mt, 100, 0.05)
	assert.Equal(t, frozen, s.Elapsed())
	assert.Equal(t, planet, s.Planet.Body.Rotation)
	assert.Equal(t, count, s.Meteors.Len())
	assert.Equal(t, spawned, s.Meteors.Spawned())

	require.NoError(t, s.Apply(control.Change{Kind: control.TogglePause}))
	assert.False(t, s.Controls.Paused)
	assert.InDelta(t, frozen, s.Elapsed(), 1e-9)

	run(s, mt, 1, 0.05)
	assert.InDelta(t, frozen+0.05, s.Elapsed(), 1e-9)
	assert.Greater(t, s.Planet.Body.Rotation, planet)
}

func TestFocusTweenRunsWhilePaused(t *testing.T) {
	s, mt := newTestState(t, nil)
	require.NoError(t, s.Apply(control.Change{Kind: control.TogglePause}))
	require.NoError(t, s.Apply(control.Change{Kind: control.ToggleFocus}))
	assert.True(t, s.Controls.Focused)
	assert.True(t, s.Focus.Animating())

	start := s.Camera.Distance
	run(s, mt, 200, 0.016)
	assert.False(t, s.Focus.Animating())
	assert.Equal(t, s.Focus.FocusDistance, s.Camera.Distance)
	assert.Less(t, s.Camera.Distance, start)
}

func TestSpeedScalesRotation(t *testing.T) {
	a, amt := newTestState(t, nil)
	b, bmt := newTestState(t, nil)
	require.NoError(t, b.Apply(control.Speed(2)))

	run(a, amt, 10, 0.02)
	run(b, bmt, 10, 0.02)
	assert.InDelta(t, 2*a.Planet.Body.Rotation, b.Planet.Body.Rotation, 1e-9)
	assert.InDelta(t, 2*a.Field.Angle(), b.Field.Angle(), 1e-9)
}

func TestSpawnDelayAndReset(t *testing.T) {
	s, mt := newTestState(t, nil)
	require.NoError(t, s.Apply(control.SpawnDelay(0.01)))
	assert.Equal(t, 0.05, s.Controls.SpawnDelay)
	assert.Equal(t, 0.05, s.Meteors.Config().SpawnDelay)

	run(s, mt, 20, 0.05)
	require.Positive(t, s.Meteors.Len())

	require.NoError(t, s.Apply(control.Change{Kind: control.ResetMeteors}))
	assert.Zero(t, s.Meteors.Len())
	assert.Zero(t, s.Device.Stats()[device.KindMaterial].Live())
}

func TestNonFiniteChangesRejected(t *testing.T) {
	s, mt := newTestState(t, nil)
	for _, ch := range []control.Change{
		{Kind: control.SetSpeed, Float: math.NaN()},
		{Kind: control.SetSpawnDelay, Float: math.Inf(1)},
	} {
		assert.ErrorIs(t, s.Apply(ch), control.ErrInvalidNumber)
	}
	assert.Equal(t, 1.0, s.Controls.Speed)
	assert.Equal(t, s.Meteors.Config().SpawnDelay, s.Controls.SpawnDelay)

	run(s, mt, 200, 0.05)
	assert.False(t, math.IsNaN(s.Planet.Body.Rotation))
	assert.False(t, math.IsNaN(s.Field.Angle()))
	assert.Positive(t, s.Meteors.Spawned())
}

func TestNewReplacesNonFiniteControls(t *testing.T) {
	s, _ := newTestState(t, func(o *Options) {
		o.Controls.Speed = math.NaN()
		o.Controls.SpawnDelay = math.Inf(1)
	})
	assert.Equal(t, 1.0, s.Controls.Speed)
	assert.Equal(t, s.Meteors.Config().SpawnDelay, s.Controls.SpawnDelay)
	assert.True(t, control.Finite(s.Controls.SpawnDelay))
}

func TestDeterministicReplay(t *testing.T) {
	a, amt := newTestState(t, nil)
	b, bmt := newTestState(t, nil)
	run(a, amt, 60, 0.05)
	run(b, bmt, 60, 0.05)

	require.Equal(t, a.Meteors.Len(), b.Meteors.Len())
	for i, m := range a.Meteors.Meteors() {
		assert.Equal(t, m.Position, b.Meteors.Meteors()[i].Position)
	}
	assert.Equal(t, a.Field.Field().Positions, b.Field.Field().Positions)
}

func TestMeteorLiveMatchesMaterials(t *testing.T) {
	s, mt := newTestState(t, nil)
	for range 200 {
		run(s, mt, 1, 0.05)
		require.Equal(t, s.Meteors.Len(), s.Device.Stats()[device.KindMaterial].Live())
	}
	assert.Equal(t, int64(s.Meteors.Len()), s.Status().Ints.Get(status.MeteorLive).Load())
}

func TestCloseReleasesEverything(t *testing.T) {
	s, mt := newTestState(t, nil)
	run(s, mt, 60, 0.05)

	leaked, err := s.Close()
	require.NoError(t, err)
	assert.Zero(t, leaked)
	assert.Zero(t, s.Device.Live())
	assert.True(t, s.Scheduler.Stopped())

	leaked, err = s.Close()
	assert.NoError(t, err)
	assert.Zero(t, leaked)
}

func TestCloseAfterDeviceLoss(t *testing.T) {
	s, mt := newTestState(t, nil)
	run(s, mt, 60, 0.05)
	s.Device.Lose()
	require.True(t, s.Device.Lost())

	leaked, err := s.Close()
	assert.NoError(t, err)
	assert.Zero(t, leaked)
}

func TestStartPausedAndFocused(t *testing.T) {
	s, mt := newTestState(t, func(o *Options) {
		o.Controls.Paused = true
		o.Controls.Focused = true
	})
	assert.True(t, s.Clock.IsPaused())
	assert.Equal(t, s.Focus.FocusDistance, s.Camera.Distance)

	mt.Advance(time.Second)
	assert.Zero(t, s.Elapsed())
}
