package meteor

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/device"
	"github.com/lixenwraith/starfall/vmath"
)

func newManager(t *testing.T, mutate func(*Config)) (*Manager, *device.Device) {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	dev := device.New(nil)
	return NewManager(dev, rand.New(rand.NewPCG(7, 11)), cfg, nil), dev
}

func TestSpawnCadence_FixedDelay(t *testing.T) {
	m, _ := newManager(t, func(c *Config) {
		c.SpawnDelay = 0.3
		c.Jitter = 0
		c.LifetimeMin, c.LifetimeMax = 10, 10
	})

	var births []float64
	m.OnSpawn = func(mt *Meteor) { births = append(births, mt.Birth) }

	const step = 0.05
	for i := 0; i <= 24; i++ {
		m.Update(float64(i)*step, step)
	}

	require.Len(t, births, 4)
	for i, want := range []float64{0.3, 0.6, 0.9, 1.2} {
		assert.InDelta(t, want, births[i], 1e-9)
	}
	assert.Equal(t, uint64(4), m.Spawned())
	assert.Equal(t, 4, m.Len())
}

func TestSpawnCadence_JitterBand(t *testing.T) {
	m, _ := newManager(t, func(c *Config) { c.SpawnDelay = 1 })
	for i := 0; i < 200; i++ {
		m.Spawn(float64(i))
		d := m.Scheduler().NextDelay
		assert.GreaterOrEqual(t, d, 0.8)
		assert.LessOrEqual(t, d, 1.2)
	}
}

func TestOpacity_Monotonic(t *testing.T) {
	for _, lifetime := range []float64{0.5, 1.5, 3} {
		prev := Opacity(0, lifetime)
		assert.Equal(t, 1.0, prev)
		for i := 1; i <= 1000; i++ {
			o := Opacity(lifetime*float64(i)/1000, lifetime)
			assert.LessOrEqual(t, o, prev)
			prev = o
		}
		assert.Equal(t, 0.0, Opacity(lifetime, lifetime), "exactly zero at lifetime")
		assert.Equal(t, 0.0, Opacity(lifetime*2, lifetime))
	}
	assert.Equal(t, 0.0, Opacity(0.1, 0))
}

func TestExpiry_RemovedSameFrame(t *testing.T) {
	m, dev := newManager(t, func(c *Config) {
		c.SpawnDelay = 100
		c.LifetimeMin, c.LifetimeMax = 1, 1
	})
	mt := m.Spawn(0)
	require.Equal(t, 1, dev.Live())

	m.Update(1.0, 0.1)
	require.Equal(t, 1, m.Len(), "age == lifetime is still live")
	assert.Equal(t, 0.0, mt.Opacity)

	m.Update(1.0001, 0.0001)
	assert.Equal(t, 0, m.Len(), "age > lifetime is gone after the pass")
	assert.Equal(t, uint64(1), m.Expired())
	assert.Equal(t, 0, dev.Live(), "material released on expiry")
	assert.Equal(t, device.Handle(0), mt.Material)
}

func TestUpdate_LiveInvariant(t *testing.T) {
	m, dev := newManager(t, func(c *Config) { c.SpawnDelay = 0.1 })

	const step = 1.0 / 60
	for i := 0; i < 60*20; i++ {
		elapsed := float64(i) * step
		m.Update(elapsed, step)
		for _, mt := range m.Meteors() {
			age := mt.Age(elapsed)
			assert.GreaterOrEqual(t, age, 0.0)
			assert.LessOrEqual(t, age, mt.Lifetime)
		}
	}

	stats := dev.Stats()[device.KindMaterial]
	assert.Equal(t, int(m.Spawned()), stats.Allocated)
	assert.Equal(t, int(m.Expired()), stats.Released)
	assert.Equal(t, m.Len(), stats.Live())

	require.NoError(t, m.Clear())
	assert.Equal(t, 0, dev.Live())
}

func TestUpdate_PausedHoldsPosition(t *testing.T) {
	m, _ := newManager(t, func(c *Config) { c.SpawnDelay = 0.5; c.Jitter = 0 })
	m.Update(0.5, 0.016)
	require.Equal(t, 1, m.Len())
	mt := m.Meteors()[0]
	pos := mt.Position

	// Paused frames: effective time frozen, dt zero
	for i := 0; i < 100; i++ {
		m.Update(0.5, 0)
	}
	assert.Equal(t, pos, mt.Position)
	assert.Equal(t, 1, m.Len(), "no spawns while effective time is frozen")
}

func TestUpdate_Integrates(t *testing.T) {
	m, _ := newManager(t, func(c *Config) { c.SpawnDelay = 100 })
	mt := m.Spawn(0)
	start := mt.Position

	m.Update(0.25, 0.25)
	want := vmath.V3FAdd(start, vmath.V3FScale(mt.Velocity, 0.25))
	assert.InDelta(t, want.X, mt.Position.X, 1e-12)
	assert.InDelta(t, want.Y, mt.Position.Y, 1e-12)
	assert.InDelta(t, want.Z, mt.Position.Z, 1e-12)
}

func TestSpawn_Parameters(t *testing.T) {
	m, dev := newManager(t, nil)
	cfg := m.Config()

	for i := 0; i < 500; i++ {
		mt := m.Spawn(float64(i))

		ring := math.Hypot(mt.Position.X, mt.Position.Z)
		assert.GreaterOrEqual(t, ring, cfg.RingMin-1e-9)
		assert.LessOrEqual(t, ring, cfg.RingMax+1e-9)
		assert.GreaterOrEqual(t, mt.Position.Y, cfg.HeightMin)
		assert.LessOrEqual(t, mt.Position.Y, cfg.HeightMax)

		speed := vmath.V3FMag(mt.Velocity)
		assert.GreaterOrEqual(t, speed, cfg.SpeedMin-1e-9)
		assert.LessOrEqual(t, speed, cfg.SpeedMax+1e-9)
		assert.InDelta(t, speed*cfg.TrailFactor, mt.TrailLength, 1e-9)

		assert.GreaterOrEqual(t, mt.Lifetime, cfg.LifetimeMin)
		assert.LessOrEqual(t, mt.Lifetime, cfg.LifetimeMax)

		// Flight passes near the origin: closest approach within the target band
		toOrigin := vmath.V3FScale(mt.Position, -1)
		dir := mt.Direction()
		along := vmath.V3FDot(toOrigin, dir)
		assert.Greater(t, along, 0.0, "heading inward")
		closest := vmath.V3FMag(vmath.V3FSub(toOrigin, vmath.V3FScale(dir, along)))
		assert.LessOrEqual(t, closest, cfg.TargetRadius*1.2)

		mat, ok := dev.Material(mt.Material)
		require.True(t, ok)
		assert.Equal(t, mt.HeadRadius, mat.Float(UniformHeadRadius, 0))
	}
}

func TestOrient_AlignsTrailOpposingFlight(t *testing.T) {
	m, _ := newManager(t, nil)
	mt := m.Spawn(0)

	head := mt.Orientation.Rotate(vmath.UnitY)
	dir := mt.Direction()
	assert.InDelta(t, 1.0, vmath.V3FDot(head, dir), 1e-9)

	trail := mt.TrailAxis()
	assert.InDelta(t, mt.TrailLength, vmath.V3FMag(trail), 1e-9)
	assert.InDelta(t, -mt.TrailLength, vmath.V3FDot(trail, dir), 1e-9)

	assert.Equal(t, vmath.QuatIdentity, Orient(vmath.Vec3F{}))
}

func TestClearAndRestart(t *testing.T) {
	m, dev := newManager(t, func(c *Config) { c.SpawnDelay = 0.2; c.Jitter = 0 })
	for i := 0; i < 3; i++ {
		m.Spawn(0)
	}
	require.Equal(t, 3, dev.Live())

	require.NoError(t, m.Restart(5))
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, dev.Live())
	assert.Equal(t, uint64(0), m.Expired(), "cleared meteors are not counted as expired")
	assert.Equal(t, 5.0, m.Scheduler().LastSpawn)

	m.Update(5.1, 0.1)
	assert.Equal(t, 0, m.Len())
	m.Update(5.2, 0.1)
	assert.Equal(t, 1, m.Len())
}

func TestClear_LostDevice(t *testing.T) {
	m, dev := newManager(t, nil)
	m.Spawn(0)
	dev.Lose()

	err := m.Clear()
	assert.ErrorIs(t, err, device.ErrDeviceLost)
	assert.Equal(t, 0, m.Len())
}

func TestSetSpawnDelay(t *testing.T) {
	m, _ := newManager(t, func(c *Config) { c.Jitter = 0 })
	m.SetSpawnDelay(2.5)
	assert.Equal(t, 2.5, m.Scheduler().NextDelay)
	assert.Equal(t, 2.5, m.Config().SpawnDelay)
}
