package meteor

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/device"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/vmath"
)

// SpawnScheduler tracks spawn cadence in effective time
type SpawnScheduler struct {
	LastSpawn float64
	NextDelay float64
}

// Due reports whether a spawn is due at elapsed
func (s SpawnScheduler) Due(elapsed float64) bool {
	return elapsed-s.LastSpawn >= s.NextDelay-parameter.MeteorSpawnEpsilon
}

// Manager owns the active meteors in insertion order
type Manager struct {
	dev *device.Device
	rng *rand.Rand
	cfg Config
	log *zap.Logger

	meteors []*Meteor
	sched   SpawnScheduler
	nextID  uint64

	spawned uint64
	expired uint64

	// OnSpawn observes each new meteor after it joins the active set
	OnSpawn func(*Meteor)
}

// NewManager creates an empty manager with the first spawn one delay after effective time zero
func NewManager(dev *device.Device, rng *rand.Rand, cfg Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{dev: dev, rng: rng, cfg: cfg, log: log}
	m.sched.NextDelay = m.drawDelay()
	return m
}

// Config returns the active configuration
func (m *Manager) Config() Config {
	return m.cfg
}

// Scheduler returns the spawn cadence state
func (m *Manager) Scheduler() SpawnScheduler {
	return m.sched
}

// SetSpawnDelay changes the base delay and redraws the pending delay
func (m *Manager) SetSpawnDelay(base float64) {
	m.cfg.SpawnDelay = base
	m.sched.NextDelay = m.drawDelay()
}

// Meteors returns the active set, callers must not retain or mutate it
func (m *Manager) Meteors() []*Meteor {
	return m.meteors
}

// Len returns the active meteor count
func (m *Manager) Len() int {
	return len(m.meteors)
}

// Spawned returns total spawns
func (m *Manager) Spawned() uint64 {
	return m.spawned
}

// Expired returns total retirements by age
func (m *Manager) Expired() uint64 {
	return m.expired
}

// Update runs the per-frame pass: spawn check, then update-and-cull over all active meteors
// dt is zero while paused so positions hold
func (m *Manager) Update(elapsed, dt float64) {
	if m.sched.Due(elapsed) {
		m.Spawn(elapsed)
	}

	// Iterate-and-compact: expired meteors are released and dropped in this same pass
	kept := m.meteors[:0]
	for _, mt := range m.meteors {
		if mt.Expired(elapsed) {
			m.retire(mt)
			m.expired++
			continue
		}
		m.advance(mt, elapsed, dt)
		kept = append(kept, mt)
	}
	for i := len(kept); i < len(m.meteors); i++ {
		m.meteors[i] = nil
	}
	m.meteors = kept
}

func (m *Manager) advance(mt *Meteor, elapsed, dt float64) {
	if dt > 0 {
		mt.Position = vmath.V3FAdd(mt.Position, vmath.V3FScale(mt.Velocity, dt))
	}
	mt.Opacity = Opacity(mt.Age(elapsed), mt.Lifetime)
	mt.Orientation = Orient(mt.Velocity)

	if mat, ok := m.dev.Material(mt.Material); ok {
		mat.SetFloat(UniformOpacity, mt.Opacity)
	}
}

// Spawn creates one meteor born at elapsed and redraws the next delay
func (m *Manager) Spawn(elapsed float64) *Meteor {
	cfg := m.cfg
	angle := m.rng.Float64() * 2 * math.Pi
	dist := m.uniform(cfg.RingMin, cfg.RingMax)
	start := vmath.Vec3F{
		X: math.Cos(angle) * dist,
		Y: m.uniform(cfg.HeightMin, cfg.HeightMax),
		Z: math.Sin(angle) * dist,
	}

	// Target: uniform in a disc-like volume near the origin
	tAngle := m.rng.Float64() * 2 * math.Pi
	tRadius := math.Sqrt(m.rng.Float64()) * cfg.TargetRadius
	target := vmath.Vec3F{
		X: math.Cos(tAngle) * tRadius,
		Y: (m.rng.Float64()*2 - 1) * cfg.TargetRadius * 0.5,
		Z: math.Sin(tAngle) * tRadius,
	}

	speed := m.uniform(cfg.SpeedMin, cfg.SpeedMax)
	dir := vmath.V3FNormalize(vmath.V3FSub(target, start))
	if dir == (vmath.Vec3F{}) {
		dir = vmath.V3FNormalize(vmath.V3FScale(start, -1))
	}
	velocity := vmath.V3FScale(dir, speed)

	m.nextID++
	mt := &Meteor{
		ID:          m.nextID,
		Position:    start,
		Velocity:    velocity,
		Birth:       elapsed,
		Lifetime:    m.uniform(cfg.LifetimeMin, cfg.LifetimeMax),
		HeadRadius:  m.uniform(cfg.HeadRadiusMin, cfg.HeadRadiusMax),
		TrailLength: speed * cfg.TrailFactor,
		Opacity:     1,
		Orientation: Orient(velocity),
		Color:       m.pickColor(),
	}
	mt.Material = m.dev.CreateMaterial(
		map[string]float64{
			UniformOpacity:     mt.Opacity,
			UniformHeadRadius:  mt.HeadRadius,
			UniformTrailLength: mt.TrailLength,
		},
		map[string]colorful.Color{UniformColor: mt.Color},
	)

	m.meteors = append(m.meteors, mt)
	m.spawned++
	m.sched.LastSpawn = elapsed
	m.sched.NextDelay = m.drawDelay()

	if m.OnSpawn != nil {
		m.OnSpawn(mt)
	}
	return mt
}

// Clear retires every active meteor without counting it as expired
func (m *Manager) Clear() error {
	var errs []error
	for i, mt := range m.meteors {
		if err := m.release(mt); err != nil {
			errs = append(errs, err)
		}
		m.meteors[i] = nil
	}
	m.meteors = m.meteors[:0]
	return errors.Join(errs...)
}

// Restart clears the active set and rebases the spawn cadence at elapsed
func (m *Manager) Restart(elapsed float64) error {
	err := m.Clear()
	m.sched.LastSpawn = elapsed
	m.sched.NextDelay = m.drawDelay()
	return err
}

func (m *Manager) retire(mt *Meteor) {
	if err := m.release(mt); err != nil {
		if errors.Is(err, device.ErrDeviceLost) {
			return
		}
		m.log.Warn("meteor release failed", zap.Uint64("id", mt.ID), zap.Error(err))
	}
}

func (m *Manager) release(mt *Meteor) error {
	if mt.Material == 0 {
		return nil
	}
	h := mt.Material
	mt.Material = 0
	if err := m.dev.Release(h); err != nil {
		return fmt.Errorf("meteor %d: %w", mt.ID, err)
	}
	return nil
}

func (m *Manager) drawDelay() float64 {
	base := m.cfg.SpawnDelay
	if m.cfg.Jitter <= 0 {
		return base
	}
	return base * m.uniform(1-m.cfg.Jitter, 1+m.cfg.Jitter)
}

func (m *Manager) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + m.rng.Float64()*(hi-lo)
}

func (m *Manager) pickColor() colorful.Color {
	if len(m.cfg.Palette) == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return m.cfg.Palette[m.rng.IntN(len(m.cfg.Palette))]
}
