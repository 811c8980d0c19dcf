// Package sim bundles the whole scene into one explicitly passed state
package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/body"
	"github.com/lixenwraith/starfall/camera"
	"github.com/lixenwraith/starfall/control"
	"github.com/lixenwraith/starfall/device"
	"github.com/lixenwraith/starfall/engine"
	"github.com/lixenwraith/starfall/field"
	"github.com/lixenwraith/starfall/meteor"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/status"
)

// Options configures a new State, zero values take parameter defaults
type Options struct {
	Seed     uint64
	Field    field.Config
	Meteor   meteor.Config
	Controls control.Controls

	FOV           float64
	FocusDistance float64
	ViewDistance  float64
	FocusDuration time.Duration

	Time      engine.TimeProvider
	Scheduler *engine.Scheduler
	Status    *status.Registry
	Log       *zap.Logger
}

// DefaultOptions returns options matching the parameter defaults
func DefaultOptions() Options {
	return Options{
		Seed:          1,
		Field:         field.DefaultConfig(),
		Meteor:        meteor.DefaultConfig(),
		Controls:      control.Defaults(),
		FOV:           parameter.CameraFOV,
		FocusDistance: parameter.CameraFocusDistance,
		ViewDistance:  parameter.CameraDistance,
		FocusDuration: parameter.CameraFocusDuration,
	}
}

// State is the mutable scene, accessed serially from the frame loop
type State struct {
	Clock     *engine.PausableClock
	Scheduler *engine.Scheduler
	Device    *device.Device
	Field     *field.Host
	Planet    *body.Planet
	Moon      *body.Moon
	Meteors   *meteor.Manager
	Camera    *camera.Camera
	Focus     *camera.Focus
	Controls  control.Controls

	status *status.Registry
	log    *zap.Logger

	statLive    *atomic.Int64
	statSpawned *atomic.Int64
	statExpired *atomic.Int64
	statPoints  *atomic.Int64
	statDevice  *atomic.Int64
	statClock   *status.Gauge

	closed bool
}

// New builds the scene: field, bodies with textures, meteor manager and camera
func New(opts Options) (*State, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = engine.NewScheduler(log)
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	if !(opts.Meteor.SpawnDelay > 0) || !control.Finite(opts.Meteor.SpawnDelay) {
		opts.Meteor = meteor.DefaultConfig()
	}
	if opts.Field.RadiusMax <= 0 {
		opts.Field = field.DefaultConfig()
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	dev := device.New(log.Named("device"))

	ctrl := opts.Controls
	if !control.Finite(ctrl.Speed) {
		ctrl.Speed = parameter.SpeedDefault
	}
	ctrl.Speed = max(0, ctrl.Speed)
	ctrl.Density = field.ClampDensity(ctrl.Density)
	if !(ctrl.SpawnDelay > 0) || !control.Finite(ctrl.SpawnDelay) {
		ctrl.SpawnDelay = opts.Meteor.SpawnDelay
	}
	ctrl.SpawnDelay = max(parameter.MeteorSpawnDelayMin, ctrl.SpawnDelay)
	opts.Meteor.SpawnDelay = ctrl.SpawnDelay

	s := &State{
		Clock:     engine.NewPausableClock(opts.Time),
		Scheduler: sched,
		Device:    dev,
		Field:     field.NewHost(dev, rng, opts.Field, ctrl.Density, log.Named("field")),
		Planet:    body.NewPlanet(),
		Moon:      body.NewMoon(),
		Meteors:   meteor.NewManager(dev, rng, opts.Meteor, log.Named("meteor")),
		Camera:    camera.New(),
		status:    reg,
		log:       log,
	}

	if err := body.AttachTexture(dev, rng, &s.Planet.Body, parameter.PlanetTextureBands, body.PlanetPalette); err != nil {
		return nil, fmt.Errorf("planet texture: %w", err)
	}
	if err := body.AttachTexture(dev, rng, &s.Moon.Body, parameter.MoonTextureBands, body.MoonPalette); err != nil {
		return nil, fmt.Errorf("moon texture: %w", err)
	}

	s.Focus = camera.NewFocus(s.Camera, sched)
	if opts.ViewDistance > 0 {
		s.Focus.Unfocused = opts.ViewDistance
	}
	if opts.FocusDistance > 0 {
		s.Focus.FocusDistance = opts.FocusDistance
	}
	if opts.FocusDuration > 0 {
		s.Focus.Duration = opts.FocusDuration
	}
	if opts.FOV > 0 {
		s.Camera.FOV = opts.FOV
		s.Camera.UpdateProjection()
	}
	s.Camera.Distance = s.Focus.Unfocused

	s.statLive = reg.Ints.Get(status.MeteorLive)
	s.statSpawned = reg.Ints.Get(status.MeteorSpawned)
	s.statExpired = reg.Ints.Get(status.MeteorExpired)
	s.statPoints = reg.Ints.Get(status.FieldPoints)
	s.statDevice = reg.Ints.Get(status.DeviceLive)
	s.statClock = reg.Floats.Get(status.ClockEffective)

	s.Controls = control.Controls{
		Speed:      ctrl.Speed,
		Density:    s.Field.Density(),
		SpawnDelay: ctrl.SpawnDelay,
	}
	if ctrl.Paused {
		s.Clock.Pause()
		s.Controls.Paused = true
	}
	if ctrl.Focused {
		s.Focus.Focused = true
		s.Camera.Distance = s.Focus.FocusDistance
		s.Controls.Focused = true
	}

	s.publish(0)
	return s, nil
}

// Status returns the metrics registry the state writes to
func (s *State) Status() *status.Registry {
	return s.status
}

// Elapsed returns effective simulation time in seconds
func (s *State) Elapsed() float64 {
	return s.Clock.EffectiveTime()
}

// Step runs one update pass with frame delta dt seconds
// Paused frames advance nothing and keep effective time frozen
func (s *State) Step(dt float64) {
	elapsed := s.Clock.EffectiveTime()
	if s.Clock.IsPaused() || dt < 0 {
		dt = 0
	}

	if dt > 0 {
		speed := s.Controls.Speed
		s.Field.Rotate(dt * parameter.FieldRotationRate * speed)
		s.Planet.Advance(dt, elapsed, speed)
		s.Moon.Advance(dt, elapsed, speed)
	}
	s.Meteors.Update(elapsed, dt)

	s.publish(elapsed)
}

func (s *State) publish(elapsed float64) {
	s.statLive.Store(int64(s.Meteors.Len()))
	s.statSpawned.Store(int64(s.Meteors.Spawned()))
	s.statExpired.Store(int64(s.Meteors.Expired()))
	s.statPoints.Store(int64(s.Field.Density()))
	s.statDevice.Store(int64(s.Device.Live()))
	s.statClock.Set(elapsed)
}

// Apply performs one validated control change against the scene
func (s *State) Apply(ch control.Change) error {
	if !ch.Valid() {
		return fmt.Errorf("control change %d value %v: %w", ch.Kind, ch.Float, control.ErrInvalidNumber)
	}
	switch ch.Kind {
	case control.SetSpeed:
		s.Controls.Apply(ch)
	case control.SetDensity:
		s.Controls.Apply(ch)
		if err := s.Field.SetDensity(s.Controls.Density); err != nil {
			return fmt.Errorf("set density: %w", err)
		}
		s.Controls.Density = s.Field.Density()
		s.statPoints.Store(int64(s.Field.Density()))
	case control.TogglePause:
		s.Controls.Paused = s.Clock.Toggle()
	case control.ToggleFocus:
		s.Controls.Focused = s.Focus.Toggle()
	case control.SetSpawnDelay:
		s.Controls.Apply(ch)
		s.Meteors.SetSpawnDelay(s.Controls.SpawnDelay)
	case control.ResetMeteors:
		if err := s.Meteors.Restart(s.Elapsed()); err != nil {
			return fmt.Errorf("reset meteors: %w", err)
		}
	default:
		return fmt.Errorf("unknown control change %d", ch.Kind)
	}
	s.log.Debug("control applied",
		zap.Uint8("kind", uint8(ch.Kind)),
		zap.Float64("speed", s.Controls.Speed),
		zap.Int("density", s.Controls.Density),
		zap.Bool("paused", s.Controls.Paused),
		zap.Bool("focused", s.Controls.Focused),
		zap.Float64("spawn_delay", s.Controls.SpawnDelay),
	)
	return nil
}

// Resize forwards the viewport to the camera, no other state changes
func (s *State) Resize(v camera.Viewport) {
	s.Camera.Resize(v)
}

// Close stops the scheduler and releases every device resource
// Context-loss release failures are ignored, the leak count is returned
func (s *State) Close() (int, error) {
	if s.closed {
		return 0, nil
	}
	s.closed = true
	s.Scheduler.Stop()

	if s.Device.Lost() {
		s.log.Info("device lost before teardown, releases skipped")
	}

	var errs []error
	keep := func(err error) {
		if err != nil && !errors.Is(err, device.ErrDeviceLost) {
			errs = append(errs, err)
		}
	}
	keep(s.Meteors.Clear())
	keep(s.Field.Release())
	keep(body.ReleaseTexture(s.Device, &s.Planet.Body))
	keep(body.ReleaseTexture(s.Device, &s.Moon.Body))

	leaked := s.Device.Close()
	s.statDevice.Store(int64(s.Device.Live()))
	if leaked > 0 {
		s.log.Warn("device resources leaked", zap.Int("count", leaked))
	}
	return leaked, errors.Join(errs...)
}
