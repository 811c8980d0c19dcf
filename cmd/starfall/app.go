package main

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/audio"
	"github.com/lixenwraith/starfall/camera"
	"github.com/lixenwraith/starfall/config"
	"github.com/lixenwraith/starfall/control"
	"github.com/lixenwraith/starfall/device"
	"github.com/lixenwraith/starfall/engine"
	"github.com/lixenwraith/starfall/render"
	"github.com/lixenwraith/starfall/sim"
	"github.com/lixenwraith/starfall/status"
)

const (
	noticeDuration = 2 * time.Second
	fpsSmoothing   = 0.1
)

// display is the part of the surface the frame loop draws to
type display interface {
	Size() (cols, rows int)
	Mode() render.Mode
	PixelRatio() float64
	Viewport() camera.Viewport
	Screen() tcell.Screen
	Show()
	Sync()
}

// app runs one scene on one display, every method is called from the scheduler goroutine
type app struct {
	st      *sim.State
	disp    display
	rnd     *render.Renderer
	chime   *audio.Chime
	input   inputHandler
	timer   *engine.FrameTimer
	events  <-chan tcell.Event
	reloads <-chan *config.Config
	log     *zap.Logger

	// overrides re-applies command-line flags over each reloaded config
	overrides func(*config.Config) error

	notice      string
	noticeUntil time.Time

	frameCount *atomic.Int64
	fpsStat    *status.Gauge
}

func newApp(st *sim.State, disp display, events <-chan tcell.Event, reloads <-chan *config.Config, chime *audio.Chime, log *zap.Logger) *app {
	cols, rows := disp.Size()
	a := &app{
		st:         st,
		disp:       disp,
		rnd:        render.NewRenderer(cols, rows, disp.Mode(), log.Named("render")),
		chime:      chime,
		timer:      engine.NewFrameTimer(0),
		events:     events,
		reloads:    reloads,
		log:        log,
		frameCount: st.Status().Ints.Get(status.FrameCount),
		fpsStat:    st.Status().Floats.Get(status.FrameFPS),
	}
	a.resize()
	return a
}

func (a *app) resize() {
	cols, rows := a.disp.Size()
	a.st.Resize(a.disp.Viewport())
	a.rnd.Resize(cols, rows, a.disp.Mode())
	a.log.Debug("resized", zap.Int("cols", cols), zap.Int("rows", rows), zap.Stringer("mode", a.disp.Mode()))
}

// start schedules the first frame
func (a *app) start() {
	a.st.Scheduler.RequestFrame(a.frame)
}

// frame is the single per-frame callback: input, reloads, step, draw, then re-request
func (a *app) frame(ts time.Time) {
	if a.drainEvents() {
		a.st.Scheduler.Stop()
		return
	}
	a.drainReloads(ts)

	dt := a.timer.Delta(ts)
	a.st.Step(dt)
	a.updateFPS(dt)

	hud := render.HUD{Prompt: &a.input.prompt}
	if ts.Before(a.noticeUntil) {
		hud.Notice = a.notice
	}
	a.rnd.Draw(a.st, hud)
	a.rnd.Flush(a.disp.Screen())
	a.disp.Show()

	a.st.Scheduler.RequestFrame(a.frame)
}

// drainEvents applies all queued input without blocking, returns true on quit
func (a *app) drainEvents() bool {
	for {
		select {
		case ev := <-a.events:
			if a.handleEvent(ev) {
				return true
			}
		default:
			return false
		}
	}
}

func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		changes, quit := a.input.handleKey(ev, a.st.Controls)
		if quit {
			return true
		}
		a.apply(changes)
	case *tcell.EventResize:
		a.resize()
		a.disp.Sync()
	}
	return false
}

func (a *app) apply(changes []control.Change) {
	for _, ch := range changes {
		if err := a.st.Apply(ch); err != nil && !errors.Is(err, device.ErrDeviceLost) {
			a.log.Warn("control change failed", zap.Error(err))
		}
	}
}

// drainReloads folds hot-reloaded speed, density and spawn delay into the controls
func (a *app) drainReloads(ts time.Time) {
	for {
		select {
		case cfg, ok := <-a.reloads:
			if !ok {
				a.reloads = nil
				return
			}
			if a.overrides != nil {
				if err := a.overrides(cfg); err != nil {
					a.log.Warn("reloaded config rejected", zap.Error(err))
					continue
				}
			}
			target := a.st.Controls
			target.Speed = cfg.Scene.Speed
			target.Density = cfg.Field.Density
			target.SpawnDelay = cfg.Meteor.SpawnDelay
			a.apply(a.st.Controls.Diff(target))
			a.notice = "config reloaded"
			a.noticeUntil = ts.Add(noticeDuration)
		default:
			return
		}
	}
}

func (a *app) updateFPS(dt float64) {
	a.frameCount.Store(int64(a.st.Scheduler.FrameCount()))
	if dt <= 0 {
		return
	}
	a.fpsStat.Smooth(1/dt, fpsSmoothing)
}

// teardown releases in order: scheduler, meteors, field, textures, device, audio
// The screen is finalised by the caller
func (a *app) teardown() {
	a.st.Scheduler.Stop()
	leaked, err := a.st.Close()
	if err != nil {
		a.log.Warn("teardown release failed", zap.Error(err))
	}
	stats := a.st.Device.Stats()
	for _, k := range []device.Kind{device.KindBuffer, device.KindMaterial, device.KindTexture} {
		a.log.Info("device resources",
			zap.Stringer("kind", k),
			zap.Int("allocated", stats[k].Allocated),
			zap.Int("released", stats[k].Released),
		)
	}
	a.log.Info("teardown complete", zap.Int("leaked", leaked), zap.Any("status", a.st.Status().Snapshot()))
	if a.chime != nil {
		a.chime.Close()
	}
}
