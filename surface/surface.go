// Package surface owns the tcell screen: geometry, input polling and teardown
package surface

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfall/camera"
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/render"
)

// Surface wraps a tcell screen as the scene render target
type Surface struct {
	scr        tcell.Screen
	pixelRatio float64
	events     chan tcell.Event
	done       chan struct{}
	once       sync.Once
	started    bool
}

// New creates and initialises the terminal screen
func New(pixelRatio float64) (*Surface, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewWithScreen(scr, pixelRatio)
}

// NewWithScreen initialises scr, tests pass a simulation screen
func NewWithScreen(scr tcell.Screen, pixelRatio float64) (*Surface, error) {
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	scr.HideCursor()
	scr.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	scr.Clear()
	core.SetCrashScreen(scr)

	return &Surface{
		scr:        scr,
		pixelRatio: camera.ClampPixelRatio(pixelRatio),
		events:     make(chan tcell.Event, parameter.InputQueueSize),
		done:       make(chan struct{}),
	}, nil
}

// Start launches the input poll goroutine, later calls are no-ops
func (s *Surface) Start() {
	if s.started {
		return
	}
	s.started = true
	core.Go(s.poll)
}

func (s *Surface) poll() {
	for {
		ev := s.scr.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Events delivers polled input and resize events
func (s *Surface) Events() <-chan tcell.Event {
	return s.events
}

// Screen returns the underlying tcell screen
func (s *Surface) Screen() tcell.Screen {
	return s.scr
}

// PixelRatio returns the clamped pixel ratio in use
func (s *Surface) PixelRatio() float64 {
	return s.pixelRatio
}

// Mode returns the cell mapping for the pixel ratio
func (s *Surface) Mode() render.Mode {
	return render.ModeForPixelRatio(s.pixelRatio)
}

// Size returns the terminal size in cells
func (s *Surface) Size() (cols, rows int) {
	return s.scr.Size()
}

// Viewport returns the scene area in half-cell units, HUD rows excluded
func (s *Surface) Viewport() camera.Viewport {
	cols, rows := s.Size()
	return ViewportFor(cols, rows, s.pixelRatio)
}

// ViewportFor converts a terminal size to the camera viewport
func ViewportFor(cols, rows int, pixelRatio float64) camera.Viewport {
	sceneRows := max(1, rows-parameter.HUDRows)
	return camera.Viewport{
		Width:      max(1, cols),
		Height:     int(float64(sceneRows) * parameter.CellAspect),
		PixelRatio: camera.ClampPixelRatio(pixelRatio),
	}
}

// Show pushes the composed frame to the terminal
func (s *Surface) Show() {
	s.scr.Show()
}

// Sync redraws the whole terminal, used after resize
func (s *Surface) Sync() {
	s.scr.Sync()
}

// Fini restores the terminal, safe to call more than once
func (s *Surface) Fini() {
	s.once.Do(func() {
		close(s.done)
		core.SetCrashScreen(nil)
		s.scr.Fini()
	})
}
