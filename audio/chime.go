// Package audio plays a short synthesized cue when a meteor spawns
package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/parameter"
)

// Chime owns the speaker, a disabled chime drops every cue
type Chime struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	enabled bool
	volume  float64
	log     *zap.Logger
}

// NewChime opens the speaker when enabled
// Speaker failure is non-fatal: the chime is returned muted together with the error
func NewChime(enabled bool, volume float64, log *zap.Logger) (*Chime, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Chime{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: volume,
		log:    log,
	}
	if !enabled {
		return c, nil
	}
	if err := speaker.Init(c.rate, c.rate.N(parameter.AudioBufferDuration)); err != nil {
		return c, fmt.Errorf("speaker init: %w", err)
	}
	c.enabled = true
	log.Debug("audio ready", zap.Int("sample_rate", int(c.rate)))
	return c, nil
}

// Enabled reports whether cues reach the speaker
func (c *Chime) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Play queues one cue at freq Hz
func (c *Chime) Play(freq float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	speaker.Play(c.cue(freq))
}

func (c *Chime) cue(freq float64) beep.Streamer {
	return &effects.Gain{
		Streamer: NewTone(freq, parameter.ChimeDuration, c.rate),
		Gain:     c.volume - 1,
	}
}

// Close stops playback and releases the speaker
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.enabled = false
	speaker.Clear()
	speaker.Close()
}

// PitchFor maps meteor speed within [lo, hi] onto one octave above ChimeBaseFreq
func PitchFor(speed, lo, hi float64) float64 {
	t := 0.0
	if hi > lo {
		t = min(1, max(0, (speed-lo)/(hi-lo)))
	}
	return parameter.ChimeBaseFreq * (1 + t)
}
