package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a sine with an exponential decay envelope
type tone struct {
	freq     float64
	phase    float64
	decay    float64
	env      float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewTone creates a decaying sine cue that ends after duration
func NewTone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	samples := max(1, rate.N(duration))
	return &tone{
		freq:     freq,
		env:      1,
		decay:    math.Pow(0.001, 1/float64(samples)), // -60 dB at the end
		duration: samples,
		rate:     rate,
	}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := math.Sin(2*math.Pi*o.phase) * o.env
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.env *= o.decay
		o.position++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }
