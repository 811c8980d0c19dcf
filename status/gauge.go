package status

import (
	"math"
	"sync/atomic"
)

// Gauge is a float64 metric stored as bits. The zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(val float64) {
	g.bits.Store(math.Float64bits(val))
}

func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Smooth folds sample into an exponential moving average with weight alpha.
// The first sample seeds the average. Single writer only
func (g *Gauge) Smooth(sample, alpha float64) float64 {
	cur := g.Get()
	if cur == 0 {
		cur = sample
	} else {
		cur += (sample - cur) * alpha
	}
	g.Set(cur)
	return cur
}
