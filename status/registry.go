// Package status holds scene counters and gauges read by the HUD and the exit log
package status

import "sync/atomic"

// Metric keys written by the frame loop
const (
	FrameCount     = "frame.count"
	FrameFPS       = "frame.fps"
	ClockEffective = "clock.effective"
	MeteorLive     = "meteor.live"
	MeteorSpawned  = "meteor.spawned"
	MeteorExpired  = "meteor.expired"
	FieldPoints    = "field.points"
	DeviceLive     = "device.live"
)

// Registry is the central metrics facade
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[Gauge]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[Gauge](),
	}
}

// Snapshot copies every metric into a plain map, ints widened to float64
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64)
	for _, k := range r.Ints.Keys() {
		out[k] = float64(r.Ints.Get(k).Load())
	}
	for _, k := range r.Floats.Keys() {
		out[k] = r.Floats.Get(k).Get()
	}
	return out
}
