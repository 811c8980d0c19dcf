package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMap_StablePointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(MeteorLive)
	b := r.Ints.Get(MeteorLive)
	assert.Same(t, a, b)

	a.Store(3)
	assert.Equal(t, int64(3), b.Load())
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	m := NewMetricMap[Gauge]()
	var wg sync.WaitGroup
	ptrs := make([]*Gauge, 32)
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("k")
		}(i)
	}
	wg.Wait()
	for _, p := range ptrs {
		assert.Same(t, ptrs[0], p)
	}
	assert.Equal(t, []string{"k"}, m.Keys())
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(MeteorSpawned).Store(12)
	r.Floats.Get(FrameFPS).Set(59.5)

	snap := r.Snapshot()
	assert.Equal(t, 12.0, snap[MeteorSpawned])
	assert.Equal(t, 59.5, snap[FrameFPS])
	assert.Len(t, snap, 2)
}

func TestGauge_Smooth(t *testing.T) {
	var g Gauge
	assert.Equal(t, 60.0, g.Smooth(60, 0.5))
	assert.Equal(t, 45.0, g.Smooth(30, 0.5))
	assert.Equal(t, 45.0, g.Get())
}
