package field

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/device"
)

// Host owns the installed field and its device buffer
type Host struct {
	dev *device.Device
	rng *rand.Rand
	cfg Config
	log *zap.Logger

	field  *PointField
	buffer device.Handle
	angle  float64
}

// NewHost generates the initial field of count points
func NewHost(dev *device.Device, rng *rand.Rand, cfg Config, count int, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Host{dev: dev, rng: rng, cfg: cfg, log: log}
	h.install(Generate(rng, count, cfg))
	return h
}

func (h *Host) install(f *PointField) {
	h.field = f
	h.buffer = h.dev.CreateBuffer(f.Positions, 3)
}

// Field returns the installed field
func (h *Host) Field() *PointField {
	return h.field
}

// Buffer returns the device handle backing the installed field
func (h *Host) Buffer() device.Handle {
	return h.buffer
}

// Density returns the installed point count
func (h *Host) Density() int {
	if h.field == nil {
		return 0
	}
	return h.field.Len()
}

// Angle returns accumulated rotation in radians
func (h *Host) Angle() float64 {
	return h.angle
}

// SetDensity regenerates the field with count points
// The new buffer is installed before the old one is released so no frame sees an empty field
func (h *Host) SetDensity(count int) error {
	count = ClampDensity(count)
	if h.field != nil && count == h.field.Len() {
		return nil
	}

	old := h.buffer
	h.install(Generate(h.rng, count, h.cfg))
	h.log.Debug("field regenerated", zap.Int("points", count))

	if old == 0 {
		return nil
	}
	if err := h.dev.Release(old); err != nil {
		return fmt.Errorf("release previous field buffer: %w", err)
	}
	return nil
}

// Rotate advances the field rotation and syncs the device buffer
func (h *Host) Rotate(delta float64) {
	if h.field == nil || delta == 0 {
		return
	}
	h.angle += delta
	h.field.Rotate(float32(delta))
	h.dev.WriteBuffer(h.buffer, h.field.Positions)
}

// Release frees the installed buffer, safe to call more than once
func (h *Host) Release() error {
	if h.buffer == 0 {
		return nil
	}
	buf := h.buffer
	h.buffer = 0
	h.field = nil
	if err := h.dev.Release(buf); err != nil {
		return fmt.Errorf("release field buffer: %w", err)
	}
	return nil
}
