package body

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/starfall/device"
	"github.com/lixenwraith/starfall/vmath"
)

func TestOrbitPosition_ClosedForm(t *testing.T) {
	o := Orbit{Rate: 0.5, Radius: 7, Height: 1.5}
	for _, elapsed := range []float64{0, 0.3, 1, 12.5, 100} {
		got := OrbitPosition(elapsed, o)
		tt := elapsed * o.Rate
		assert.InDelta(t, math.Cos(tt)*7, got.X, 1e-12)
		assert.InDelta(t, math.Sin(0.6*tt)*1.5, got.Y, 1e-12)
		assert.InDelta(t, math.Sin(tt)*7, got.Z, 1e-12)
	}
}

func TestMoon_ReplayIsDeterministic(t *testing.T) {
	// Same elapsed time gives the same position regardless of frame history
	a, b := NewMoon(), NewMoon()
	for i := 1; i <= 100; i++ {
		a.Advance(0.016, float64(i)*0.016, 1)
	}
	b.Advance(0.5, 1.6, 3)
	assert.InDelta(t, a.Phase, b.Phase, 1e-9)
	assert.InDelta(t, 1.6*b.Orbit.Rate, b.Phase, 1e-12)
	assert.InDelta(t, a.Position.X, b.Position.X, 1e-9)
	assert.InDelta(t, a.Position.Y, b.Position.Y, 1e-9)
	assert.InDelta(t, a.Position.Z, b.Position.Z, 1e-9)
}

func TestPlanet_BobAndSpin(t *testing.T) {
	p := NewPlanet()
	p.Advance(2, math.Pi/(2*p.Bob.Rate), 1)

	assert.InDelta(t, p.Bob.Amplitude, p.Position.Y, 1e-12)
	assert.InDelta(t, 2*p.RotationRate, p.Rotation, 1e-12)
}

func TestBody_SpinScalesWithSpeed(t *testing.T) {
	slow, fast := NewPlanet(), NewPlanet()
	slow.Advance(1, 0, 1)
	fast.Advance(1, 0, 2)
	assert.InDelta(t, 2*slow.Rotation, fast.Rotation, 1e-12)

	stopped := NewPlanet()
	stopped.Advance(1, 0, -3)
	assert.Equal(t, 0.0, stopped.Rotation, "negative speed is treated as zero")
}

func TestBobPosition_KeepsBase(t *testing.T) {
	base := vmath.Vec3F{X: 1, Y: 2, Z: 3}
	got := BobPosition(0, base, Bob{Rate: 1, Amplitude: 5})
	assert.Equal(t, base, got)
}

func TestTextures_AllocateAndRelease(t *testing.T) {
	dev := device.New(nil)
	rng := rand.New(rand.NewPCG(3, 4))
	p := NewPlanet()

	require.NoError(t, AttachTexture(dev, rng, &p.Body, 8, PlanetPalette))
	tex, ok := dev.Texture(p.Texture)
	require.True(t, ok)
	assert.Equal(t, 16, tex.Width)
	assert.Equal(t, 8, tex.Height)
	for _, c := range tex.Texels {
		assert.True(t, c.IsValid())
	}

	require.NoError(t, AttachTexture(dev, rng, &p.Body, 4, PlanetPalette))
	assert.Equal(t, 1, dev.Live(), "replaced texture is released")

	require.NoError(t, ReleaseTexture(dev, &p.Body))
	require.NoError(t, ReleaseTexture(dev, &p.Body))
	assert.Equal(t, 0, dev.Live())
}
