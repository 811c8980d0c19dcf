// Package field generates and owns the background star field
package field

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/starfall/parameter"
)

// Config bounds the generated shell
type Config struct {
	RadiusMin float32
	RadiusMax float32
	// YScale flattens the shell into an oval, 1 keeps it spherical
	YScale float32
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		RadiusMin: parameter.FieldRadiusMin,
		RadiusMax: parameter.FieldRadiusMax,
		YScale:    parameter.FieldYScale,
	}
}

// PointField is an ordered set of star points
// Positions are packed x,y,z triplets as uploaded to the device
type PointField struct {
	Positions []float32
	Seeds     []float32
}

// Len returns the point count
func (f *PointField) Len() int {
	return len(f.Seeds)
}

// At returns the position of point i
func (f *PointField) At(i int) (x, y, z float32) {
	j := i * 3
	return f.Positions[j], f.Positions[j+1], f.Positions[j+2]
}

// ClampDensity restricts count to [0, FieldMaxDensity]
func ClampDensity(count int) int {
	if count < 0 {
		return 0
	}
	if count > parameter.FieldMaxDensity {
		return parameter.FieldMaxDensity
	}
	return count
}

// Generate samples count points uniformly on the sphere with radius in [RadiusMin, RadiusMax)
// count is clamped silently
func Generate(rng *rand.Rand, count int, cfg Config) *PointField {
	count = ClampDensity(count)
	f := &PointField{
		Positions: make([]float32, count*3),
		Seeds:     make([]float32, count),
	}

	yScale := cfg.YScale
	if yScale <= 0 {
		yScale = 1
	}

	for i := 0; i < count; i++ {
		theta := rng.Float32() * 2 * math32.Pi
		phi := math32.Acos(2*rng.Float32() - 1)
		r := cfg.RadiusMin + rng.Float32()*(cfg.RadiusMax-cfg.RadiusMin)

		sinPhi := math32.Sin(phi)
		j := i * 3
		f.Positions[j] = r * sinPhi * math32.Cos(theta)
		f.Positions[j+1] = r * math32.Cos(phi) * yScale
		f.Positions[j+2] = r * sinPhi * math32.Sin(theta)
		f.Seeds[i] = rng.Float32()
	}
	return f
}

// Rotate turns every point about the Y axis by angle radians, in place
func (f *PointField) Rotate(angle float32) {
	if angle == 0 {
		return
	}
	s, c := math32.Sincos(angle)
	for j := 0; j+2 < len(f.Positions); j += 3 {
		x, z := f.Positions[j], f.Positions[j+2]
		f.Positions[j] = x*c + z*s
		f.Positions[j+2] = -x*s + z*c
	}
}
