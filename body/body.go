// Package body animates the planet and its moon as closed-form functions of elapsed time
package body

import (
	"math"

	"github.com/lixenwraith/starfall/device"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/vmath"
)

// Body is a celestial sphere
// Rotation integrates with dt, Position is derived from elapsed time only
type Body struct {
	Phase        float64 // orbital or bob angle for the last elapsed time
	Radius       float64
	RotationRate float64 // radians per second at speed 1
	Rotation     float64
	BasePosition vmath.Vec3F
	Position     vmath.Vec3F
	Texture      device.Handle
}

// Bob is the vertical sin(elapsed*Rate)*Amplitude motion of a fixed body
type Bob struct {
	Rate      float64
	Amplitude float64
}

// Orbit is the (cos t*R, sin(0.6t)*h, sin t*R) path around Center, t = elapsed*Rate
type Orbit struct {
	Center vmath.Vec3F
	Rate   float64
	Radius float64
	Height float64
}

// OrbitPosition returns the orbit point at elapsed seconds
func OrbitPosition(elapsed float64, o Orbit) vmath.Vec3F {
	t := elapsed * o.Rate
	return vmath.Vec3F{
		X: o.Center.X + math.Cos(t)*o.Radius,
		Y: o.Center.Y + math.Sin(0.6*t)*o.Height,
		Z: o.Center.Z + math.Sin(t)*o.Radius,
	}
}

// BobPosition returns base displaced vertically at elapsed seconds
func BobPosition(elapsed float64, base vmath.Vec3F, b Bob) vmath.Vec3F {
	base.Y += math.Sin(elapsed*b.Rate) * b.Amplitude
	return base
}

func (b *Body) spin(dt, speed float64) {
	if speed < 0 {
		speed = 0
	}
	b.Rotation = math.Mod(b.Rotation+dt*b.RotationRate*speed, 2*math.Pi)
}

// Planet is the central bobbing body
type Planet struct {
	Body
	Bob Bob
}

// NewPlanet creates the planet at the origin
func NewPlanet() *Planet {
	p := &Planet{
		Body: Body{
			Radius:       parameter.PlanetRadius,
			RotationRate: parameter.PlanetRotationRate,
		},
		Bob: Bob{Rate: parameter.PlanetBobRate, Amplitude: parameter.PlanetBobAmplitude},
	}
	p.Position = p.BasePosition
	return p
}

// Advance spins by dt and places the bob for elapsed
func (p *Planet) Advance(dt, elapsed, speed float64) {
	p.spin(dt, speed)
	p.Phase = elapsed * p.Bob.Rate
	p.Position = BobPosition(elapsed, p.BasePosition, p.Bob)
}

// Moon is the orbiting secondary body
type Moon struct {
	Body
	Orbit Orbit
}

// NewMoon creates the moon on its orbit around the origin
func NewMoon() *Moon {
	m := &Moon{
		Body: Body{
			Radius:       parameter.MoonRadius,
			RotationRate: parameter.MoonRotationRate,
		},
		Orbit: Orbit{
			Rate:   parameter.MoonOrbitRate,
			Radius: parameter.MoonOrbitRadius,
			Height: parameter.MoonOrbitHeight,
		},
	}
	m.Position = OrbitPosition(0, m.Orbit)
	m.BasePosition = m.Position
	return m
}

// Advance spins by dt and places the moon on its orbit for elapsed
func (m *Moon) Advance(dt, elapsed, speed float64) {
	m.spin(dt, speed)
	m.Phase = elapsed * m.Orbit.Rate
	m.Position = OrbitPosition(elapsed, m.Orbit)
}
