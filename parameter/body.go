package parameter

// Planet
const (
	PlanetRadius = 3.2
	// PlanetRotationRate is radians per second at speed 1
	PlanetRotationRate = 0.15
	// PlanetBobRate/Amplitude drive the vertical sin(elapsed*rate)*amplitude bob
	PlanetBobRate      = 0.8
	PlanetBobAmplitude = 0.35
	PlanetTextureBands = 48
)

// Moon
const (
	MoonRadius = 0.9
	// MoonRotationRate is radians per second at speed 1
	MoonRotationRate = 0.4
	// MoonOrbitRate scales elapsed time into orbital angle
	MoonOrbitRate = 0.35
	// MoonOrbitRadius is R in (cos t*R, sin(0.6t)*h, sin t*R)
	MoonOrbitRadius = 7.0
	// MoonOrbitHeight is h in (cos t*R, sin(0.6t)*h, sin t*R)
	MoonOrbitHeight = 1.5
	MoonTextureBands = 24
)
