package parameter

// Star Field
const (
	// FieldMaxDensity is the upper clamp for star count
	FieldMaxDensity = 20000

	// FieldDefaultDensity is the star count at startup
	FieldDefaultDensity = 2000

	// FieldDensityStep is the density change per [ or ] key press
	FieldDensityStep = 500

	// FieldRadiusMin/Max bound the distance of every star from the origin
	FieldRadiusMin = 40.0
	FieldRadiusMax = 120.0

	// FieldYScale flattens the shell vertically, 1 keeps it spherical
	FieldYScale = 1.0

	// FieldRotationRate is the shell rotation in radians per second at speed 1
	FieldRotationRate = 0.02

	// FieldTwinkleRate is the angular frequency of per-star brightness oscillation
	FieldTwinkleRate = 2.0
)
