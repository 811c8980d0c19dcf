package parameter

// Lighting, in view space with +Z toward the viewer
const (
	LightX = -0.5
	LightY = 0.7
	LightZ = 0.6

	// LightAmbient is the floor brightness of the unlit hemisphere
	LightAmbient = 0.12

	// SpecularPower sharpens the Blinn-Phong highlight
	SpecularPower = 24.0

	// SpecularStrength scales the highlight added on top of the texture
	SpecularStrength = 0.45

	// RimStrength tints the sphere edge toward the atmosphere color
	RimStrength = 0.35
)

// Stars
const (
	// StarBaseBrightness is the mid level around which stars twinkle
	StarBaseBrightness = 0.6

	// StarTwinkleAmplitude is the brightness swing of a twinkling star
	StarTwinkleAmplitude = 0.35

	// StarNearDepth is the view depth at which star brightness peaks
	StarNearDepth = 40.0
)

// Meteors
const (
	// MeteorTrailSamples is the number of points drawn along a trail
	MeteorTrailSamples = 24

	// MeteorHeadMinRadius keeps a distant head at least one pixel wide
	MeteorHeadMinRadius = 0.75
)
