package parameter

// Meteor Spawning
const (
	// MeteorSpawnDelay is the base interval between spawns in seconds
	MeteorSpawnDelay = 0.9

	// MeteorSpawnDelayMin is the lower clamp for a user-set spawn delay
	MeteorSpawnDelayMin = 0.05

	// MeteorSpawnJitter redraws each delay as base * U(1-jitter, 1+jitter)
	MeteorSpawnJitter = 0.2

	// MeteorSpawnEpsilon absorbs float accumulation when comparing elapsed against the delay
	MeteorSpawnEpsilon = 1e-9

	// MeteorRingMin/Max bound the spawn distance from the origin on the XZ ring
	MeteorRingMin = 25.0
	MeteorRingMax = 40.0

	// MeteorHeightMin/Max bound spawn height
	MeteorHeightMin = -6.0
	MeteorHeightMax = 10.0

	// MeteorTargetRadius is the radius around the origin targets are drawn from
	MeteorTargetRadius = 3.0
)

// Meteor Flight
const (
	MeteorSpeedMin = 8.0
	MeteorSpeedMax = 16.0

	// MeteorLifetimeMin/Max in seconds
	MeteorLifetimeMin = 1.5
	MeteorLifetimeMax = 3.0

	MeteorHeadRadiusMin = 0.15
	MeteorHeadRadiusMax = 0.35

	// MeteorTrailFactor derives trail length from speed
	MeteorTrailFactor = 0.35
)
