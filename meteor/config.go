package meteor

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/starfall/parameter"
)

// Config holds spawn cadence and per-spawn parameter bands
type Config struct {
	SpawnDelay float64 // base seconds between spawns
	Jitter     float64 // delay drawn from base * U(1-Jitter, 1+Jitter)

	RingMin, RingMax     float64
	HeightMin, HeightMax float64
	TargetRadius         float64

	SpeedMin, SpeedMax           float64
	LifetimeMin, LifetimeMax     float64
	HeadRadiusMin, HeadRadiusMax float64
	TrailFactor                  float64

	Palette []colorful.Color
}

// DefaultPalette is blue-white through amber
var DefaultPalette = []colorful.Color{
	colorful.Hcl(240, 0.25, 0.92),
	colorful.Hcl(210, 0.40, 0.85),
	colorful.Hcl(90, 0.15, 0.97),
	colorful.Hcl(60, 0.45, 0.85),
	colorful.Hcl(40, 0.60, 0.75),
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		SpawnDelay:    parameter.MeteorSpawnDelay,
		Jitter:        parameter.MeteorSpawnJitter,
		RingMin:       parameter.MeteorRingMin,
		RingMax:       parameter.MeteorRingMax,
		HeightMin:     parameter.MeteorHeightMin,
		HeightMax:     parameter.MeteorHeightMax,
		TargetRadius:  parameter.MeteorTargetRadius,
		SpeedMin:      parameter.MeteorSpeedMin,
		SpeedMax:      parameter.MeteorSpeedMax,
		LifetimeMin:   parameter.MeteorLifetimeMin,
		LifetimeMax:   parameter.MeteorLifetimeMax,
		HeadRadiusMin: parameter.MeteorHeadRadiusMin,
		HeadRadiusMax: parameter.MeteorHeadRadiusMax,
		TrailFactor:   parameter.MeteorTrailFactor,
		Palette:       DefaultPalette,
	}
}
