package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector for scene-space calculations
type Vec3F struct {
	X, Y, Z float64
}

// UnitX/Y/Z are the basis axes
var (
	UnitX = Vec3F{1, 0, 0}
	UnitY = Vec3F{0, 1, 0}
	UnitZ = Vec3F{0, 0, 1}
)

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FNormalize returns the unit vector, zero vector stays zero
func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLerp interpolates component-wise, t is not clamped
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FRotateY rotates v about the Y axis by angle radians
func V3FRotateY(v Vec3F, angle float64) Vec3F {
	s, c := math.Sincos(angle)
	return Vec3F{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// V3FFromSpherical converts radius, azimuth theta and polar phi to Cartesian (Y up)
func V3FFromSpherical(r, theta, phi float64) Vec3F {
	sinPhi := math.Sin(phi)
	return Vec3F{
		X: r * sinPhi * math.Cos(theta),
		Y: r * math.Cos(phi),
		Z: r * sinPhi * math.Sin(theta),
	}
}
