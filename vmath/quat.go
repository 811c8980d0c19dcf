package vmath

import "math"

// Quat is a unit rotation quaternion (X, Y, Z vector part, W scalar)
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-op rotation
var QuatIdentity = Quat{W: 1}

// QuatFromUnitVectors returns the minimal rotation taking unit vector from onto unit vector to
// Antiparallel inputs rotate pi about any axis orthogonal to from
func QuatFromUnitVectors(from, to Vec3F) Quat {
	r := V3FDot(from, to) + 1

	var q Quat
	if r < 1e-9 {
		// from and to point in opposite directions
		if math.Abs(from.X) > math.Abs(from.Z) {
			q = Quat{X: -from.Y, Y: from.X, Z: 0, W: 0}
		} else {
			q = Quat{X: 0, Y: -from.Z, Z: from.Y, W: 0}
		}
	} else {
		c := V3FCross(from, to)
		q = Quat{X: c.X, Y: c.Y, Z: c.Z, W: r}
	}
	return q.Normalize()
}

// Normalize returns q scaled to unit length, zero stays identity
func (q Quat) Normalize() Quat {
	m := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if m == 0 {
		return QuatIdentity
	}
	inv := 1 / m
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Rotate applies q to v
func (q Quat) Rotate(v Vec3F) Vec3F {
	// v' = v + 2w(u x v) + 2(u x (u x v)), u = vector part
	u := Vec3F{q.X, q.Y, q.Z}
	t := V3FScale(V3FCross(u, v), 2)
	return V3FAdd(V3FAdd(v, V3FScale(t, q.W)), V3FCross(u, t))
}
