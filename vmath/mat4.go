package vmath

import "math"

// Mat4 is a column-major 4x4 matrix, element (row r, col c) at [c*4+r]
type Mat4 [16]float64

// Mat4Perspective builds a right-handed projection mapping view-space depth [near, far] to NDC z [-1, 1]
// fovY is in radians
func Mat4Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// MulPoint transforms (v, 1) and returns clip-space xyz plus w
func (m Mat4) MulPoint(v Vec3F) (Vec3F, float64) {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	return Vec3F{x, y, z}, w
}
