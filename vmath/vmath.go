// Package vmath holds the float64 vector, quaternion and easing helpers used by scene code
package vmath

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates a to b, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutCubic maps t in [0,1] to 1-(1-t)^3, t is clamped
func EaseOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Linear is the identity easing
func Linear(t float64) float64 {
	return Clamp(t, 0, 1)
}
