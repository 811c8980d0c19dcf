// Package meteor spawns, advances, fades and retires meteors
package meteor

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/starfall/device"
	"github.com/lixenwraith/starfall/vmath"
)

// Material uniform names
const (
	UniformOpacity     = "opacity"
	UniformHeadRadius  = "headRadius"
	UniformTrailLength = "trailLength"
	UniformColor       = "color"
)

// Meteor is one transient streak
// Velocity is fixed at spawn; the meteor is active while it is held by a Manager
type Meteor struct {
	ID          uint64
	Position    vmath.Vec3F
	Velocity    vmath.Vec3F
	Birth       float64
	Lifetime    float64
	HeadRadius  float64
	TrailLength float64
	Opacity     float64
	Orientation vmath.Quat
	Color       colorful.Color
	Material    device.Handle
}

// Age returns seconds since birth at elapsed
func (m *Meteor) Age(elapsed float64) float64 {
	return elapsed - m.Birth
}

// Expired reports age > lifetime
func (m *Meteor) Expired(elapsed float64) bool {
	return m.Age(elapsed) > m.Lifetime
}

// Direction returns the unit flight direction
func (m *Meteor) Direction() vmath.Vec3F {
	return vmath.V3FNormalize(m.Velocity)
}

// TrailAxis returns the world-space trail vector from the head backwards
// The trail geometry runs along local -Y, Orientation maps local +Y onto the flight direction
func (m *Meteor) TrailAxis() vmath.Vec3F {
	return m.Orientation.Rotate(vmath.Vec3F{Y: -m.TrailLength})
}

// Opacity is 1 - min(1, age/lifetime)
// Non-increasing in age, exactly 0 at age == lifetime, 1 for non-positive age
func Opacity(age, lifetime float64) float64 {
	if lifetime <= 0 {
		return 0
	}
	if age <= 0 {
		return 1
	}
	return 1 - math.Min(1, age/lifetime)
}

// Orient returns the minimal rotation mapping +Y onto the velocity direction
func Orient(velocity vmath.Vec3F) vmath.Quat {
	dir := vmath.V3FNormalize(velocity)
	if dir == (vmath.Vec3F{}) {
		return vmath.QuatIdentity
	}
	return vmath.QuatFromUnitVectors(vmath.UnitY, dir)
}
