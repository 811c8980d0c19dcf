// Package camera adapts the perspective camera to viewport changes and the focus zoom
package camera

import (
	"math"

	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/vmath"
)

// Viewport is the render surface geometry in pixels
type Viewport struct {
	Width, Height int
	PixelRatio    float64
}

// Camera is a perspective camera on the +Z axis looking at the origin
type Camera struct {
	FOV      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Distance float64

	PixelRatio    float64
	Width, Height int

	projection vmath.Mat4
}

// New creates a camera with parameter defaults and a 1:1 aspect
func New() *Camera {
	c := &Camera{
		FOV:        parameter.CameraFOV,
		Aspect:     1,
		Near:       parameter.CameraNear,
		Far:        parameter.CameraFar,
		Distance:   parameter.CameraDistance,
		PixelRatio: 1,
		Width:      1,
		Height:     1,
	}
	c.UpdateProjection()
	return c
}

// ClampPixelRatio restricts a device pixel ratio to [1, CameraMaxPixelRatio], invalid input yields 1
func ClampPixelRatio(r float64) float64 {
	if math.IsNaN(r) || r < 1 {
		return 1
	}
	return math.Min(r, parameter.CameraMaxPixelRatio)
}

// Resize sets aspect = W/H, rebuilds the projection and reclamps the pixel ratio
// Degenerate sizes are raised to 1 pixel
func (c *Camera) Resize(v Viewport) {
	c.Width = max(1, v.Width)
	c.Height = max(1, v.Height)
	c.PixelRatio = ClampPixelRatio(v.PixelRatio)
	c.Aspect = float64(c.Width) / float64(c.Height)
	c.UpdateProjection()
}

// UpdateProjection rebuilds the projection matrix from FOV, Aspect, Near and Far
func (c *Camera) UpdateProjection() {
	c.projection = vmath.Mat4Perspective(c.FOV*math.Pi/180, c.Aspect, c.Near, c.Far)
}

// Projection returns the current projection matrix
func (c *Camera) Projection() vmath.Mat4 {
	return c.projection
}

// Position returns the camera eye position
func (c *Camera) Position() vmath.Vec3F {
	return vmath.Vec3F{Z: c.Distance}
}

// Project maps world point p to pixel coordinates and view depth
// ok is false outside the near and far planes; off-screen x, y are returned unclipped
func (c *Camera) Project(p vmath.Vec3F) (x, y, depth float64, ok bool) {
	view := vmath.V3FSub(p, c.Position())
	clip, w := c.projection.MulPoint(view)
	if w < c.Near || w > c.Far {
		return 0, 0, w, false
	}
	nx, ny := clip.X/w, clip.Y/w
	x = (nx + 1) * 0.5 * float64(c.Width)
	y = (1 - ny) * 0.5 * float64(c.Height)
	return x, y, w, true
}

// ProjectRadius returns the pixel radius of a world-space radius at view depth
func (c *Camera) ProjectRadius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	// projection[5] is the vertical focal factor 1/tan(fov/2)
	return r * c.projection[5] / depth * float64(c.Height) * 0.5
}
