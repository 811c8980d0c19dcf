package render

import (
	"github.com/lixenwraith/starfall/camera"
	"github.com/lixenwraith/starfall/vmath"
)

// Projector maps camera pixel space onto canvas pixels
// Glyph mode halves the vertical scale since the camera works in half-cell rows
type Projector struct {
	cam    *camera.Camera
	sx, sy float64
}

// NewProjector binds cam to a canvas of width x height pixels
func NewProjector(cam *camera.Camera, width, height int) Projector {
	return Projector{
		cam: cam,
		sx:  float64(width) / float64(max(1, cam.Width)),
		sy:  float64(height) / float64(max(1, cam.Height)),
	}
}

// Point projects a world position to canvas coordinates and view depth
func (p Projector) Point(v vmath.Vec3F) (x, y, depth float64, ok bool) {
	cx, cy, depth, ok := p.cam.Project(v)
	if !ok {
		return 0, 0, depth, false
	}
	return cx * p.sx, cy * p.sy, depth, true
}

// Radius returns the horizontal and vertical canvas radii of a world radius at depth
func (p Projector) Radius(r, depth float64) (rx, ry float64) {
	pr := p.cam.ProjectRadius(r, depth)
	return pr * p.sx, pr * p.sy
}
