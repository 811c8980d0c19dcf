package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/body"
	"github.com/lixenwraith/starfall/device"
	"github.com/lixenwraith/starfall/field"
	"github.com/lixenwraith/starfall/meteor"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/sim"
	"github.com/lixenwraith/starfall/vmath"
)

var (
	lightDir vmath.Vec3F
	halfDir  vmath.Vec3F

	starCool = colorful.Hcl(240, 0.25, 0.85)
	starWarm = colorful.Hcl(60, 0.2, 0.92)
)

func init() {
	lightDir = vmath.V3FNormalize(vmath.Vec3F{X: parameter.LightX, Y: parameter.LightY, Z: parameter.LightZ})
	// Blinn-Phong half vector: normalize(light + view), view = (0,0,1)
	halfDir = vmath.V3FNormalize(vmath.V3FAdd(lightDir, vmath.UnitZ))
}

// Renderer composites the scene into a RenderBuffer
type Renderer struct {
	buf *RenderBuffer
	log *zap.Logger
}

// NewRenderer creates a renderer for a terminal of cols x rows cells
func NewRenderer(cols, rows int, mode Mode, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{buf: NewRenderBuffer(cols, rows, mode), log: log}
}

// Buffer returns the backing canvas
func (r *Renderer) Buffer() *RenderBuffer {
	return r.buf
}

// Resize adopts a new terminal size or cell mapping
func (r *Renderer) Resize(cols, rows int, mode Mode) {
	r.buf.Resize(cols, rows, mode)
}

// Flush writes the last frame to t
func (r *Renderer) Flush(t Target) {
	r.buf.FlushTo(t, 0)
}

// Draw composites one frame: stars, bodies, meteors, then the HUD
func (r *Renderer) Draw(s *sim.State, hud HUD) {
	r.buf.Clear()

	w, h := r.buf.Size()
	sceneRows := max(0, r.buf.rows-parameter.HUDRows)
	proj := NewProjector(s.Camera, w, min(h, sceneRows*r.buf.mode.SubRows()))
	elapsed := s.Elapsed()

	r.drawStars(proj, s.Field.Field(), elapsed)
	r.drawBody(proj, s.Device, &s.Planet.Body, body.PlanetPalette.High)
	r.drawBody(proj, s.Device, &s.Moon.Body, body.MoonPalette.High)
	for _, m := range s.Meteors.Meteors() {
		r.drawMeteor(proj, s.Device, m)
	}
	r.drawHUD(s, hud)
}

// StarBrightness is the twinkle level of a star with seed at elapsed
func StarBrightness(seed, elapsed float64) float64 {
	phase := elapsed*parameter.FieldTwinkleRate + seed*2*math.Pi
	return parameter.StarBaseBrightness + parameter.StarTwinkleAmplitude*math.Sin(phase)
}

func starGlyph(level float64) rune {
	switch {
	case level < 0.45:
		return '.'
	case level < 0.75:
		return '·'
	case level < 0.9:
		return '•'
	}
	return '*'
}

func (r *Renderer) drawStars(proj Projector, f *field.PointField, elapsed float64) {
	if f == nil {
		return
	}
	for i := range f.Len() {
		x, y, z := f.At(i)
		px, py, depth, ok := proj.Point(vmath.Vec3F{X: float64(x), Y: float64(y), Z: float64(z)})
		if !ok {
			continue
		}
		seed := float64(f.Seeds[i])
		level := StarBrightness(seed, elapsed) * vmath.Clamp(parameter.StarNearDepth/depth, 0.35, 1)
		c := FromColorful(starCool.BlendHcl(starWarm, seed).Clamped())
		r.buf.Plot(int(px), int(py), Scale(c, level), depth, BlendMax, 1, starGlyph(level))
	}
}

func (r *Renderer) drawBody(proj Projector, dev *device.Device, b *body.Body, atmosphere colorful.Color) {
	cx, cy, depth, ok := proj.Point(b.Position)
	if !ok {
		return
	}
	rx, ry := proj.Radius(b.Radius, depth)
	if rx < 0.5 || ry < 0.5 {
		return
	}
	tex, _ := dev.Texture(b.Texture)
	atmo := FromColorful(atmosphere)

	w, h := r.buf.Size()
	halo := 1.25
	minX := max(0, int(cx-rx*halo-1))
	maxX := min(w-1, int(cx+rx*halo+1))
	minY := max(0, int(cy-ry*halo-1))
	maxY := min(h-1, int(cy+ry*halo+1))

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			nx := (float64(px) + 0.5 - cx) / rx
			ny := (float64(py) + 0.5 - cy) / ry
			d2 := nx*nx + ny*ny
			if d2 > 1 {
				// Thin atmospheric halo
				dist := math.Sqrt(d2) - 1
				if lim := halo - 1; dist < lim {
					glow := (1 - dist/lim) * 0.35
					r.buf.Plot(px, py, atmo, depth, BlendScreen, glow*glow, 0)
				}
				continue
			}

			nz := math.Sqrt(1 - d2)
			n := vmath.Vec3F{X: nx, Y: -ny, Z: nz}
			base := RgbHUD
			if tex != nil {
				base = FromColorful(tex.Sample(SphereUV(n, b.Rotation)))
			}

			diffuse := math.Max(0, vmath.V3FDot(n, lightDir))
			light := parameter.LightAmbient + (1-parameter.LightAmbient)*diffuse
			spec := math.Pow(math.Max(0, vmath.V3FDot(n, halfDir)), parameter.SpecularPower) * parameter.SpecularStrength
			rim := (1 - nz) * (1 - nz) * parameter.RimStrength

			c := Scale(base, light)
			c = Add(c, atmo, rim)
			c = Add(c, RGB{255, 255, 255}, spec)
			r.buf.Plot(px, py, c, depth-nz*b.Radius, BlendReplace, 1, 0)
		}
	}
}

// SphereUV maps a view-space normal on a body rotated about Y to equirectangular texture coordinates
func SphereUV(n vmath.Vec3F, rotation float64) (u, v float64) {
	local := vmath.V3FRotateY(n, -rotation)
	u = 0.5 + math.Atan2(local.X, local.Z)/(2*math.Pi)
	v = math.Acos(vmath.Clamp(local.Y, -1, 1)) / math.Pi
	return u, v
}

func (r *Renderer) drawMeteor(proj Projector, dev *device.Device, m *meteor.Meteor) {
	opacity := m.Opacity
	headRadius := m.HeadRadius
	tint := m.Color
	if mat, ok := dev.Material(m.Material); ok {
		opacity = mat.Float(meteor.UniformOpacity, opacity)
		headRadius = mat.Float(meteor.UniformHeadRadius, headRadius)
		if c, ok := mat.Colors[meteor.UniformColor]; ok {
			tint = c
		}
	}
	if opacity <= 0 {
		return
	}
	base := FromColorful(tint)

	end := vmath.V3FAdd(m.Position, m.TrailAxis())
	samples := parameter.MeteorTrailSamples
	for k := 1; k <= samples; k++ {
		t := float64(k) / float64(samples)
		p := vmath.V3FLerp(m.Position, end, t)
		px, py, depth, ok := proj.Point(p)
		if !ok {
			continue
		}
		fade := (1 - t) * (1 - t)
		r.buf.Plot(int(px), int(py), base, depth, BlendAdd, opacity*fade, 0)
	}

	cx, cy, depth, ok := proj.Point(m.Position)
	if !ok {
		return
	}
	rx, ry := proj.Radius(headRadius, depth)
	rx = math.Max(rx, parameter.MeteorHeadMinRadius)
	ry = math.Max(ry, parameter.MeteorHeadMinRadius)
	hot := Blend(base, RGB{255, 255, 255}, 0.6)

	w, h := r.buf.Size()
	minX := int(math.Max(0, cx-rx))
	maxX := int(math.Min(float64(w-1), cx+rx))
	minY := int(math.Max(0, cy-ry))
	maxY := int(math.Min(float64(h-1), cy+ry))

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			nx := (float64(px) + 0.5 - cx) / rx
			ny := (float64(py) + 0.5 - cy) / ry
			d2 := nx*nx + ny*ny
			if d2 > 1 {
				continue
			}
			r.buf.Plot(px, py, hot, depth, BlendAdd, opacity*(1-d2*0.5), 0)
		}
	}
}
