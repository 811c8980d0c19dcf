package device

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Buffer is a packed float32 attribute buffer
type Buffer struct {
	Data   []float32
	Stride int
}

// Len returns the element count (len(Data)/Stride)
func (b *Buffer) Len() int {
	if b.Stride <= 0 {
		return 0
	}
	return len(b.Data) / b.Stride
}

// Material is a shader parameter set with named scalar and vector uniforms
type Material struct {
	Floats map[string]float64
	Colors map[string]colorful.Color
}

// Float returns the named uniform or def when unset
func (m *Material) Float(name string, def float64) float64 {
	if v, ok := m.Floats[name]; ok {
		return v
	}
	return def
}

// SetFloat writes a scalar uniform
func (m *Material) SetFloat(name string, v float64) {
	m.Floats[name] = v
}

// Texture is a W x H grid of texels, row-major
type Texture struct {
	Width, Height int
	Texels        []colorful.Color
}

// At samples with wrap-around addressing
func (t *Texture) At(x, y int) colorful.Color {
	if t.Width == 0 || t.Height == 0 {
		return colorful.Color{}
	}
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	y %= t.Height
	if y < 0 {
		y += t.Height
	}
	return t.Texels[y*t.Width+x]
}

// Sample maps u, v in [0,1) to the nearest texel
func (t *Texture) Sample(u, v float64) colorful.Color {
	return t.At(int(u*float64(t.Width)), int(v*float64(t.Height)))
}

// CreateBuffer allocates a buffer holding a copy of data
func (d *Device) CreateBuffer(data []float32, stride int) Handle {
	buf := &Buffer{Data: append([]float32(nil), data...), Stride: stride}
	return d.alloc(KindBuffer, buf)
}

// Buffer resolves a live buffer handle
func (d *Device) Buffer(h Handle) (*Buffer, bool) {
	return lookup[*Buffer](d, h, KindBuffer)
}

// WriteBuffer replaces the contents of a live buffer, reports false for released handles
func (d *Device) WriteBuffer(h Handle, data []float32) bool {
	buf, ok := d.Buffer(h)
	if !ok {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	buf.Data = append(buf.Data[:0], data...)
	return true
}

// CreateMaterial allocates a material with initial uniforms
func (d *Device) CreateMaterial(floats map[string]float64, colors map[string]colorful.Color) Handle {
	m := &Material{
		Floats: make(map[string]float64, len(floats)),
		Colors: make(map[string]colorful.Color, len(colors)),
	}
	for k, v := range floats {
		m.Floats[k] = v
	}
	for k, v := range colors {
		m.Colors[k] = v
	}
	return d.alloc(KindMaterial, m)
}

// Material resolves a live material handle
func (d *Device) Material(h Handle) (*Material, bool) {
	return lookup[*Material](d, h, KindMaterial)
}

// CreateTexture allocates a texture, texels are copied
func (d *Device) CreateTexture(width, height int, texels []colorful.Color) Handle {
	tex := &Texture{Width: width, Height: height, Texels: append([]colorful.Color(nil), texels...)}
	return d.alloc(KindTexture, tex)
}

// Texture resolves a live texture handle
func (d *Device) Texture(h Handle) (*Texture, bool) {
	return lookup[*Texture](d, h, KindTexture)
}
