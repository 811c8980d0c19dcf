package render

import (
	"math"
)

// Mode selects how canvas pixels map onto terminal cells
type Mode uint8

const (
	// ModeGlyph maps one pixel to one cell, stars drawn as glyphs
	ModeGlyph Mode = iota
	// ModeHalfBlock maps two stacked pixels to one cell via the upper half block
	ModeHalfBlock
)

// ModeForPixelRatio picks half-block rendering for ratios of 1.5 and above
func ModeForPixelRatio(r float64) Mode {
	if r >= 1.5 {
		return ModeHalfBlock
	}
	return ModeGlyph
}

// SubRows returns pixel rows per terminal row
func (m Mode) SubRows() int {
	if m == ModeHalfBlock {
		return 2
	}
	return 1
}

func (m Mode) String() string {
	if m == ModeHalfBlock {
		return "halfblock"
	}
	return "glyph"
}

type pixel struct {
	color RGB
	depth float64
	glyph rune
}

type textCell struct {
	r      rune
	fg, bg RGB
	set    bool
}

// RenderBuffer is a depth-tested pixel canvas with a text overlay in cell space
type RenderBuffer struct {
	mode   Mode
	cols   int
	rows   int
	width  int
	height int
	pixels []pixel
	text   []textCell
}

// NewRenderBuffer creates a buffer covering cols x rows terminal cells
func NewRenderBuffer(cols, rows int, mode Mode) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(cols, rows, mode)
	return b
}

// Resize adjusts dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(cols, rows int, mode Mode) {
	cols, rows = max(0, cols), max(0, rows)
	b.mode = mode
	b.cols, b.rows = cols, rows
	b.width, b.height = cols, rows*mode.SubRows()

	size := b.width * b.height
	if cap(b.pixels) < size {
		b.pixels = make([]pixel, size)
	} else {
		b.pixels = b.pixels[:size]
	}
	if cap(b.text) < cols*rows {
		b.text = make([]textCell, cols*rows)
	} else {
		b.text = b.text[:cols*rows]
	}
	b.Clear()
}

// Clear resets all pixels to the background at infinite depth and drops the text overlay
func (b *RenderBuffer) Clear() {
	if len(b.pixels) > 0 {
		b.pixels[0] = pixel{color: RgbBackground, depth: math.Inf(1)}
		for filled := 1; filled < len(b.pixels); filled *= 2 {
			copy(b.pixels[filled:], b.pixels[:filled])
		}
	}
	clear(b.text)
}

// Mode returns the cell mapping mode
func (b *RenderBuffer) Mode() Mode {
	return b.mode
}

// Size returns canvas size in pixels
func (b *RenderBuffer) Size() (width, height int) {
	return b.width, b.height
}

// Cells returns the covered terminal area
func (b *RenderBuffer) Cells() (cols, rows int) {
	return b.cols, b.rows
}

func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Plot composites one pixel when depth passes the depth test
// A nonzero glyph is kept for glyph-mode output, replace mode clears it
func (b *RenderBuffer) Plot(x, y int, c RGB, depth float64, mode BlendMode, alpha float64, glyph rune) bool {
	if !b.inBounds(x, y) {
		return false
	}
	dst := &b.pixels[y*b.width+x]
	if depth > dst.depth {
		return false
	}
	dst.color = mode.apply(dst.color, c, alpha)
	if mode.writesDepth() {
		dst.depth = depth
		dst.glyph = glyph
	} else if glyph != 0 {
		dst.glyph = glyph
	}
	return true
}

// At returns the pixel color and depth at x, y
func (b *RenderBuffer) At(x, y int) (RGB, float64) {
	if !b.inBounds(x, y) {
		return RGBBlack, math.Inf(1)
	}
	p := b.pixels[y*b.width+x]
	return p.color, p.depth
}

// Glyph returns the glyph recorded at pixel x, y
func (b *RenderBuffer) Glyph(x, y int) rune {
	if !b.inBounds(x, y) {
		return 0
	}
	return b.pixels[y*b.width+x].glyph
}

// SetText places r in the cell overlay, hiding the pixels under it
func (b *RenderBuffer) SetText(col, row int, r rune, fg, bg RGB) {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return
	}
	b.text[row*b.cols+col] = textCell{r: r, fg: fg, bg: bg, set: true}
}

// WriteString writes s from col, row and returns the column after the last rune
func (b *RenderBuffer) WriteString(col, row int, s string, fg, bg RGB) int {
	for _, r := range s {
		b.SetText(col, row, r, fg, bg)
		col++
	}
	return col
}

// FillRow paints a full text row with bg
func (b *RenderBuffer) FillRow(row int, bg RGB) {
	for col := range b.cols {
		b.SetText(col, row, ' ', bg, bg)
	}
}
