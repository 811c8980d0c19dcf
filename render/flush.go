package render

import (
	"github.com/gdamore/tcell/v2"
)

// upperHalf paints the top pixel as foreground and the bottom one as background
const upperHalf = '▀'

// Target is the part of tcell.Screen the flush writes to
type Target interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

func tcellColor(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func cellStyle(fg, bg RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
}

// FlushTo writes every cell into t starting at the row offset
func (b *RenderBuffer) FlushTo(t Target, rowOffset int) {
	for row := range b.rows {
		for col := range b.cols {
			r, style := b.cell(col, row)
			t.SetContent(col, row+rowOffset, r, nil, style)
		}
	}
}

// cell resolves the rune and style of one terminal cell
func (b *RenderBuffer) cell(col, row int) (rune, tcell.Style) {
	if tc := b.text[row*b.cols+col]; tc.set {
		return tc.r, cellStyle(tc.fg, tc.bg)
	}

	if b.mode == ModeHalfBlock {
		top := b.pixels[(row*2)*b.width+col].color
		bottom := b.pixels[(row*2+1)*b.width+col].color
		if top == bottom {
			return ' ', cellStyle(top, bottom)
		}
		return upperHalf, cellStyle(top, bottom)
	}

	p := b.pixels[row*b.width+col]
	if p.glyph != 0 {
		return p.glyph, cellStyle(p.color, RgbBackground)
	}
	return ' ', cellStyle(p.color, p.color)
}
