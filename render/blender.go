package render

// BlendMode selects how a plotted pixel combines with the canvas
type BlendMode uint8

const (
	// BlendReplace writes color and depth after the depth test
	BlendReplace BlendMode = iota
	// BlendAlpha mixes by alpha, depth is tested but not written
	BlendAlpha
	// BlendAdd saturates additively, used for glowing meteors
	BlendAdd
	// BlendMax keeps the brighter channel, used for overlapping stars
	BlendMax
	// BlendScreen lightens softly, used for sphere halos
	BlendScreen
)

func (m BlendMode) writesDepth() bool {
	return m == BlendReplace
}

func (m BlendMode) apply(dst, src RGB, alpha float64) RGB {
	switch m {
	case BlendReplace:
		return src
	case BlendAlpha:
		return Blend(dst, src, alpha)
	case BlendAdd:
		return Add(dst, src, alpha)
	case BlendMax:
		return Max(dst, src, alpha)
	case BlendScreen:
		return Screen(dst, src, alpha)
	}
	return dst
}
