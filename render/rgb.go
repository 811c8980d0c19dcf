package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color as sent to the terminal
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack      = RGB{0, 0, 0}
	RgbBackground = RGB{4, 6, 14}
	RgbHUD        = RGB{150, 170, 200}
	RgbHUDAccent  = RGB{255, 200, 90}
	RgbHUDError   = RGB{255, 90, 90}
	RgbHUDBg      = RGB{14, 18, 30}
)

// FromColorful converts a colorful color, clamping out-of-gamut values
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend is linear alpha blending, alpha outside (0, 1) short-circuits
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// add is addition with clamping
func add(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Add adds src scaled by alpha, saturating each channel
func Add(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	if alpha < 1.0 {
		src = Scale(src, alpha)
	}
	return RGB{
		R: add(c.R, src.R),
		G: add(c.G, src.G),
		B: add(c.B, src.B),
	}
}

// Max returns the per-channel maximum blended in by alpha
func Max(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	maxed := RGB{
		R: max(c.R, src.R),
		G: max(c.G, src.G),
		B: max(c.B, src.B),
	}
	return Blend(c, maxed, alpha)
}

// fastDiv255 approximates x / 255 using integer math
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

// Screen blend: 1 - (1-Dst)*(1-Src) with alpha blending
func Screen(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	screened := RGB{
		R: uint8(255 - fastDiv255((255-int(c.R))*(255-int(src.R)))),
		G: uint8(255 - fastDiv255((255-int(c.G))*(255-int(src.G)))),
		B: uint8(255 - fastDiv255((255-int(c.B))*(255-int(src.B)))),
	}
	return Blend(c, screened, alpha)
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Luma is the Rec. 601 brightness in [0, 1]
func Luma(c RGB) float64 {
	return float64(int(c.R)*299+int(c.G)*587+int(c.B)*114) / 255000.0
}
