package body

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/starfall/device"
)

// Palette is the two-tone band scheme of a body surface
type Palette struct {
	Low, High colorful.Color
}

var (
	// PlanetPalette is a warm gas-giant banding
	PlanetPalette = Palette{
		Low:  colorful.Hcl(30, 0.35, 0.45),
		High: colorful.Hcl(70, 0.25, 0.85),
	}
	// MoonPalette is a cool grey regolith
	MoonPalette = Palette{
		Low:  colorful.Hcl(250, 0.03, 0.35),
		High: colorful.Hcl(250, 0.02, 0.8),
	}
)

// BandTexture renders latitude bands with per-band noise, width 2*bands by bands texels
func BandTexture(rng *rand.Rand, bands int, pal Palette) (int, int, []colorful.Color) {
	if bands < 1 {
		bands = 1
	}
	w, h := bands*2, bands
	texels := make([]colorful.Color, w*h)

	phase := rng.Float64() * 2 * math.Pi
	for y := 0; y < h; y++ {
		lat := float64(y) / float64(h)
		// Low-frequency banding plus a per-row jitter
		t := 0.5 + 0.35*math.Sin(lat*9*math.Pi+phase) + 0.15*(rng.Float64()*2-1)
		t = math.Max(0, math.Min(1, t))
		row := pal.Low.BlendHcl(pal.High, t).Clamped()
		for x := 0; x < w; x++ {
			// Streaks along longitude
			s := 0.06 * math.Sin(float64(x)/float64(w)*6*math.Pi+lat*13)
			texels[y*w+x] = row.BlendRgb(pal.High, math.Max(0, s)).Clamped()
		}
	}
	return w, h, texels
}

// AttachTexture allocates a band texture for b, replacing and releasing any previous one
func AttachTexture(dev *device.Device, rng *rand.Rand, b *Body, bands int, pal Palette) error {
	w, h, texels := BandTexture(rng, bands, pal)
	old := b.Texture
	b.Texture = dev.CreateTexture(w, h, texels)
	if old != 0 {
		if err := dev.Release(old); err != nil {
			return fmt.Errorf("release body texture: %w", err)
		}
	}
	return nil
}

// ReleaseTexture frees the texture of b, safe to call more than once
func ReleaseTexture(dev *device.Device, b *Body) error {
	if b.Texture == 0 {
		return nil
	}
	tex := b.Texture
	b.Texture = 0
	if err := dev.Release(tex); err != nil {
		return fmt.Errorf("release body texture: %w", err)
	}
	return nil
}
