package colour

import (
	"github.com/lucasb-eyer/go-colorful"
)

// ShiftLightness adjusts the colour's CIE L* lightness by delta (on the usual
// 0-100 scale), clamping the result to [0, 100]. The a/b channels are held
// fixed, so hue and chroma are preserved as closely as the gamut allows. Any
// alpha suffix carries over unchanged.
func (c Colour) ShiftLightness(delta float64) Colour {
	if delta == 0 {
		return c
	}
	l, a, b := toColorful(c).Lab()

	// go-colorful normalises L* to [0, 1].
	l = clamp01(l + delta/100.0)

	shifted := fromColorful(colorful.Lab(l, a, b).Clamped())
	if c.HasAlpha {
		shifted = shifted.WithAlpha(c.Alpha)
	}
	return shifted
}

func toColorful(c Colour) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) Colour {
	r, g, b := c.RGB255()
	return Colour{R: r, G: g, B: b}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
