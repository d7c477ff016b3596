package shader

import (
	"image/color"

	"github.com/taigrr/planets/pkg/noise"
)

// Color is a linear RGBA color with channels nominally in [0, 1].
// Intermediate values may leave that range; Clamp brings them back.
type Color struct {
	R, G, B, A float64
}

// RGB8 builds an opaque color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1,
	}
}

// Mix linearly interpolates every channel from c towards o by t.
func (c Color) Mix(o Color, t float64) Color {
	return Color{
		R: noise.Mix(c.R, o.R, t),
		G: noise.Mix(c.G, o.G, t),
		B: noise.Mix(c.B, o.B, t),
		A: noise.Mix(c.A, o.A, t),
	}
}

// Scale multiplies the color channels by s, leaving alpha alone.
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Clamp limits every channel to [0, 1].
func (c Color) Clamp() Color {
	return Color{
		R: noise.Clamp(c.R, 0, 1),
		G: noise.Clamp(c.G, 0, 1),
		B: noise.Clamp(c.B, 0, 1),
		A: noise.Clamp(c.A, 0, 1),
	}
}

// RGBA converts to an 8-bit color, clamping first.
func (c Color) RGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// Packed returns the color as 0xRRGGBB.
func (c Color) Packed() uint32 {
	rgba := c.RGBA()
	return uint32(rgba.R)<<16 | uint32(rgba.G)<<8 | uint32(rgba.B)
}
