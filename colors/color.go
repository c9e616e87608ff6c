package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color4 is a straight (non-premultiplied) RGBA color with float64
// components in [0,1].
type Color4 struct {
	R, G, B, A float64
}

func New(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color, returning alpha-premultiplied 16-bit values.
func (c Color4) RGBA() (r, g, b, a uint32) {
	rf := clamp01(c.R)
	gf := clamp01(c.G)
	bf := clamp01(c.B)
	af := clamp01(c.A)

	return uint32(rf * af * 65535),
		uint32(gf * af * 65535),
		uint32(bf * af * 65535),
		uint32(af * 65535)
}

func FromStandardColor(c color.Color) Color4 {
	if c4, ok := c.(Color4); ok {
		return c4
	}

	r16, g16, b16, a16 := c.RGBA()
	if a16 == 0 {
		return Color4{}
	}

	// De-premultiply and normalize to [0,1]
	invA := float64(0xFFFF) / float64(a16)
	return Color4{
		R: float64(r16) * invA / 65535.0,
		G: float64(g16) * invA / 65535.0,
		B: float64(b16) * invA / 65535.0,
		A: float64(a16) / 65535.0,
	}
}

func From8BitRgb(r, g, b, a byte) Color4 {
	return Color4{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: float64(a) / 255.0,
	}
}

// FromHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func FromHex(s string) (Color4, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color4{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color4{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return From8BitRgb(byte(v>>24), byte(v>>16), byte(v>>8), byte(v)), nil
}

// MustHex is FromHex for package-level palettes; it panics on bad input.
func MustHex(s string) Color4 {
	c, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func White() Color4 {
	return Color4{R: 1, G: 1, B: 1, A: 1}
}

func Black() Color4 {
	return Color4{R: 0, G: 0, B: 0, A: 1}
}

// Scale returns c * s (scalar, alpha included).
func (c Color4) Scale(s float64) Color4 {
	return Color4{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Mix returns lerp(c, o, t) = c*(1-t) + o*t.
func (c Color4) Mix(o Color4, t float64) Color4 {
	return Color4{
		R: c.R*(1-t) + o.R*t,
		G: c.G*(1-t) + o.G*t,
		B: c.B*(1-t) + o.B*t,
		A: c.A*(1-t) + o.A*t,
	}
}

// Over composites c on top of dst with the Porter-Duff "over" operator.
func (c Color4) Over(dst Color4) Color4 {
	a := c.A + dst.A*(1-c.A)
	if a <= 0 {
		return Color4{}
	}
	blend := func(s, d float64) float64 {
		return (s*c.A + d*dst.A*(1-c.A)) / a
	}
	return Color4{
		R: blend(c.R, dst.R),
		G: blend(c.G, dst.G),
		B: blend(c.B, dst.B),
		A: a,
	}
}

func (c Color4) MulAlpha(a float64) Color4 {
	return Color4{R: c.R, G: c.G, B: c.B, A: c.A * a}
}

func (c Color4) WithAlpha(a float64) Color4 {
	return Color4{R: c.R, G: c.G, B: c.B, A: a}
}

// Clamp01 clamps each component into [0,1].
func (c Color4) Clamp01() Color4 {
	return Color4{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

// ToNRGBA converts to 8-bit straight alpha, truncating toward zero.
func (c Color4) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		to8bit(c.R),
		to8bit(c.G),
		to8bit(c.B),
		to8bit(c.A),
	}
}

// Hex formats the color as "#rrggbbaa".
func (c Color4) Hex() string {
	n := c.ToNRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func to8bit(x float64) uint8 {
	return uint8(255.0*clamp01(x) + 1e-9)
}
