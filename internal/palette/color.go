// Package palette provides linear RGB colors and palettes mapping a color
// index in [0, 1] to a color.
package palette

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB color with channels in [0, 1].
type Color struct {
	r, g, b float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
)

// NewColor returns the color (r, g, b). Every channel must lie in [0, 1].
func NewColor(r, g, b float64) (Color, error) {
	if !inUnit(r) || !inUnit(g) || !inUnit(b) {
		return Color{}, fmt.Errorf("%w: color channels (%g, %g, %g)", ErrInvalidValue, r, g, b)
	}
	return Color{r, g, b}, nil
}

func (c Color) Red() float64   { return c.r }
func (c Color) Green() float64 { return c.g }
func (c Color) Blue() float64  { return c.b }

// MixWith blends c toward other: proportion 0 yields c, 1 yields other.
// Mixing happens in linear space.
func (c Color) MixWith(other Color, proportion float64) (Color, error) {
	if !inUnit(proportion) {
		return Color{}, fmt.Errorf("%w: mix proportion %g", ErrInvalidValue, proportion)
	}
	return Color{
		r: mix(c.r, other.r, proportion),
		g: mix(c.g, other.g, proportion),
		b: mix(c.b, other.b, proportion),
	}, nil
}

// PackedRGB returns the sRGB encoded color as 0xRRGGBB.
func (c Color) PackedRGB() uint32 {
	r := uint32(SRGBEncode(c.r, 255))
	g := uint32(SRGBEncode(c.g, 255))
	b := uint32(SRGBEncode(c.b, 255))
	return r<<16 | g<<8 | b
}

// NRGBA returns the opaque sRGB encoded color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(SRGBEncode(c.r, 255)),
		G: uint8(SRGBEncode(c.g, 255)),
		B: uint8(SRGBEncode(c.b, 255)),
		A: 0xff,
	}
}

// Hex returns the sRGB encoded color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.LinearRgb(c.r, c.g, c.b).Clamped().Hex()
}

// ParseHex parses an sRGB "#rrggbb" or "#rgb" string into a linear color.
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	r, g, b := cf.LinearRgb()
	return NewColor(clampUnit(r), clampUnit(g), clampUnit(b))
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.r, c.g, c.b)
}

// SRGBEncode applies the sRGB transfer function to the linear value v and
// scales the result to [0, max], truncating toward zero. Rounding in the
// transfer function leaves full intensity one below max (SRGBEncode(1, 255)
// is 254); renderers depend on this exact encoding.
func SRGBEncode(v float64, max int) int {
	var encoded float64
	if v <= 0.0031308 {
		encoded = 12.92 * v
	} else {
		encoded = 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return int(math.Floor(encoded * float64(max)))
}

func mix(from, to, t float64) float64 {
	return clampUnit(to*t + from*(1-t))
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// clampUnit only absorbs rounding error; inputs are validated beforehand.
func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
