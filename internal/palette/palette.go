package palette

import (
	"fmt"
	"math"
	"math/rand"
)

// Palette maps a color index in [0, 1] to a color.
type Palette interface {
	ColorForIndex(index float64) (Color, error)
}

// Interpolated is a palette of evenly spaced colors blended piecewise
// linearly.
type Interpolated struct {
	colors []Color
}

// NewInterpolated returns a palette over a copy of colors. At least two
// colors are required.
func NewInterpolated(colors []Color) (*Interpolated, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("%w: palette needs at least 2 colors, got %d", ErrInvalidValue, len(colors))
	}
	c := make([]Color, len(colors))
	copy(c, colors)
	return &Interpolated{colors: c}, nil
}

// ColorForIndex returns the blend of the two colors surrounding
// index*(n-1). Index 0 is the first color and index 1 the last.
func (p *Interpolated) ColorForIndex(index float64) (Color, error) {
	if !inUnit(index) {
		return Color{}, fmt.Errorf("%w: palette index %g", ErrInvalidValue, index)
	}
	pos := index * float64(len(p.colors)-1)
	left := math.Floor(pos)
	right := math.Ceil(pos)
	return p.colors[int(left)].MixWith(p.colors[int(right)], pos-left)
}

// Colors returns a copy of the palette's colors.
func (p *Interpolated) Colors() []Color {
	c := make([]Color, len(p.colors))
	copy(c, p.colors)
	return c
}

// Random is an interpolated palette over randomly drawn colors. The colors
// are drawn once at construction.
type Random struct {
	*Interpolated
}

// NewRandom draws n colors with uniform channels from rng.
func NewRandom(n int, rng *rand.Rand) (*Random, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: palette needs at least 2 colors, got %d", ErrInvalidValue, n)
	}
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = Color{r: rng.Float64(), g: rng.Float64(), b: rng.Float64()}
	}
	ip, err := NewInterpolated(colors)
	if err != nil {
		return nil, err
	}
	return &Random{Interpolated: ip}, nil
}

// NewRandomSeeded is NewRandom with a fresh source seeded with seed.
func NewRandomSeeded(n int, seed int64) (*Random, error) {
	return NewRandom(n, rand.New(rand.NewSource(seed)))
}
