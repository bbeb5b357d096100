package flame

import (
	"math"
	"strings"

	"github.com/san-kum/flamemaker/internal/geometry"
)

// Variation is one of the fixed non-linear maps combined by a Transformation.
type Variation struct {
	index int
	name  string
	fn    func(p geometry.Point) geometry.Point
}

// Index returns the variation's position in Variations.
func (v Variation) Index() int { return v.index }

// Name returns the variation's display name.
func (v Variation) Name() string { return v.name }

// TransformPoint applies the variation to p.
func (v Variation) TransformPoint(p geometry.Point) geometry.Point {
	return v.fn(p)
}

func (v Variation) String() string { return v.name }

// VariationCount is the number of variations and the number of weights of
// every Transformation.
const VariationCount = 6

// Variation indices.
const (
	Linear = iota
	Sinusoidal
	Spherical
	Swirl
	Horseshoe
	Bubble
)

// Variations holds every variation at its index.
var Variations = [VariationCount]Variation{
	{Linear, "Linear", linear},
	{Sinusoidal, "Sinusoidal", sinusoidal},
	{Spherical, "Spherical", spherical},
	{Swirl, "Swirl", swirl},
	{Horseshoe, "Horseshoe", horseshoe},
	{Bubble, "Bubble", bubble},
}

// VariationByName looks a variation up by case-insensitive name.
func VariationByName(name string) (Variation, bool) {
	for _, v := range Variations {
		if strings.EqualFold(v.name, name) {
			return v, true
		}
	}
	return Variation{}, false
}

func linear(p geometry.Point) geometry.Point {
	return p
}

func sinusoidal(p geometry.Point) geometry.Point {
	return geometry.Pt(math.Sin(p.X), math.Sin(p.Y))
}

func spherical(p geometry.Point) geometry.Point {
	r2 := p.X*p.X + p.Y*p.Y
	if r2 == 0 {
		return p
	}
	return geometry.Pt(p.X/r2, p.Y/r2)
}

func swirl(p geometry.Point) geometry.Point {
	r2 := p.X*p.X + p.Y*p.Y
	sin, cos := math.Sincos(r2)
	return geometry.Pt(p.X*sin-p.Y*cos, p.X*cos+p.Y*sin)
}

func horseshoe(p geometry.Point) geometry.Point {
	r := p.R()
	if r == 0 {
		return p
	}
	return geometry.Pt((p.X-p.Y)*(p.X+p.Y)/r, 2*p.X*p.Y/r)
}

func bubble(p geometry.Point) geometry.Point {
	k := 4 / (p.X*p.X + p.Y*p.Y + 4)
	return geometry.Pt(k*p.X, k*p.Y)
}
