package geometry

import "math"

// Affine is a 2D affine transformation stored as the first two rows of a
// 3x3 matrix:
//
//	| A  B  C |
//	| D  E  F |
//
// mapping (x, y) to (A*x + B*y + C, D*x + E*y + F).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity leaves every point unchanged.
var Identity = Affine{A: 1, E: 1}

// NewAffine builds an affine transformation from its six coefficients.
func NewAffine(a, b, c, d, e, f float64) Affine {
	return Affine{A: a, B: b, C: c, D: d, E: e, F: f}
}

// Translation moves points by (dx, dy).
func Translation(dx, dy float64) Affine {
	return Affine{A: 1, C: dx, E: 1, F: dy}
}

// Rotation rotates points counterclockwise about the origin by theta radians.
func Rotation(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

// Scaling scales points by sx horizontally and sy vertically.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// ShearX shears parallel to the x axis.
func ShearX(s float64) Affine {
	return Affine{A: 1, B: s, E: 1}
}

// ShearY shears parallel to the y axis.
func ShearY(s float64) Affine {
	return Affine{A: 1, D: s, E: 1}
}

// ComposeWith returns the transformation that applies that first and m second.
func (m Affine) ComposeWith(that Affine) Affine {
	return Affine{
		A: m.A*that.A + m.B*that.D,
		B: m.A*that.B + m.B*that.E,
		C: m.A*that.C + m.B*that.F + m.C,
		D: m.D*that.A + m.E*that.D,
		E: m.D*that.B + m.E*that.E,
		F: m.D*that.C + m.E*that.F + m.F,
	}
}

// TransformPoint applies the transformation to p.
func (m Affine) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TranslationX returns the horizontal translation component.
func (m Affine) TranslationX() float64 { return m.C }

// TranslationY returns the vertical translation component.
func (m Affine) TranslationY() float64 { return m.F }
