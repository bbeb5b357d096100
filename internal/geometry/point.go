// Package geometry provides the planar primitives used by the flame engine:
// points, axis-aligned rectangles and affine transformations.
package geometry

import (
	"fmt"
	"math"
)

// Point is a position in the plane. Polar coordinates are derived on demand.
type Point struct {
	X, Y float64
}

// Origin is the point (0, 0).
var Origin = Point{}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// R returns the distance from the origin.
func (p Point) R() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Theta returns atan(y/x).
func (p Point) Theta() float64 {
	return math.Atan(p.Y / p.X)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Transformation maps a point of the plane to another point.
type Transformation interface {
	TransformPoint(p Point) Point
}
