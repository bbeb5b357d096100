package flame

import (
	"fmt"

	"github.com/san-kum/flamemaker/internal/geometry"
)

// Transformation is an affine map followed by a weighted sum of the
// variations. It is immutable; the With methods return modified copies.
type Transformation struct {
	affine  geometry.Affine
	weights [VariationCount]float64
}

// NewTransformation combines affine with one weight per variation.
func NewTransformation(affine geometry.Affine, weights []float64) (Transformation, error) {
	if len(weights) != VariationCount {
		return Transformation{}, fmt.Errorf("%w: %d variation weights, want %d", ErrInvalidValue, len(weights), VariationCount)
	}
	t := Transformation{affine: affine}
	copy(t.weights[:], weights)
	return t, nil
}

// Affine returns the affine part.
func (t Transformation) Affine() geometry.Affine { return t.affine }

// Weight returns the weight of the variation at index v.
func (t Transformation) Weight(v int) (float64, error) {
	if v < 0 || v >= VariationCount {
		return 0, fmt.Errorf("%w: variation %d", ErrIndexOutOfRange, v)
	}
	return t.weights[v], nil
}

// Weights returns a copy of the variation weights.
func (t Transformation) Weights() []float64 {
	w := make([]float64, VariationCount)
	copy(w, t.weights[:])
	return w
}

// WithAffine returns t with its affine part replaced.
func (t Transformation) WithAffine(a geometry.Affine) Transformation {
	t.affine = a
	return t
}

// WithWeight returns t with the weight of variation v replaced.
func (t Transformation) WithWeight(v int, w float64) (Transformation, error) {
	if v < 0 || v >= VariationCount {
		return Transformation{}, fmt.Errorf("%w: variation %d", ErrIndexOutOfRange, v)
	}
	t.weights[v] = w
	return t, nil
}

// TransformPoint applies the affine part, then sums every variation of the
// result scaled by its weight.
func (t Transformation) TransformPoint(p geometry.Point) geometry.Point {
	q := t.affine.TransformPoint(p)
	var x, y float64
	for i, w := range t.weights {
		if w == 0 {
			continue
		}
		v := Variations[i].fn(q)
		x += w * v.X
		y += w * v.Y
	}
	return geometry.Pt(x, y)
}
