package flame

import (
	"errors"
	"testing"

	"github.com/san-kum/flamemaker/internal/geometry"
)

func TestNewTransformation_WeightCount(t *testing.T) {
	for _, n := range []int{0, 5, 7} {
		_, err := NewTransformation(geometry.Identity, make([]float64, n))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("%d weights: expected ErrInvalidValue, got %v", n, err)
		}
	}
}

func TestTransformation_WeightedSum(t *testing.T) {
	affine := geometry.Translation(1, 1)
	weights := []float64{0.5, 0, 0.25, 0, 0, 1}
	tr, err := NewTransformation(affine, weights)
	if err != nil {
		t.Fatalf("new transformation: %v", err)
	}

	q := affine.TransformPoint(geometry.Pt(0, 1))
	lin := Variations[Linear].TransformPoint(q)
	sph := Variations[Spherical].TransformPoint(q)
	bub := Variations[Bubble].TransformPoint(q)
	want := geometry.Pt(
		0.5*lin.X+0.25*sph.X+bub.X,
		0.5*lin.Y+0.25*sph.Y+bub.Y,
	)

	if got := tr.TransformPoint(geometry.Pt(0, 1)); !nearPoint(got, want) {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}

	weights[0] = 99
	if w, _ := tr.Weight(Linear); w != 0.5 {
		t.Error("transformation aliases the caller's weights")
	}
}

func TestTransformation_With(t *testing.T) {
	tr, _ := NewTransformation(geometry.Identity, []float64{1, 0, 0, 0, 0, 0})

	moved := tr.WithAffine(geometry.Translation(2, 0))
	if got := moved.TransformPoint(geometry.Origin); got != geometry.Pt(2, 0) {
		t.Errorf("moved origin = %v", got)
	}
	if tr.Affine() != geometry.Identity {
		t.Error("WithAffine modified the receiver")
	}

	swirled, err := tr.WithWeight(Swirl, 0.5)
	if err != nil {
		t.Fatalf("with weight: %v", err)
	}
	if w := swirled.Weights(); w[Swirl] != 0.5 || w[Linear] != 1 {
		t.Errorf("weights = %v", w)
	}
	if w, _ := tr.Weight(Swirl); w != 0 {
		t.Error("WithWeight modified the receiver")
	}

	if _, err := tr.WithWeight(VariationCount, 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := tr.Weight(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}
