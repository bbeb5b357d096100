package flame

import (
	"fmt"

	"github.com/san-kum/flamemaker/internal/geometry"
)

// Builder edits a private copy of a flame's transformation list.
type Builder struct {
	transformations []Transformation
}

// NewBuilder starts from the transformations of f. A nil flame starts empty.
func NewBuilder(f *Flame) *Builder {
	if f == nil {
		return &Builder{}
	}
	c := make([]Transformation, len(f.transformations))
	copy(c, f.transformations)
	return &Builder{transformations: c}
}

// TransformationCount returns the number of transformations.
func (b *Builder) TransformationCount() int { return len(b.transformations) }

func (b *Builder) checkIndex(i int) error {
	if i < 0 || i >= len(b.transformations) {
		return fmt.Errorf("%w: transformation %d of %d", ErrIndexOutOfRange, i, len(b.transformations))
	}
	return nil
}

// AddTransformation appends t.
func (b *Builder) AddTransformation(t Transformation) {
	b.transformations = append(b.transformations, t)
}

// Transformation returns the transformation at position i.
func (b *Builder) Transformation(i int) (Transformation, error) {
	if err := b.checkIndex(i); err != nil {
		return Transformation{}, err
	}
	return b.transformations[i], nil
}

// SetTransformation replaces the transformation at position i.
func (b *Builder) SetTransformation(i int, t Transformation) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	b.transformations[i] = t
	return nil
}

// RemoveTransformation deletes the transformation at position i.
func (b *Builder) RemoveTransformation(i int) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	b.transformations = append(b.transformations[:i], b.transformations[i+1:]...)
	return nil
}

// Affine returns the affine part of transformation i.
func (b *Builder) Affine(i int) (geometry.Affine, error) {
	if err := b.checkIndex(i); err != nil {
		return geometry.Affine{}, err
	}
	return b.transformations[i].affine, nil
}

// SetAffine replaces the affine part of transformation i.
func (b *Builder) SetAffine(i int, a geometry.Affine) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	b.transformations[i] = b.transformations[i].WithAffine(a)
	return nil
}

// VariationWeight returns the weight of v in transformation i.
func (b *Builder) VariationWeight(i int, v Variation) (float64, error) {
	if err := b.checkIndex(i); err != nil {
		return 0, err
	}
	return b.transformations[i].Weight(v.index)
}

// SetVariationWeight replaces the weight of v in transformation i.
func (b *Builder) SetVariationWeight(i int, v Variation, w float64) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	t, err := b.transformations[i].WithWeight(v.index, w)
	if err != nil {
		return err
	}
	b.transformations[i] = t
	return nil
}

// Build returns an immutable flame of the current transformations.
func (b *Builder) Build() *Flame {
	return New(b.transformations)
}
