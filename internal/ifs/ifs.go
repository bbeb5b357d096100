// Package ifs renders plain iterated function systems: an affine-only chaos
// game whose accumulator only records whether a cell was ever reached.
package ifs

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/flamemaker/internal/geometry"
)

var (
	ErrInvalidValue    = errors.New("ifs: invalid value")
	ErrIndexOutOfRange = errors.New("ifs: index out of range")
	ErrEmpty           = errors.New("ifs: no transformations")
)

// Seed seeds every Compute call.
const Seed int64 = 2013

type IFS struct {
	affines []geometry.Affine
}

func New(affines []geometry.Affine) *IFS {
	c := make([]geometry.Affine, len(affines))
	copy(c, affines)
	return &IFS{affines: c}
}

// Sierpinski returns the three half-scale maps of the Sierpinski triangle.
func Sierpinski() *IFS {
	return New([]geometry.Affine{
		geometry.NewAffine(0.5, 0, 0, 0, 0.5, 0),
		geometry.NewAffine(0.5, 0, 0.5, 0, 0.5, 0),
		geometry.NewAffine(0.5, 0, 0.25, 0, 0.5, 0.5),
	})
}

func (s *IFS) Len() int { return len(s.affines) }

// Compute iterates density*width*height times from the origin and marks
// every cell of frame the point lands in.
func (s *IFS) Compute(frame geometry.Rectangle, width, height, density int) (*Accumulator, error) {
	if len(s.affines) == 0 {
		return nil, ErrEmpty
	}
	if density < 0 {
		return nil, fmt.Errorf("%w: density %d", ErrInvalidValue, density)
	}
	b, err := NewAccumulatorBuilder(frame, width, height)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(Seed))
	p := geometry.Origin
	for m := density * width * height; m > 0; m-- {
		p = s.affines[rng.Intn(len(s.affines))].TransformPoint(p)
		b.Hit(p)
	}
	return b.Build(), nil
}
