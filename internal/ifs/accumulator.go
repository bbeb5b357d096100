package ifs

import (
	"fmt"
	"math"

	"github.com/san-kum/flamemaker/internal/geometry"
)

type AccumulatorBuilder struct {
	frame         geometry.Rectangle
	width, height int
	toGrid        geometry.Affine
	cells         []bool
}

func NewAccumulatorBuilder(frame geometry.Rectangle, width, height int) (*AccumulatorBuilder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: accumulator size %dx%d", ErrInvalidValue, width, height)
	}
	toGrid := geometry.Scaling(float64(width)/frame.Width(), float64(height)/frame.Height()).
		ComposeWith(geometry.Translation(-frame.Left(), -frame.Bottom()))
	return &AccumulatorBuilder{
		frame:  frame,
		width:  width,
		height: height,
		toGrid: toGrid,
		cells:  make([]bool, width*height),
	}, nil
}

// Hit marks the cell containing p. Points outside the frame are ignored.
func (b *AccumulatorBuilder) Hit(p geometry.Point) {
	if !b.frame.Contains(p) {
		return
	}
	g := b.toGrid.TransformPoint(p)
	x := min(int(math.Floor(g.X)), b.width-1)
	y := min(int(math.Floor(g.Y)), b.height-1)
	b.cells[y*b.width+x] = true
}

func (b *AccumulatorBuilder) Build() *Accumulator {
	cells := make([]bool, len(b.cells))
	copy(cells, b.cells)
	return &Accumulator{width: b.width, height: b.height, cells: cells}
}

// Accumulator is an immutable width x height grid of hit flags.
type Accumulator struct {
	width, height int
	cells         []bool
}

func (a *Accumulator) Width() int  { return a.width }
func (a *Accumulator) Height() int { return a.height }

func (a *Accumulator) IsHit(x, y int) (bool, error) {
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		return false, fmt.Errorf("%w: cell (%d,%d) of %dx%d", ErrIndexOutOfRange, x, y, a.width, a.height)
	}
	return a.cells[y*a.width+x], nil
}

// Count returns the number of hit cells.
func (a *Accumulator) Count() int {
	n := 0
	for _, c := range a.cells {
		if c {
			n++
		}
	}
	return n
}
