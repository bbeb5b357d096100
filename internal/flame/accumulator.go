package flame

import (
	"fmt"
	"math"

	"github.com/san-kum/flamemaker/internal/geometry"
	"github.com/san-kum/flamemaker/internal/palette"
)

// AccumulatorBuilder records chaos game samples falling inside a frame on a
// width x height grid. Row 0 is the bottom of the frame.
type AccumulatorBuilder struct {
	frame         geometry.Rectangle
	width, height int
	toGrid        geometry.Affine
	hits          []uint64
	colorSums     []float64
}

// NewAccumulatorBuilder returns an empty builder mapping frame onto a
// width x height grid.
func NewAccumulatorBuilder(frame geometry.Rectangle, width, height int) (*AccumulatorBuilder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: accumulator size %dx%d", ErrInvalidValue, width, height)
	}
	scale := geometry.Scaling(
		float64(width)/(frame.Right()-frame.Left()),
		float64(height)/(frame.Top()-frame.Bottom()),
	)
	translate := geometry.Translation(-frame.Left(), -frame.Bottom())
	return &AccumulatorBuilder{
		frame:     frame,
		width:     width,
		height:    height,
		toGrid:    scale.ComposeWith(translate),
		hits:      make([]uint64, width*height),
		colorSums: make([]float64, width*height),
	}, nil
}

// Hit records p with the given color index. Points outside the frame are
// ignored.
func (b *AccumulatorBuilder) Hit(p geometry.Point, colorIndex float64) error {
	if colorIndex < 0 || colorIndex > 1 || math.IsNaN(colorIndex) {
		return fmt.Errorf("%w: color index %g", ErrInvalidValue, colorIndex)
	}
	if !b.frame.Contains(p) {
		return nil
	}
	g := b.toGrid.TransformPoint(p)
	// a contained point can still round onto the far edge
	x := clampCell(int(math.Floor(g.X)), b.width)
	y := clampCell(int(math.Floor(g.Y)), b.height)
	i := y*b.width + x
	b.hits[i]++
	b.colorSums[i] += colorIndex
	return nil
}

func clampCell(i, n int) int {
	return max(0, min(i, n-1))
}

// Build freezes a copy of the grid. The builder stays usable.
func (b *AccumulatorBuilder) Build() *Accumulator {
	hits := make([]uint64, len(b.hits))
	copy(hits, b.hits)
	sums := make([]float64, len(b.colorSums))
	copy(sums, b.colorSums)
	return newAccumulator(b.width, b.height, hits, sums)
}

// Accumulator is the frozen hit-count grid of a computation.
type Accumulator struct {
	width, height int
	hits          []uint64
	colorSums     []float64
	maxHits       uint64
	logMaxPoints  float64
}

func newAccumulator(width, height int, hits []uint64, sums []float64) *Accumulator {
	var maxHits uint64
	for _, h := range hits {
		if h > maxHits {
			maxHits = h
		}
	}
	return &Accumulator{
		width:        width,
		height:       height,
		hits:         hits,
		colorSums:    sums,
		maxHits:      maxHits,
		logMaxPoints: math.Log(float64(maxHits) + 1),
	}
}

func (a *Accumulator) Width() int  { return a.width }
func (a *Accumulator) Height() int { return a.height }

// MaxHits returns the largest hit count of any cell.
func (a *Accumulator) MaxHits() uint64 { return a.maxHits }

// TotalHits returns the number of samples recorded in the grid.
func (a *Accumulator) TotalHits() uint64 {
	var total uint64
	for _, h := range a.hits {
		total += h
	}
	return total
}

func (a *Accumulator) index(x, y int) (int, error) {
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		return 0, fmt.Errorf("%w: cell (%d,%d) of %dx%d", ErrIndexOutOfRange, x, y, a.width, a.height)
	}
	return y*a.width + x, nil
}

// HitCount returns the number of samples recorded in cell (x, y).
func (a *Accumulator) HitCount(x, y int) (uint64, error) {
	i, err := a.index(x, y)
	if err != nil {
		return 0, err
	}
	return a.hits[i], nil
}

// Intensity returns ln(hits+1)/ln(maxHits+1) for cell (x, y), a value in
// [0, 1] that is 0 exactly for empty cells.
func (a *Accumulator) Intensity(x, y int) (float64, error) {
	i, err := a.index(x, y)
	if err != nil {
		return 0, err
	}
	return a.intensity(i), nil
}

func (a *Accumulator) intensity(i int) float64 {
	if a.hits[i] == 0 {
		return 0
	}
	return math.Log(float64(a.hits[i])+1) / a.logMaxPoints
}

// Color returns the palette color of the mean color index of cell (x, y)
// mixed over background by the cell's intensity. Empty cells are background.
func (a *Accumulator) Color(p palette.Palette, background palette.Color, x, y int) (palette.Color, error) {
	i, err := a.index(x, y)
	if err != nil {
		return palette.Color{}, err
	}
	if a.hits[i] == 0 {
		return background, nil
	}
	mean := math.Min(1, a.colorSums[i]/float64(a.hits[i]))
	c, err := p.ColorForIndex(mean)
	if err != nil {
		return palette.Color{}, err
	}
	return background.MixWith(c, math.Min(1, a.intensity(i)))
}

// Merge sums the grids of equally sized accumulators.
func Merge(accs ...*Accumulator) (*Accumulator, error) {
	if len(accs) == 0 {
		return nil, fmt.Errorf("%w: nothing to merge", ErrInvalidValue)
	}
	w, h := accs[0].width, accs[0].height
	hits := make([]uint64, w*h)
	sums := make([]float64, w*h)
	for _, a := range accs {
		if a.width != w || a.height != h {
			return nil, fmt.Errorf("%w: %dx%d and %dx%d", ErrSizeMismatch, w, h, a.width, a.height)
		}
		for i := range hits {
			hits[i] += a.hits[i]
			sums[i] += a.colorSums[i]
		}
	}
	return newAccumulator(w, h, hits, sums), nil
}
