package flame

import (
	"fmt"
	"math/bits"
	"math/rand"

	"github.com/san-kum/flamemaker/internal/geometry"
)

const (
	// Seed seeds the chaos game so identical inputs give identical grids.
	Seed int64 = 2013

	// WarmupIterations are run before any sample is recorded so the point
	// settles onto the attractor.
	WarmupIterations = 20
)

// Flame is an immutable list of transformations.
type Flame struct {
	transformations []Transformation
}

// New returns a flame over a copy of ts.
func New(ts []Transformation) *Flame {
	c := make([]Transformation, len(ts))
	copy(c, ts)
	return &Flame{transformations: c}
}

// TransformationCount returns the number of transformations.
func (f *Flame) TransformationCount() int { return len(f.transformations) }

// Transformation returns the transformation at position i.
func (f *Flame) Transformation(i int) (Transformation, error) {
	if i < 0 || i >= len(f.transformations) {
		return Transformation{}, fmt.Errorf("%w: transformation %d of %d", ErrIndexOutOfRange, i, len(f.transformations))
	}
	return f.transformations[i], nil
}

// Compute runs the chaos game with the fixed Seed. density*width*height
// samples are recorded into a grid of width x height cells covering frame.
func (f *Flame) Compute(frame geometry.Rectangle, width, height, density int) (*Accumulator, error) {
	return f.ComputeWithSeed(frame, width, height, density, Seed)
}

// ComputeWithSeed is Compute with an explicit seed.
func (f *Flame) ComputeWithSeed(frame geometry.Rectangle, width, height, density int, seed int64) (*Accumulator, error) {
	if density < 0 {
		return nil, fmt.Errorf("%w: density %d", ErrInvalidValue, density)
	}
	b, err := NewAccumulatorBuilder(frame, width, height)
	if err != nil {
		return nil, err
	}
	g, err := f.newGame(seed)
	if err != nil {
		return nil, err
	}
	iterations := density * width * height
	if err := g.run(b, iterations); err != nil {
		return nil, err
	}

	acc := b.Build()
	Logger().Debug("flame computed",
		"transformations", len(f.transformations),
		"iterations", iterations,
		"hits", acc.TotalHits(),
		"max_hits", acc.MaxHits())
	return acc, nil
}

// game is the state of one chaos game trajectory.
type game struct {
	ts         []Transformation
	rng        *rand.Rand
	p          geometry.Point
	colorIndex float64
}

func (f *Flame) newGame(seed int64) (*game, error) {
	if len(f.transformations) == 0 {
		return nil, ErrEmptyFlame
	}
	g := &game{
		ts:  f.transformations,
		rng: rand.New(rand.NewSource(seed)),
		p:   geometry.Origin,
	}
	for i := 0; i < WarmupIterations; i++ {
		g.step()
	}
	return g, nil
}

// step moves the point by a randomly chosen transformation and blends that
// transformation's color into the running color index.
func (g *game) step() {
	i := g.rng.Intn(len(g.ts))
	g.colorIndex = 0.5 * (g.colorIndex + colorIndex(i))
	g.p = g.ts[i].TransformPoint(g.p)
}

func (g *game) run(b *AccumulatorBuilder, iterations int) error {
	for i := 0; i < iterations; i++ {
		g.step()
		if err := b.Hit(g.p, g.colorIndex); err != nil {
			return err
		}
	}
	return nil
}

// ColorIndex returns the color index of the transformation at position i:
// 0 for 0, 1 for 1, and (2i-p-1)/p for i > 1 where p is the smallest power
// of two not below i. Earlier transformations keep their colors when
// transformations are appended.
func ColorIndex(i int) (float64, error) {
	if i < 0 {
		return 0, fmt.Errorf("%w: transformation %d", ErrIndexOutOfRange, i)
	}
	return colorIndex(i), nil
}

func colorIndex(i int) float64 {
	if i <= 1 {
		return float64(i)
	}
	p := 1 << bits.Len(uint(i-1))
	return float64(2*i-p-1) / float64(p)
}
