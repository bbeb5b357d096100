package flame

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/flamemaker/internal/geometry"
)

// ensembleChunk is the number of iterations between context checks.
const ensembleChunk = 1 << 16

// Ensemble renders a flame on independent seeded streams concurrently and
// sums their grids. The result is reproducible for a fixed number of
// streams and seedStart but differs from Flame.Compute.
type Ensemble struct {
	flame     *Flame
	streams   int
	seedStart int64
}

// NewEnsemble splits the work of f across streams streams seeded
// seedStart, seedStart+1, ...
func NewEnsemble(f *Flame, streams int, seedStart int64) *Ensemble {
	return &Ensemble{flame: f, streams: streams, seedStart: seedStart}
}

// Run computes density*width*height samples in total.
func (e *Ensemble) Run(ctx context.Context, frame geometry.Rectangle, width, height, density int) (*Accumulator, error) {
	if e.streams < 1 {
		return nil, fmt.Errorf("%w: %d streams", ErrInvalidValue, e.streams)
	}
	if density < 0 {
		return nil, fmt.Errorf("%w: density %d", ErrInvalidValue, density)
	}
	if e.flame.TransformationCount() == 0 {
		return nil, ErrEmptyFlame
	}

	total := density * width * height
	Logger().Info("ensemble started", "streams", e.streams, "iterations", total)

	results := make([]*Accumulator, e.streams)
	g, ctx := errgroup.WithContext(ctx)
	for k := 0; k < e.streams; k++ {
		iterations := total / e.streams
		if k < total%e.streams {
			iterations++
		}
		k := k
		g.Go(func() error {
			b, err := NewAccumulatorBuilder(frame, width, height)
			if err != nil {
				return err
			}
			gm, err := e.flame.newGame(e.seedStart + int64(k))
			if err != nil {
				return err
			}
			for done := 0; done < iterations; done += ensembleChunk {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := gm.run(b, min(ensembleChunk, iterations-done)); err != nil {
					return err
				}
			}
			results[k] = b.Build()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	acc, err := Merge(results...)
	if err != nil {
		return nil, err
	}
	Logger().Info("ensemble merged", "hits", acc.TotalHits(), "max_hits", acc.MaxHits())
	return acc, nil
}
