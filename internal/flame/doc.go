// Package flame implements the flame fractal engine.
//
// The package defines:
//
//   - [Variation]: the six non-linear point maps, indexed 0..5
//   - [Transformation]: an affine map followed by a weighted sum of variations
//   - [Flame]: an immutable list of transformations iterated by the chaos game
//   - [Builder]: an editable copy of a flame's transformation list
//   - [AccumulatorBuilder] and [Accumulator]: the hit-count grid and its
//     frozen, tone-mapped form
//   - [Ensemble]: a multi-stream parallel renderer
//
// # Example
//
//	frame, _ := geometry.NewRectangle(geometry.Pt(0.1, 0.1), 3, 3)
//	acc, _ := fl.Compute(frame, 500, 500, 50)
//	c, _ := acc.Color(pal, palette.Black, x, y)
//
// # Thread Safety
//
// Flame, Transformation and Accumulator values are immutable and safe for
// concurrent use. Builder and AccumulatorBuilder are NOT thread-safe.
package flame
