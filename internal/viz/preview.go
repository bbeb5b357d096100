package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/geometry"
	"github.com/san-kum/flamemaker/internal/palette"
)

// Preview computes f over frame, widened to the aspect ratio of a cols x rows
// half-block area, and renders it.
func Preview(f *flame.Flame, frame geometry.Rectangle, cols, rows, density int, p palette.Palette, bg palette.Color) (string, error) {
	acc, err := PreviewAccumulator(f, frame, cols, rows, density)
	if err != nil {
		return "", err
	}
	return RenderAccumulator(acc, p, bg)
}

// PreviewAccumulator computes the grid Preview draws: cols x 2*rows cells
// over frame widened to that aspect ratio.
func PreviewAccumulator(f *flame.Flame, frame geometry.Rectangle, cols, rows, density int) (*flame.Accumulator, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("viz: preview size %dx%d", cols, rows)
	}
	w, h := cols, 2*rows
	area, err := frame.ExpandToAspectRatio(float64(w) / float64(h))
	if err != nil {
		return nil, err
	}
	return f.Compute(area, w, h, density)
}

// ColumnSparkline sums the hits of every grid column and charts them left to
// right in at most width characters.
func ColumnSparkline(acc *flame.Accumulator, width int) string {
	cols := make([]float64, acc.Width())
	for x := range cols {
		for y := 0; y < acc.Height(); y++ {
			n, _ := acc.HitCount(x, y)
			cols[x] += float64(n)
		}
	}
	return SparklineChart(cols, width)
}

// RenderAccumulator draws acc with one "▀" per pair of grid rows. Grids with
// an odd height leave the lowest half of the last line as background.
func RenderAccumulator(acc *flame.Accumulator, p palette.Palette, bg palette.Color) (string, error) {
	var b strings.Builder
	top := acc.Height() - 1
	for y := top; y >= 0; y -= 2 {
		for x := 0; x < acc.Width(); x++ {
			upper, err := acc.Color(p, bg, x, y)
			if err != nil {
				return "", err
			}
			lower := bg
			if y > 0 {
				if lower, err = acc.Color(p, bg, x, y-1); err != nil {
					return "", err
				}
			}
			style := lipgloss.NewStyle().
				Foreground(terminalColor(upper)).
				Background(terminalColor(lower))
			b.WriteString(style.Render("▀"))
		}
		if y > 1 {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func terminalColor(c palette.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06x", c.PackedRGB()))
}
