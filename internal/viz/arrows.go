package viz

import (
	"math"
	"strings"

	"github.com/san-kum/flamemaker/internal/geometry"
)

// arrow is a unit arrow along the x axis from (-1,0) to (1,0) with its head
// at (1,0).
var arrow = [][2]geometry.Point{
	{geometry.Pt(-1, 0), geometry.Pt(1, 0)},
	{geometry.Pt(1, 0), geometry.Pt(0.9, 0.1)},
	{geometry.Pt(1, 0), geometry.Pt(0.9, -0.1)},
}

// TransformationView draws, for every affine map, the images of the x and y
// unit arrows over the axes of world. The map at index highlighted is drawn
// in the active arrow style on top of the others.
func TransformationView(affines []geometry.Affine, highlighted int, world geometry.Rectangle, cols, rows int, s Styles) string {
	axes := NewCanvas(cols, rows)
	others := NewCanvas(cols, rows)
	active := NewCanvas(cols, rows)
	m := axes.Projection(world)

	axes.DrawSegment(m, geometry.Pt(world.Left(), 0), geometry.Pt(world.Right(), 0))
	axes.DrawSegment(m, geometry.Pt(0, world.Bottom()), geometry.Pt(0, world.Top()))

	quarter := geometry.Rotation(math.Pi / 2)
	for i, a := range affines {
		c := others
		if i == highlighted {
			c = active
		}
		for _, seg := range arrow {
			c.DrawSegment(m.ComposeWith(a), seg[0], seg[1])
			c.DrawSegment(m.ComposeWith(a).ComposeWith(quarter), seg[0], seg[1])
		}
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if r, ok := active.Cell(col, row); ok {
				b.WriteString(s.ArrowActive.Render(string(r)))
			} else if r, ok := others.Cell(col, row); ok {
				b.WriteString(s.Arrow.Render(string(r)))
			} else if r, ok := axes.Cell(col, row); ok {
				b.WriteString(s.Label.Render(string(r)))
			} else {
				b.WriteByte(' ')
			}
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
