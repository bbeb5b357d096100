package viz

import (
	"math"
	"strings"

	"github.com/san-kum/flamemaker/internal/geometry"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBase = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille characters addressed in sub-pixels: a canvas
// of Width x Height characters has 2*Width x 4*Height sub-pixels with y
// growing downward.
type Canvas struct {
	Width, Height int
	dots          []rune
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{Width: w, Height: h, dots: make([]rune, w*h)}
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.dots[row*c.Width+col] |= pixelMap[y%4][x%2]
}

// Cell returns the Braille character at (col, row) and whether any of its
// dots is set.
func (c *Canvas) Cell(col, row int) (rune, bool) {
	d := c.dots[row*c.Width+col]
	return brailleBase + d, d != 0
}

func (c *Canvas) Clear() {
	clear(c.dots)
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Projection maps the world rectangle onto the canvas sub-pixels, top-left
// corner first.
func (c *Canvas) Projection(world geometry.Rectangle) geometry.Affine {
	sx := float64(2*c.Width) / world.Width()
	sy := float64(4*c.Height) / world.Height()
	return geometry.Scaling(sx, -sy).ComposeWith(geometry.Translation(-world.Left(), -world.Top()))
}

// DrawSegment draws the world segment a-b through projection m.
func (c *Canvas) DrawSegment(m geometry.Affine, a, b geometry.Point) {
	pa, pb := m.TransformPoint(a), m.TransformPoint(b)
	c.DrawLine(roundInt(pa.X), roundInt(pa.Y), roundInt(pb.X), roundInt(pb.Y))
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _ := c.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// roundInt clamps far off-canvas coordinates so Bresenham stays bounded.
func roundInt(v float64) int {
	const limit = 1 << 14
	if math.IsNaN(v) {
		return -limit
	}
	return int(math.Round(max(-limit, min(limit, v))))
}
