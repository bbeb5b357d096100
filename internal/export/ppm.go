package export

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/palette"
)

// DefaultMaxValue is the PPM channel maximum used by the renderer.
const DefaultMaxValue = 100

// WritePPM writes acc as a plain "P3" PPM. Rows go from the top of the grid
// down and every channel is sRGB encoded to [0, max].
func WritePPM(w io.Writer, acc *flame.Accumulator, p palette.Palette, bg palette.Color, max int) error {
	if max <= 0 || max > 65535 {
		return fmt.Errorf("export: ppm max value %d out of range", max)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n%d\n", acc.Width(), acc.Height(), max)

	buf := make([]byte, 0, 16)
	for y := acc.Height() - 1; y >= 0; y-- {
		for x := 0; x < acc.Width(); x++ {
			c, err := acc.Color(p, bg, x, y)
			if err != nil {
				return err
			}
			if x > 0 {
				bw.WriteByte(' ')
			}
			buf = appendTriple(buf[:0],
				palette.SRGBEncode(c.Red(), max),
				palette.SRGBEncode(c.Green(), max),
				palette.SRGBEncode(c.Blue(), max))
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func encodePPM(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	b := img.Bounds()
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", b.Dx(), b.Dy())

	buf := make([]byte, 0, 16)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if x > b.Min.X {
				bw.WriteByte(' ')
			}
			buf = appendTriple(buf[:0], int(r>>8), int(g>>8), int(bl>>8))
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func appendTriple(buf []byte, r, g, b int) []byte {
	buf = strconv.AppendInt(buf, int64(r), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(g), 10)
	buf = append(buf, ' ')
	return strconv.AppendInt(buf, int64(b), 10)
}
