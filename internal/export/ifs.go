package export

import (
	"fmt"
	"image"
	"strings"

	"github.com/san-kum/flamemaker/internal/ifs"
	"github.com/san-kum/flamemaker/internal/palette"
)

// IFSImage paints hit cells fg and the rest bg, top row first.
func IFSImage(acc *ifs.Accumulator, fg, bg palette.Color) (*image.NRGBA, error) {
	w, h := acc.Width(), acc.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	on, off := fg.NRGBA(), bg.NRGBA()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hit, err := acc.IsHit(x, y)
			if err != nil {
				return nil, err
			}
			c := off
			if hit {
				c = on
			}
			img.SetNRGBA(x, h-1-y, c)
		}
	}
	return img, nil
}

// IFSToSVG draws every hit cell as a square of side scale.
func IFSToSVG(acc *ifs.Accumulator, scale float64, fg, bg palette.Color) string {
	if acc == nil {
		return ""
	}

	width := float64(acc.Width()) * scale
	height := float64(acc.Height()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, bg.Hex(), fg.Hex()))

	for y := 0; y < acc.Height(); y++ {
		for x := 0; x < acc.Width(); x++ {
			if hit, _ := acc.IsHit(x, y); !hit {
				continue
			}
			// SVG y grows downward
			top := float64(acc.Height()-1-y) * scale
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(x)*scale, top, scale, scale))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
