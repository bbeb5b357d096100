// Package export writes frozen accumulators as PPM, PNG, BMP or TIFF images.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/palette"
)

var ErrUnknownFormat = errors.New("export: unknown image format")

type Format string

const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return PPM, nil
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Image colors every cell of acc. Row 0 of the image is the top row of the
// grid.
func Image(acc *flame.Accumulator, p palette.Palette, bg palette.Color) (*image.NRGBA, error) {
	w, h := acc.Width(), acc.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, err := acc.Color(p, bg, x, y)
			if err != nil {
				return nil, err
			}
			img.SetNRGBA(x, h-1-y, c.NRGBA())
		}
	}
	return img, nil
}

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func WriteBMP(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

func WriteTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Encode writes img in format f. PPM output uses a maximum channel value
// of 255.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PPM:
		return encodePPM(w, img)
	case PNG:
		return WritePNG(w, img)
	case BMP:
		return WriteBMP(w, img)
	case TIFF:
		return WriteTIFF(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Write renders acc to path in the format given by its extension. max is the
// PPM channel maximum and is ignored by the other formats.
func Write(path string, acc *flame.Accumulator, p palette.Palette, bg palette.Color, max int) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		if f == PPM {
			return WritePPM(w, acc, p, bg, max)
		}
		img, err := Image(acc, p, bg)
		if err != nil {
			return err
		}
		return Encode(w, img, f)
	})
}

// WriteImage writes img to path in the format given by its extension.
func WriteImage(path string, img image.Image) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return Encode(w, img, f)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
