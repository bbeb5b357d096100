package palette

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func closeColor(a, b Color) bool {
	const eps = 1e-12
	return math.Abs(a.r-b.r) <= eps && math.Abs(a.g-b.g) <= eps && math.Abs(a.b-b.b) <= eps
}

func TestNewColor_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
	}{
		{"negative red", -0.1, 0, 0},
		{"green above one", 0, 1.01, 0},
		{"blue nan", 0, 0, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewColor(tt.r, tt.g, tt.b); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestColor_MixWith(t *testing.T) {
	c, _ := NewColor(0.2, 0.4, 0.9)
	other, _ := NewColor(0.7, 0.1, 0.3)

	for _, p := range []float64{0, 0.1, 0.25, 0.5, 0.9, 1} {
		got, err := c.MixWith(c, p)
		if err != nil {
			t.Fatalf("mix: %v", err)
		}
		if !closeColor(got, c) {
			t.Errorf("c.MixWith(c, %v) = %v, want %v", p, got, c)
		}
	}

	if got, _ := c.MixWith(other, 0); got != c {
		t.Errorf("MixWith(other, 0) = %v, want %v", got, c)
	}
	if got, _ := c.MixWith(other, 1); got != other {
		t.Errorf("MixWith(other, 1) = %v, want %v", got, other)
	}

	half, _ := Black.MixWith(White, 0.5)
	if !closeColor(half, Color{0.5, 0.5, 0.5}) {
		t.Errorf("half mix = %v", half)
	}

	for _, p := range []float64{-0.01, 1.01} {
		if _, err := c.MixWith(other, p); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("proportion %v: expected ErrInvalidValue, got %v", p, err)
		}
	}
}

func TestSRGBEncode_MonotonicAndBounded(t *testing.T) {
	for _, max := range []int{1, 100, 255, 65535} {
		prev := SRGBEncode(0, max)
		for i := 0; i <= 1000; i++ {
			v := float64(i) / 1000
			got := SRGBEncode(v, max)
			if got < 0 || got > max {
				t.Fatalf("SRGBEncode(%v, %d) = %d out of range", v, max, got)
			}
			if got < prev {
				t.Fatalf("SRGBEncode not monotonic at %v (max %d): %d < %d", v, max, got, prev)
			}
			prev = got
		}
	}

	if got := SRGBEncode(0.001, 1000); got != 12 {
		t.Errorf("linear segment: got %d, want 12", got)
	}
	if got := SRGBEncode(0.5, 100); got != 73 {
		t.Errorf("gamma segment: got %d, want 73", got)
	}
}

func TestSRGBEncode_FullIntensityTruncates(t *testing.T) {
	if got := SRGBEncode(1, 255); got != 254 {
		t.Errorf("SRGBEncode(1, 255) = %d, want 254", got)
	}
	if got := SRGBEncode(1, 100); got != 99 {
		t.Errorf("SRGBEncode(1, 100) = %d, want 99", got)
	}
	if got := White.PackedRGB(); got != 0xfefefe {
		t.Errorf("White.PackedRGB() = %#x, want 0xfefefe", got)
	}
}

func TestColor_PackedRGB(t *testing.T) {
	if got := Black.PackedRGB(); got != 0 {
		t.Errorf("black packed = %#x", got)
	}
	red := Red.PackedRGB()
	if red&0xffff != 0 || red>>16 < 0xfe {
		t.Errorf("red packed = %#x", red)
	}
	if n := Blue.NRGBA(); n.R != 0 || n.G != 0 || n.B < 0xfe || n.A != 0xff {
		t.Errorf("blue nrgba = %v", n)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff0000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !closeColor(c, Red) {
		t.Errorf("got %v, want red", c)
	}

	if _, err := ParseHex("not-a-color"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestInterpolated(t *testing.T) {
	colors := []Color{Red, Green, Blue}
	p, err := NewInterpolated(colors)
	if err != nil {
		t.Fatalf("new palette: %v", err)
	}

	tests := []struct {
		index float64
		want  Color
	}{
		{0, Red},
		{0.25, Color{0.5, 0.5, 0}},
		{0.5, Green},
		{0.75, Color{0, 0.5, 0.5}},
		{1, Blue},
	}

	for _, tt := range tests {
		got, err := p.ColorForIndex(tt.index)
		if err != nil {
			t.Fatalf("index %v: %v", tt.index, err)
		}
		if !closeColor(got, tt.want) {
			t.Errorf("ColorForIndex(%v) = %v, want %v", tt.index, got, tt.want)
		}
	}

	for _, idx := range []float64{-0.5, 1.5} {
		if _, err := p.ColorForIndex(idx); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("index %v: expected ErrInvalidValue, got %v", idx, err)
		}
	}

	colors[0] = White
	if got, _ := p.ColorForIndex(0); got != Red {
		t.Error("palette aliases the caller's slice")
	}
}

func TestInterpolated_TooFewColors(t *testing.T) {
	for _, colors := range [][]Color{nil, {Red}} {
		if _, err := NewInterpolated(colors); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("%d colors: expected ErrInvalidValue, got %v", len(colors), err)
		}
	}
}

func TestRandom(t *testing.T) {
	if _, err := NewRandomSeeded(1, 1); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}

	p, err := NewRandom(5, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("new random: %v", err)
	}
	first, _ := p.ColorForIndex(0.3)
	second, _ := p.ColorForIndex(0.3)
	if first != second {
		t.Error("random palette changed between queries")
	}

	q, _ := NewRandomSeeded(5, 7)
	for i := 0; i <= 10; i++ {
		idx := float64(i) / 10
		a, _ := p.ColorForIndex(idx)
		b, _ := q.ColorForIndex(idx)
		if a != b {
			t.Errorf("same seed gave different colors at %v", idx)
		}
	}

	colors := p.Colors()
	if len(colors) != 5 {
		t.Fatalf("expected 5 colors, got %d", len(colors))
	}
	for _, c := range colors {
		if !inUnit(c.r) || !inUnit(c.g) || !inUnit(c.b) {
			t.Errorf("channel out of range: %v", c)
		}
	}
}
