package config

import (
	"sort"

	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/geometry"
)

// Preset is a built-in fractal with the frame and size it is usually
// rendered at.
type Preset struct {
	Name            string
	Description     string
	Frame           FrameConfig
	Width, Height   int
	Transformations []TransformationConfig
}

// TransformationConfig lists the affine coefficients A..F and the six
// variation weights in variation order.
type TransformationConfig struct {
	Affine  [6]float64
	Weights [6]float64
}

var Presets = map[string]*Preset{
	"turbulence": {
		Name:        "turbulence",
		Description: "three rotations blending linear, spherical and swirl",
		Frame:       FrameConfig{X: 0.1, Y: 0.1, Width: 3, Height: 3},
		Width:       500, Height: 500,
		Transformations: []TransformationConfig{
			{Affine: [6]float64{0.7124807, -0.4113509, -0.3, 0.4113513, 0.7124808, -0.7}, Weights: [6]float64{0.5, 0, 0, 0.4, 0, 0}},
			{Affine: [6]float64{0.3731079, -0.6462417, 0.4, 0.6462414, 0.3731076, 0.3}, Weights: [6]float64{1, 0, 0.1, 0, 0, 0}},
			{Affine: [6]float64{0.0842641, -0.314478, -0.1, 0.314478, 0.0842641, 0.3}, Weights: [6]float64{1, 0, 0, 0, 0, 0}},
		},
	},
	"sharkfin": {
		Name:        "sharkfin",
		Description: "shark fin with a bubble and horseshoe tail",
		Frame:       FrameConfig{X: -0.25, Y: 0, Width: 5, Height: 4},
		Width:       500, Height: 400,
		Transformations: []TransformationConfig{
			{Affine: [6]float64{-0.4113504, -0.7124804, -0.4, 0.7124795, -0.4113508, 0.8}, Weights: [6]float64{1, 0.1, 0, 0, 0, 0}},
			{Affine: [6]float64{-0.3957339, 0, -1.6, 0, -0.3957337, 0.2}, Weights: [6]float64{0, 0, 0, 0, 0.8, 1}},
			{Affine: [6]float64{0.4810169, 0, 1, 0, 0.4810169, 0.9}, Weights: [6]float64{1, 0, 0, 0, 0, 0}},
		},
	},
	"fern": {
		Name:        "fern",
		Description: "Barnsley fern with linear variations only",
		Frame:       FrameConfig{X: 0, Y: 5, Width: 6, Height: 10.5},
		Width:       300, Height: 525,
		Transformations: []TransformationConfig{
			{Affine: [6]float64{0, 0, 0, 0, 0.16, 0}, Weights: [6]float64{1, 0, 0, 0, 0, 0}},
			{Affine: [6]float64{0.85, 0.04, 0, -0.04, 0.85, 1.6}, Weights: [6]float64{1, 0, 0, 0, 0, 0}},
			{Affine: [6]float64{0.2, -0.26, 0, 0.23, 0.22, 1.6}, Weights: [6]float64{1, 0, 0, 0, 0, 0}},
			{Affine: [6]float64{-0.15, 0.28, 0, 0.26, 0.24, 0.44}, Weights: [6]float64{1, 0, 0, 0, 0, 0}},
		},
	},
	"swirl": {
		Name:        "swirl",
		Description: "two contractions under swirl and sinusoidal",
		Frame:       FrameConfig{X: 0, Y: 0, Width: 4, Height: 4},
		Width:       400, Height: 400,
		Transformations: []TransformationConfig{
			{Affine: [6]float64{0.6, -0.3, 0.2, 0.3, 0.6, -0.1}, Weights: [6]float64{0.4, 0, 0, 0.6, 0, 0}},
			{Affine: [6]float64{-0.5, 0.2, -0.4, -0.2, -0.5, 0.3}, Weights: [6]float64{0.3, 0.7, 0, 0, 0, 0}},
			{Affine: [6]float64{0.3, 0, 0.8, 0, 0.3, 0.8}, Weights: [6]float64{0, 0, 0, 0, 0, 1}},
		},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flame builds the preset's fractal.
func (p *Preset) Flame() (*flame.Flame, error) {
	ts := make([]flame.Transformation, 0, len(p.Transformations))
	for _, tc := range p.Transformations {
		a := tc.Affine
		t, err := flame.NewTransformation(geometry.NewAffine(a[0], a[1], a[2], a[3], a[4], a[5]), tc.Weights[:])
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return flame.New(ts), nil
}
