package flame_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/geometry"
	"github.com/san-kum/flamemaker/internal/palette"
)

func transformation(a geometry.Affine, weights ...float64) flame.Transformation {
	t, err := flame.NewTransformation(a, weights)
	Expect(err).NotTo(HaveOccurred())
	return t
}

func rectangle(x, y, w, h float64) geometry.Rectangle {
	r, err := geometry.NewRectangle(geometry.Pt(x, y), w, h)
	Expect(err).NotTo(HaveOccurred())
	return r
}

func sharkFin() *flame.Flame {
	return flame.New([]flame.Transformation{
		transformation(geometry.NewAffine(-0.4113504, -0.7124804, -0.4, 0.7124795, -0.4113508, 0.8), 1, 0.1, 0, 0, 0, 0),
		transformation(geometry.NewAffine(-0.3957339, 0, -1.6, 0, -0.3957337, 0.2), 0, 0, 0, 0, 0.8, 1),
		transformation(geometry.NewAffine(0.4810169, 0, 1, 0, 0.4810169, 0.9), 1, 0, 0, 0, 0, 0),
	})
}

func cells(acc *flame.Accumulator, fn func(x, y int)) {
	for y := 0; y < acc.Height(); y++ {
		for x := 0; x < acc.Width(); x++ {
			fn(x, y)
		}
	}
}

var _ = Describe("Compute", func() {
	var pal palette.Palette

	BeforeEach(func() {
		var err error
		pal, err = palette.NewInterpolated([]palette.Color{palette.Red, palette.Green, palette.Blue})
		Expect(err).NotTo(HaveOccurred())
	})

	Context("with the identity transformation", func() {
		It("records every sample in the origin's cell", func() {
			fl := flame.New([]flame.Transformation{
				transformation(geometry.Identity, 1, 0, 0, 0, 0, 0),
			})
			for _, size := range [][2]int{{1, 1}, {4, 4}, {5, 3}, {10, 7}} {
				w, h := size[0], size[1]
				acc, err := fl.Compute(rectangle(0, 0, 2, 2), w, h, 2)
				Expect(err).NotTo(HaveOccurred())

				ox, oy := w/2, h/2
				cells(acc, func(x, y int) {
					n, err := acc.HitCount(x, y)
					Expect(err).NotTo(HaveOccurred())
					if x == ox && y == oy {
						Expect(n).To(BeEquivalentTo(2 * w * h))
					} else {
						Expect(n).To(BeZero())
					}
				})
			}
		})
	})

	Context("with the shark fin flame", func() {
		var (
			frame geometry.Rectangle
			acc   *flame.Accumulator
		)
		const width, height, density = 50, 40, 5

		BeforeEach(func() {
			frame = rectangle(-0.25, 0, 5, 4)
			var err error
			acc, err = sharkFin().Compute(frame, width, height, density)
			Expect(err).NotTo(HaveOccurred())
		})

		It("never records more samples than iterations", func() {
			Expect(acc.TotalHits()).To(BeNumerically(">", 0))
			Expect(acc.TotalHits()).To(BeNumerically("<=", density*width*height))
		})

		It("keeps intensity in [0,1] and zero exactly on empty cells", func() {
			cells(acc, func(x, y int) {
				n, _ := acc.HitCount(x, y)
				in, err := acc.Intensity(x, y)
				Expect(err).NotTo(HaveOccurred())
				Expect(in).To(BeNumerically(">=", 0))
				Expect(in).To(BeNumerically("<=", 1))
				Expect(in == 0).To(Equal(n == 0))
			})
		})

		It("shows the background exactly on empty cells", func() {
			cells(acc, func(x, y int) {
				n, _ := acc.HitCount(x, y)
				c, err := acc.Color(pal, palette.Black, x, y)
				Expect(err).NotTo(HaveOccurred())
				Expect(c == palette.Black).To(Equal(n == 0))
			})
		})

		It("is deterministic", func() {
			again, err := sharkFin().Compute(frame, width, height, density)
			Expect(err).NotTo(HaveOccurred())
			cells(acc, func(x, y int) {
				a, _ := acc.HitCount(x, y)
				b, _ := again.HitCount(x, y)
				Expect(a).To(Equal(b))
				ca, _ := acc.Color(pal, palette.Black, x, y)
				cb, _ := again.Color(pal, palette.Black, x, y)
				Expect(ca).To(Equal(cb))
			})
		})

		It("can be recomputed from a builder with other parameters", func() {
			b := flame.NewBuilder(sharkFin())
			small, err := b.Build().Compute(frame, 10, 8, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(small.Width()).To(Equal(10))

			Expect(b.SetVariationWeight(0, flame.Variations[flame.Bubble], 0.5)).To(Succeed())
			edited, err := b.Build().Compute(frame, width, height, density)
			Expect(err).NotTo(HaveOccurred())
			Expect(edited.TotalHits()).To(BeNumerically("<=", density*width*height))
		})
	})

	It("rejects invalid arguments", func() {
		frame := rectangle(0, 0, 2, 2)
		_, err := flame.New(nil).Compute(frame, 4, 4, 1)
		Expect(err).To(MatchError(flame.ErrEmptyFlame))

		fl := sharkFin()
		_, err = fl.Compute(frame, 0, 4, 1)
		Expect(err).To(MatchError(flame.ErrInvalidValue))
		_, err = fl.Compute(frame, 4, 4, -1)
		Expect(err).To(MatchError(flame.ErrInvalidValue))
	})

	It("records nothing at density zero", func() {
		acc, err := sharkFin().Compute(rectangle(0, 0, 2, 2), 4, 4, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(acc.TotalHits()).To(BeZero())
	})
})

var _ = Describe("Ensemble", func() {
	frame := geometry.Rectangle{}

	BeforeEach(func() {
		frame = rectangle(-0.25, 0, 5, 4)
	})

	It("splits every iteration across streams", func() {
		fl := flame.New([]flame.Transformation{
			transformation(geometry.Identity, 1, 0, 0, 0, 0, 0),
		})
		acc, err := flame.NewEnsemble(fl, 3, flame.Seed).Run(context.Background(), rectangle(0, 0, 2, 2), 7, 5, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(acc.TotalHits()).To(BeEquivalentTo(3 * 7 * 5))
		Expect(acc.HitCount(3, 2)).To(BeEquivalentTo(3 * 7 * 5))
	})

	It("is reproducible for a fixed stream count", func() {
		run := func() *flame.Accumulator {
			acc, err := flame.NewEnsemble(sharkFin(), 4, 99).Run(context.Background(), frame, 30, 24, 4)
			Expect(err).NotTo(HaveOccurred())
			return acc
		}
		a, b := run(), run()
		Expect(a.TotalHits()).To(Equal(b.TotalHits()))
		cells(a, func(x, y int) {
			Expect(a.HitCount(x, y)).To(Equal(must(b.HitCount(x, y))))
		})
	})

	It("stops on a canceled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := flame.NewEnsemble(sharkFin(), 2, 1).Run(ctx, frame, 30, 24, 4)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("rejects a non-positive stream count", func() {
		_, err := flame.NewEnsemble(sharkFin(), 0, 1).Run(context.Background(), frame, 4, 4, 1)
		Expect(err).To(MatchError(flame.ErrInvalidValue))
	})
})

func must(n uint64, err error) uint64 {
	Expect(err).NotTo(HaveOccurred())
	return n
}
