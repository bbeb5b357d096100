package geometry

import "fmt"

// Rectangle is an axis-aligned window of the plane. Edges and aspect ratio
// are computed once at construction.
type Rectangle struct {
	center        Point
	width, height float64

	left, right, bottom, top float64
	aspectRatio              float64
}

// NewRectangle returns the rectangle centered on center. Width and height
// must be strictly positive.
func NewRectangle(center Point, width, height float64) (Rectangle, error) {
	if width <= 0 || height <= 0 {
		return Rectangle{}, fmt.Errorf("%w: rectangle %gx%g", ErrInvalidValue, width, height)
	}
	return Rectangle{
		center:      center,
		width:       width,
		height:      height,
		left:        center.X - width/2,
		right:       center.X + width/2,
		bottom:      center.Y - height/2,
		top:         center.Y + height/2,
		aspectRatio: width / height,
	}, nil
}

func (r Rectangle) Center() Point        { return r.center }
func (r Rectangle) Width() float64       { return r.width }
func (r Rectangle) Height() float64      { return r.height }
func (r Rectangle) Left() float64        { return r.left }
func (r Rectangle) Right() float64       { return r.right }
func (r Rectangle) Bottom() float64      { return r.bottom }
func (r Rectangle) Top() float64         { return r.top }
func (r Rectangle) AspectRatio() float64 { return r.aspectRatio }

// Contains reports whether p lies in the half-open window
// [left, right) x [bottom, top). Adjacent rectangles never share a point.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.left && p.X < r.right && p.Y >= r.bottom && p.Y < r.top
}

// ExpandToAspectRatio returns the smallest rectangle with the same center
// that contains r and has the given aspect ratio.
func (r Rectangle) ExpandToAspectRatio(ratio float64) (Rectangle, error) {
	if ratio <= 0 {
		return Rectangle{}, fmt.Errorf("%w: aspect ratio %g", ErrInvalidValue, ratio)
	}
	switch {
	case ratio > r.aspectRatio:
		return NewRectangle(r.center, r.height*ratio, r.height)
	case ratio < r.aspectRatio:
		return NewRectangle(r.center, r.width, r.width/ratio)
	default:
		return r, nil
	}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%s,%g,%g)", r.center, r.width, r.height)
}
