package types

import (
	"fmt"
	"math"
)

// Rectangle is an axis-aligned rectangle anchored at (X, Y) and extending
// by Width and Height along the positive axes. A square is a Rectangle with
// the square flag set; it differs only in how it is described.
type Rectangle struct {
	base
	x, y          float64
	width, height float64
	square        bool
}

// NewRectangle creates a rectangle. Width and height must be positive.
func NewRectangle(name string, x, y, width, height float64) (*Rectangle, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	if !finite(x, y, width, height) {
		return nil, fmt.Errorf("%w: rectangle %q has non-finite coordinates", ErrInvalidGeometry, name)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: rectangle %q must have positive dimensions", ErrInvalidGeometry, name)
	}
	return &Rectangle{base: b, x: x, y: y, width: width, height: height}, nil
}

// NewSquare creates a square with the given side length, which must be
// positive.
func NewSquare(name string, x, y, side float64) (*Rectangle, error) {
	if side <= 0 {
		return nil, fmt.Errorf("%w: square %q must have positive side length", ErrInvalidGeometry, name)
	}
	r, err := NewRectangle(name, x, y, side, side)
	if err != nil {
		return nil, err
	}
	r.square = true
	return r, nil
}

// X returns the anchor x coordinate.
func (r *Rectangle) X() float64 { return r.x }

// Y returns the anchor y coordinate.
func (r *Rectangle) Y() float64 { return r.y }

// Width returns the extent along x.
func (r *Rectangle) Width() float64 { return r.width }

// Height returns the extent along y.
func (r *Rectangle) Height() float64 { return r.height }

// IsSquare reports whether the rectangle was created as a square.
func (r *Rectangle) IsSquare() bool { return r.square }

func (r *Rectangle) Kind() ShapeKind {
	if r.square {
		return ShapeSquare
	}
	return ShapeRectangle
}

func (r *Rectangle) BoundingBox() BoundingBox {
	return BoundingBox{MinX: r.x, MinY: r.y, MaxX: r.x + r.width, MaxY: r.y + r.height}
}

func (r *Rectangle) Move(dx, dy float64) {
	r.x += dx
	r.y += dy
}

// Covers reports whether p lies on the outline. The point must fall inside
// the box grown by tolerance and within tolerance of one of the four edges;
// interior points away from every edge are not covered.
func (r *Rectangle) Covers(p Point, tolerance float64) bool {
	box := r.BoundingBox()

	insideX := p.X >= box.MinX-tolerance && p.X <= box.MaxX+tolerance
	insideY := p.Y >= box.MinY-tolerance && p.Y <= box.MaxY+tolerance
	if !insideX || !insideY {
		return false
	}

	nearHorizontal := p.X >= box.MinX && p.X <= box.MaxX &&
		(math.Abs(p.Y-box.MinY) < tolerance || math.Abs(p.Y-box.MaxY) < tolerance)
	nearVertical := p.Y >= box.MinY && p.Y <= box.MaxY &&
		(math.Abs(p.X-box.MinX) < tolerance || math.Abs(p.X-box.MaxX) < tolerance)
	return nearHorizontal || nearVertical
}

func (r *Rectangle) Intersects(other Shape) bool { return boxIntersects(r, other) }

func (r *Rectangle) IsGroup() bool { return false }

func (r *Rectangle) Children() []Shape { return nil }

func (r *Rectangle) Describe() Description {
	return Description{
		Kind: r.Kind(),
		Name: r.name,
		ID:   r.id,
		Rectangle: &RectangleGeometry{
			X:      r.x,
			Y:      r.y,
			Width:  r.width,
			Height: r.height,
		},
	}
}
