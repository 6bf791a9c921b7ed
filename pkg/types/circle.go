package types

import (
	"fmt"
	"math"
)

// Circle is defined by its center and radius.
type Circle struct {
	base
	center Point
	radius float64
}

// NewCircle creates a circle. The radius must be positive.
func NewCircle(name string, cx, cy, radius float64) (*Circle, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	if !finite(cx, cy, radius) {
		return nil, fmt.Errorf("%w: circle %q has non-finite coordinates", ErrInvalidGeometry, name)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: circle %q must have positive radius", ErrInvalidGeometry, name)
	}
	return &Circle{base: b, center: Point{X: cx, Y: cy}, radius: radius}, nil
}

// Center returns the current center.
func (c *Circle) Center() Point { return c.center }

// Radius returns the radius.
func (c *Circle) Radius() float64 { return c.radius }

func (c *Circle) Kind() ShapeKind { return ShapeCircle }

func (c *Circle) BoundingBox() BoundingBox {
	return BoundingBox{
		MinX: c.center.X - c.radius,
		MinY: c.center.Y - c.radius,
		MaxX: c.center.X + c.radius,
		MaxY: c.center.Y + c.radius,
	}
}

func (c *Circle) Move(dx, dy float64) {
	c.center = c.center.Translate(dx, dy)
}

// Covers reports whether p lies on the circumference within tolerance.
func (c *Circle) Covers(p Point, tolerance float64) bool {
	return math.Abs(p.DistanceTo(c.center)-c.radius) < tolerance
}

func (c *Circle) Intersects(other Shape) bool { return boxIntersects(c, other) }

func (c *Circle) IsGroup() bool { return false }

func (c *Circle) Children() []Shape { return nil }

func (c *Circle) Describe() Description {
	return Description{
		Kind:   ShapeCircle,
		Name:   c.name,
		ID:     c.id,
		Circle: &CircleGeometry{Center: c.center, Radius: c.radius},
	}
}
