package types

import (
	"fmt"
	"math"
)

// Line is a segment between two distinct endpoints.
type Line struct {
	base
	start, end Point
}

// NewLine creates a segment from (x1, y1) to (x2, y2). The endpoints must
// differ.
func NewLine(name string, x1, y1, x2, y2 float64) (*Line, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	if !finite(x1, y1, x2, y2) {
		return nil, fmt.Errorf("%w: line %q has non-finite coordinates", ErrInvalidGeometry, name)
	}
	if x1 == x2 && y1 == y2 {
		return nil, fmt.Errorf("%w: line %q endpoints must differ", ErrInvalidGeometry, name)
	}
	return &Line{base: b, start: Point{X: x1, Y: y1}, end: Point{X: x2, Y: y2}}, nil
}

// Start returns the first endpoint.
func (l *Line) Start() Point { return l.start }

// End returns the second endpoint.
func (l *Line) End() Point { return l.end }

func (l *Line) Kind() ShapeKind { return ShapeLine }

func (l *Line) BoundingBox() BoundingBox {
	return BoundingBoxFromPoints(l.start, l.end)
}

func (l *Line) Move(dx, dy float64) {
	l.start = l.start.Translate(dx, dy)
	l.end = l.end.Translate(dx, dy)
}

// Covers reports whether p is within tolerance of the segment. The
// projection of p onto the supporting line is clamped to the segment before
// the distance is measured.
func (l *Line) Covers(p Point, tolerance float64) bool {
	vx := l.end.X - l.start.X
	vy := l.end.Y - l.start.Y
	lengthSquared := vx*vx + vy*vy

	t := ((p.X-l.start.X)*vx + (p.Y-l.start.Y)*vy) / lengthSquared
	t = math.Max(0, math.Min(1, t))

	closest := Point{X: l.start.X + t*vx, Y: l.start.Y + t*vy}
	return p.DistanceTo(closest) < tolerance
}

func (l *Line) Intersects(other Shape) bool { return boxIntersects(l, other) }

func (l *Line) IsGroup() bool { return false }

func (l *Line) Children() []Shape { return nil }

func (l *Line) Describe() Description {
	return Description{
		Kind: ShapeLine,
		Name: l.name,
		ID:   l.id,
		Line: &LineGeometry{Start: l.start, End: l.end},
	}
}
