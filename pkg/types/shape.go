package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ShapeKind discriminates the variants of the Shape union.
type ShapeKind string

// Shape kinds.
const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeSquare    ShapeKind = "square"
	ShapeCircle    ShapeKind = "circle"
	ShapeLine      ShapeKind = "line"
	ShapeGroup     ShapeKind = "group"
)

// Shape is the closed set of drawable shapes: *Rectangle (which also
// represents squares), *Circle, *Line, and *Group. The unexported marker
// method keeps other packages from adding variants.
type Shape interface {
	// Name returns the unique user-facing name.
	Name() string

	// ID returns the opaque identifier assigned at construction.
	ID() string

	// Kind returns the variant tag.
	Kind() ShapeKind

	// BoundingBox returns the axis-aligned box enclosing the shape.
	BoundingBox() BoundingBox

	// Move translates the shape in place.
	Move(dx, dy float64)

	// Covers reports whether p lies on the shape's outline within tolerance.
	Covers(p Point, tolerance float64) bool

	// Intersects reports whether the shape overlaps other's bounding box.
	Intersects(other Shape) bool

	// IsGroup reports whether the shape is a *Group.
	IsGroup() bool

	// Children returns the members of a group in order, or nil.
	Children() []Shape

	// Describe returns structured data describing the shape.
	Describe() Description

	sealed()
}

// Description is a structured, discriminated snapshot of a shape. Exactly
// one of Rectangle, Circle, Line or Children is populated, according to
// Kind. Squares carry Rectangle geometry with Width equal to Height.
type Description struct {
	Kind      ShapeKind          `json:"kind"`
	Name      string             `json:"name"`
	ID        string             `json:"id"`
	Rectangle *RectangleGeometry `json:"rectangle,omitempty"`
	Circle    *CircleGeometry    `json:"circle,omitempty"`
	Line      *LineGeometry      `json:"line,omitempty"`
	Children  []string           `json:"children,omitempty"`
}

// RectangleGeometry holds the corner and size of a rectangle or square.
type RectangleGeometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CircleGeometry holds the center and radius of a circle.
type CircleGeometry struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// LineGeometry holds the endpoints of a line segment.
type LineGeometry struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// base carries the name and identifier shared by every variant.
type base struct {
	name string
	id   string
}

func newBase(name string) (base, error) {
	if name == "" {
		return base{}, fmt.Errorf("%w: shape name must not be empty", ErrInvalidGeometry)
	}
	return base{name: name, id: generateUUID()}, nil
}

func (b *base) Name() string { return b.name }

func (b *base) ID() string { return b.id }

func (b *base) sealed() {}

// generateUUID generates a new UUID v7 for shape IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// boxIntersects is the default Intersects behavior: a bounding-box overlap
// test against other's bounding box.
func boxIntersects(s, other Shape) bool {
	return s.BoundingBox().Intersects(other.BoundingBox())
}
