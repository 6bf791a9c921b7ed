package types

import (
	"fmt"
	"math"
)

// BoundingBox is an immutable axis-aligned box. MinX <= MaxX and
// MinY <= MaxY always hold; construct it through NewBoundingBox or
// BoundingBoxFromPoints.
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// NewBoundingBox builds a box from explicit bounds.
// Returns ErrInvalidGeometry if a max bound is below its min bound or any
// bound is NaN.
func NewBoundingBox(minX, minY, maxX, maxY float64) (BoundingBox, error) {
	if math.IsNaN(minX) || math.IsNaN(minY) || math.IsNaN(maxX) || math.IsNaN(maxY) {
		return BoundingBox{}, fmt.Errorf("%w: bounding box bound is NaN", ErrInvalidGeometry)
	}
	if maxX < minX || maxY < minY {
		return BoundingBox{}, fmt.Errorf("%w: invalid bounds (%g, %g, %g, %g)", ErrInvalidGeometry, minX, minY, maxX, maxY)
	}
	return BoundingBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, nil
}

// BoundingBoxFromPoints builds the smallest box containing both points.
// The points may be given in any order.
func BoundingBoxFromPoints(p1, p2 Point) BoundingBox {
	return BoundingBox{
		MinX: math.Min(p1.X, p2.X),
		MinY: math.Min(p1.Y, p2.Y),
		MaxX: math.Max(p1.X, p2.X),
		MaxY: math.Max(p1.Y, p2.Y),
	}
}

// Expand returns the smallest box enclosing both b and other.
func (b BoundingBox) Expand(other BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// Width returns MaxX - MinX.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Intersects reports whether the two boxes overlap with positive area.
// Boxes that only touch along an edge or at a corner do not intersect.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.MaxX > other.MinX && other.MaxX > b.MinX &&
		b.MaxY > other.MinY && other.MaxY > b.MinY
}
