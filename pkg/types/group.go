package types

import "fmt"

// Group aggregates member shapes under one name. It holds the same Shape
// pointers as the repository, never copies.
type Group struct {
	base
	children []Shape
}

// NewGroup creates a group over members, in order. An empty member list
// fails with an error wrapping both ErrEmptyGroup and ErrInvalidGeometry.
// Membership rules (members exist and are top-level) are enforced by the
// repository, not here.
func NewGroup(name string, members []Shape) (*Group, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: %w: group %q", ErrInvalidGeometry, ErrEmptyGroup, name)
	}
	children := make([]Shape, len(members))
	copy(children, members)
	return &Group{base: b, children: children}, nil
}

func (g *Group) Kind() ShapeKind { return ShapeGroup }

// BoundingBox returns the union of every child's box.
func (g *Group) BoundingBox() BoundingBox {
	box := g.children[0].BoundingBox()
	for _, child := range g.children[1:] {
		box = box.Expand(child.BoundingBox())
	}
	return box
}

// Move translates every child.
func (g *Group) Move(dx, dy float64) {
	for _, child := range g.children {
		child.Move(dx, dy)
	}
}

// Covers reports whether any child covers p.
func (g *Group) Covers(p Point, tolerance float64) bool {
	for _, child := range g.children {
		if child.Covers(p, tolerance) {
			return true
		}
	}
	return false
}

// Intersects reports whether any child intersects other. Each child is
// tested on its own, so a group whose aggregate box overlaps other can
// still report false when no individual child does.
func (g *Group) Intersects(other Shape) bool {
	for _, child := range g.children {
		if child.Intersects(other) {
			return true
		}
	}
	return false
}

func (g *Group) IsGroup() bool { return true }

// Children returns the members in order. The slice is a copy; the shapes
// are shared.
func (g *Group) Children() []Shape {
	out := make([]Shape, len(g.children))
	copy(out, g.children)
	return out
}

func (g *Group) Describe() Description {
	names := make([]string, len(g.children))
	for i, child := range g.children {
		names[i] = child.Name()
	}
	return Description{
		Kind:     ShapeGroup,
		Name:     g.name,
		ID:       g.id,
		Children: names,
	}
}
