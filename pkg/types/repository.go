package types

// Repository owns shape identity, group membership, and the top-level
// z-order. Index 0 of the z-order is the bottom; the last entry is topmost.
type Repository interface {
	// Register adds a new top-level shape on top of the z-order.
	// Returns ErrDuplicateName if the name is taken.
	Register(shape Shape) error

	// Contains reports whether a shape with the name exists at any depth.
	Contains(name string) bool

	// RequireShape returns the named shape, grouped or not.
	// Returns ErrUnknownShape if absent.
	RequireShape(name string) (Shape, error)

	// RequireTopLevel returns the named shape if it has no owning group.
	// Returns ErrUnknownShape if absent, ErrGroupedShape if grouped.
	RequireTopLevel(name string) (Shape, error)

	// RequireGroup returns the named group.
	// Returns ErrUnknownShape if absent, ErrNotAGroup for other variants.
	RequireGroup(name string) (*Group, error)

	// Delete removes a top-level shape; a group takes its whole subtree
	// with it. Returns the removed names, descendants first.
	// Returns ErrUnknownShape if absent, ErrGroupedShape if grouped.
	Delete(name string) ([]string, error)

	// Group builds a new top-level group from top-level members and places
	// it on top of the z-order. Nothing changes unless every check passes.
	Group(name string, memberNames []string) (*Group, error)

	// Ungroup dissolves a top-level group, putting its children back into
	// the group's z-order slot in their original order.
	Ungroup(name string) ([]Shape, error)

	// FindTopmostAt returns the topmost shape covering p.
	FindTopmostAt(p Point, tolerance float64) (Shape, bool)

	// ListTopLevel returns a snapshot of the z-order, bottom first.
	ListTopLevel() []Shape

	// IsTopLevel reports whether the name exists and has no owning group.
	IsTopLevel(name string) bool

	// Len returns the number of named shapes at every depth.
	Len() int
}
