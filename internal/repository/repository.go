// Package repository implements the in-memory shape repository: the
// canonical name map, the top-level z-order stack, and the parent links
// that record group membership.
//
// The repository is not safe for concurrent use; callers serialize access
// (see internal/editor).
package repository

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/clevis/pkg/types"
)

// entry pairs a shape with the group that currently owns it, if any.
type entry struct {
	shape  types.Shape
	parent *types.Group
}

// Repository implements types.Repository. A name is in zOrder exactly when
// its entry has no parent.
type Repository struct {
	entries map[string]*entry
	zOrder  []types.Shape
}

var _ types.Repository = (*Repository)(nil)

// New creates an empty repository.
func New() *Repository {
	return &Repository{
		entries: make(map[string]*entry),
	}
}

// Register adds shape as a new top-level entry on top of the z-order.
// Returns ErrDuplicateName if the name is already used.
func (r *Repository) Register(shape types.Shape) error {
	if r.Contains(shape.Name()) {
		return fmt.Errorf("%w: %s", types.ErrDuplicateName, shape.Name())
	}
	r.entries[shape.Name()] = &entry{shape: shape}
	r.zOrder = append(r.zOrder, shape)
	return nil
}

// Contains reports whether a shape with the name exists at any depth.
func (r *Repository) Contains(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// RequireShape returns the named shape whether or not it is grouped.
func (r *Repository) RequireShape(name string) (types.Shape, error) {
	e, err := r.requireEntry(name)
	if err != nil {
		return nil, err
	}
	return e.shape, nil
}

// RequireTopLevel returns the named shape, failing with ErrGroupedShape
// when it belongs to a group.
func (r *Repository) RequireTopLevel(name string) (types.Shape, error) {
	e, err := r.requireEntry(name)
	if err != nil {
		return nil, err
	}
	if e.parent != nil {
		return nil, fmt.Errorf("%w: %s is grouped in %s", types.ErrGroupedShape, name, e.parent.Name())
	}
	return e.shape, nil
}

// RequireGroup returns the named group.
func (r *Repository) RequireGroup(name string) (*types.Group, error) {
	e, err := r.requireEntry(name)
	if err != nil {
		return nil, err
	}
	g, ok := e.shape.(*types.Group)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrNotAGroup, name)
	}
	return g, nil
}

// Delete removes a top-level shape. Deleting a group removes every
// descendant from both the map and the z-order. The removed names are
// returned in depth-first order, descendants before their group.
func (r *Repository) Delete(name string) ([]string, error) {
	e, err := r.requireEntry(name)
	if err != nil {
		return nil, err
	}
	if e.parent != nil {
		return nil, fmt.Errorf("%w: cannot delete %s, ungroup %s first", types.ErrGroupedShape, name, e.parent.Name())
	}
	var removed []string
	r.deleteRecursive(e, &removed)
	return removed, nil
}

// Group creates a group named name over memberNames. Every precondition is
// checked before anything is changed:
//   - ErrDuplicateName if name exists or a member is listed twice,
//   - ErrEmptyGroup if memberNames is empty,
//   - ErrUnknownShape or ErrGroupedShape for a missing or grouped member.
//
// The members leave the z-order and the group is placed on top, wherever
// the members used to sit.
func (r *Repository) Group(name string, memberNames []string) (*types.Group, error) {
	if r.Contains(name) {
		return nil, fmt.Errorf("%w: %s", types.ErrDuplicateName, name)
	}
	if len(memberNames) == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrEmptyGroup, name)
	}

	seen := make(map[string]bool, len(memberNames))
	members := make([]types.Shape, 0, len(memberNames))
	for _, memberName := range memberNames {
		if seen[memberName] {
			return nil, fmt.Errorf("%w: %s listed twice", types.ErrDuplicateName, memberName)
		}
		seen[memberName] = true

		e, err := r.requireEntry(memberName)
		if err != nil {
			return nil, err
		}
		if e.parent != nil {
			return nil, fmt.Errorf("%w: %s already belongs to %s", types.ErrGroupedShape, memberName, e.parent.Name())
		}
		members = append(members, e.shape)
	}

	group, err := types.NewGroup(name, members)
	if err != nil {
		return nil, err
	}

	for _, member := range members {
		r.entries[member.Name()].parent = group
		r.removeFromStack(member)
	}
	r.entries[name] = &entry{shape: group}
	r.zOrder = append(r.zOrder, group)
	return group, nil
}

// Ungroup dissolves a top-level group. Its children become top-level again
// and occupy the group's former z-order slot in their original order.
func (r *Repository) Ungroup(name string) ([]types.Shape, error) {
	group, err := r.RequireGroup(name)
	if err != nil {
		return nil, err
	}
	if parent := r.entries[name].parent; parent != nil {
		return nil, fmt.Errorf("%w: cannot ungroup %s nested in %s", types.ErrGroupedShape, name, parent.Name())
	}

	index := slices.Index(r.zOrder, types.Shape(group))
	if index < 0 {
		index = len(r.zOrder)
	} else {
		r.zOrder = slices.Delete(r.zOrder, index, index+1)
	}
	delete(r.entries, name)

	children := group.Children()
	for _, child := range children {
		r.entries[child.Name()].parent = nil
	}
	r.zOrder = slices.Insert(r.zOrder, index, children...)
	return children, nil
}

// FindTopmostAt scans the z-order from the top and returns the first shape
// covering p.
func (r *Repository) FindTopmostAt(p types.Point, tolerance float64) (types.Shape, bool) {
	for i := len(r.zOrder) - 1; i >= 0; i-- {
		if r.zOrder[i].Covers(p, tolerance) {
			return r.zOrder[i], true
		}
	}
	return nil, false
}

// ListTopLevel returns a copy of the z-order, bottom first.
func (r *Repository) ListTopLevel() []types.Shape {
	return slices.Clone(r.zOrder)
}

// IsTopLevel reports whether the name exists and has no owning group.
func (r *Repository) IsTopLevel(name string) bool {
	e, ok := r.entries[name]
	return ok && e.parent == nil
}

// Len returns the number of named shapes, grouped or not.
func (r *Repository) Len() int {
	return len(r.entries)
}

func (r *Repository) deleteRecursive(e *entry, removed *[]string) {
	for _, child := range e.shape.Children() {
		if ce, ok := r.entries[child.Name()]; ok {
			r.deleteRecursive(ce, removed)
		}
	}
	r.removeFromStack(e.shape)
	delete(r.entries, e.shape.Name())
	*removed = append(*removed, e.shape.Name())
}

func (r *Repository) removeFromStack(shape types.Shape) {
	if i := slices.Index(r.zOrder, shape); i >= 0 {
		r.zOrder = slices.Delete(r.zOrder, i, i+1)
	}
}

func (r *Repository) requireEntry(name string) (*entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownShape, name)
	}
	return e, nil
}
