// Package editor exposes the operations a command front end needs: shape
// creation, grouping, deletion, movement, and spatial queries. It takes
// primitive parameters and returns structured results or typed errors from
// pkg/types; it does no formatting and no I/O.
//
// All access to the underlying repository is serialized by one mutex, so
// the shared shape pointers held by groups and the name map are never
// mutated concurrently.
package editor

import (
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/clevis/pkg/types"
)

// Editor is the core surface over a shape repository.
type Editor struct {
	mu     sync.Mutex
	repo   types.Repository
	logger *slog.Logger
}

// TreeEntry is one line of a recursive listing. Depth 0 is a top-level
// shape; each nesting level adds one.
type TreeEntry struct {
	Depth       int               `json:"depth"`
	Description types.Description `json:"shape"`
}

// New creates an Editor over repo. A nil logger uses slog.Default().
func New(repo types.Repository, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{repo: repo, logger: logger}
}

// CreateRectangle registers a rectangle on top of the z-order.
func (e *Editor) CreateRectangle(name string, x, y, width, height float64) (types.Description, error) {
	r, err := types.NewRectangle(name, x, y, width, height)
	if err != nil {
		return types.Description{}, err
	}
	return e.register(r)
}

// CreateSquare registers a square on top of the z-order.
func (e *Editor) CreateSquare(name string, x, y, side float64) (types.Description, error) {
	s, err := types.NewSquare(name, x, y, side)
	if err != nil {
		return types.Description{}, err
	}
	return e.register(s)
}

// CreateCircle registers a circle on top of the z-order.
func (e *Editor) CreateCircle(name string, cx, cy, radius float64) (types.Description, error) {
	c, err := types.NewCircle(name, cx, cy, radius)
	if err != nil {
		return types.Description{}, err
	}
	return e.register(c)
}

// CreateLine registers a line segment on top of the z-order.
func (e *Editor) CreateLine(name string, x1, y1, x2, y2 float64) (types.Description, error) {
	l, err := types.NewLine(name, x1, y1, x2, y2)
	if err != nil {
		return types.Description{}, err
	}
	return e.register(l)
}

func (e *Editor) register(shape types.Shape) (types.Description, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.repo.Register(shape); err != nil {
		return types.Description{}, err
	}
	e.logger.Debug("shape created", "name", shape.Name(), "kind", shape.Kind(), "id", shape.ID())
	return shape.Describe(), nil
}

// Group combines top-level members into a new group placed on top.
func (e *Editor) Group(name string, members []string) (types.Description, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, err := e.repo.Group(name, members)
	if err != nil {
		return types.Description{}, err
	}
	e.logger.Debug("shapes grouped", "group", name, "members", members)
	return g.Describe(), nil
}

// Ungroup dissolves a top-level group and returns its restored children.
func (e *Editor) Ungroup(name string) ([]types.Description, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	children, err := e.repo.Ungroup(name)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("group dissolved", "group", name, "children", len(children))
	return describeAll(children), nil
}

// Delete removes a top-level shape and, for a group, its whole subtree.
// Returns the removed names.
func (e *Editor) Delete(name string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed, err := e.repo.Delete(name)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("shape deleted", "name", name, "removed", len(removed))
	return removed, nil
}

// Move translates a top-level shape. Grouped shapes are moved through
// their top-level group.
func (e *Editor) Move(name string, dx, dy float64) (types.Description, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.repo.RequireTopLevel(name)
	if err != nil {
		return types.Description{}, err
	}
	s.Move(dx, dy)
	e.logger.Debug("shape moved", "name", name, "dx", dx, "dy", dy)
	return s.Describe(), nil
}

// BoundingBoxOf returns the bounding box of any named shape.
func (e *Editor) BoundingBoxOf(name string) (types.BoundingBox, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.repo.RequireShape(name)
	if err != nil {
		return types.BoundingBox{}, err
	}
	return s.BoundingBox(), nil
}

// Intersects reports whether the bounding boxes of the two named shapes
// overlap.
func (e *Editor) Intersects(nameA, nameB string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, err := e.repo.RequireShape(nameA)
	if err != nil {
		return false, err
	}
	b, err := e.repo.RequireShape(nameB)
	if err != nil {
		return false, err
	}
	return a.BoundingBox().Intersects(b.BoundingBox()), nil
}

// CoveredShapeAt returns the topmost top-level shape whose outline passes
// within tolerance of (x, y).
func (e *Editor) CoveredShapeAt(x, y, tolerance float64) (types.Description, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.repo.FindTopmostAt(types.NewPoint(x, y), tolerance)
	if !ok {
		return types.Description{}, false
	}
	return s.Describe(), true
}

// Describe returns the structured description of any named shape.
func (e *Editor) Describe(name string) (types.Description, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.repo.RequireShape(name)
	if err != nil {
		return types.Description{}, err
	}
	return s.Describe(), nil
}

// ListTopLevel describes the top-level shapes, bottom first.
func (e *Editor) ListTopLevel() []types.Description {
	e.mu.Lock()
	defer e.mu.Unlock()

	return describeAll(e.repo.ListTopLevel())
}

// ListAll walks every shape depth-first, topmost first. A group's children
// follow it, also listed last to first.
func (e *Editor) ListAll() []TreeEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []TreeEntry
	top := e.repo.ListTopLevel()
	for i := len(top) - 1; i >= 0; i-- {
		out = appendTree(out, top[i], 0)
	}
	return out
}

func appendTree(out []TreeEntry, s types.Shape, depth int) []TreeEntry {
	out = append(out, TreeEntry{Depth: depth, Description: s.Describe()})
	children := s.Children()
	for i := len(children) - 1; i >= 0; i-- {
		out = appendTree(out, children[i], depth+1)
	}
	return out
}

func describeAll(shapes []types.Shape) []types.Description {
	out := make([]types.Description, len(shapes))
	for i, s := range shapes {
		out[i] = s.Describe()
	}
	return out
}
