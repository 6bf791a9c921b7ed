package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/clevis/pkg/types"
)

// names returns the names of shapes in order.
func names(shapes []types.Shape) []string {
	out := make([]string, len(shapes))
	for i, s := range shapes {
		out[i] = s.Name()
	}
	return out
}

func mustRect(t *testing.T, name string, x, y, w, h float64) *types.Rectangle {
	t.Helper()
	r, err := types.NewRectangle(name, x, y, w, h)
	require.NoError(t, err)
	return r
}

// newRepo registers one unit square-ish rectangle per name, bottom first.
func newRepo(t *testing.T, shapeNames ...string) *Repository {
	t.Helper()
	repo := New()
	for i, name := range shapeNames {
		require.NoError(t, repo.Register(mustRect(t, name, float64(i*10), 0, 1, 1)))
	}
	return repo
}

func TestRegister(t *testing.T) {
	repo := newRepo(t, "a", "b")

	assert.Equal(t, []string{"a", "b"}, names(repo.ListTopLevel()))
	assert.True(t, repo.Contains("a"))
	assert.True(t, repo.IsTopLevel("b"))
	assert.False(t, repo.IsTopLevel("missing"))
	assert.Equal(t, 2, repo.Len())
}

func TestRegisterDuplicateNameLeavesStateUnchanged(t *testing.T) {
	repo := newRepo(t, "a", "b")
	original, err := repo.RequireShape("a")
	require.NoError(t, err)

	err = repo.Register(mustRect(t, "a", 100, 100, 5, 5))
	assert.ErrorIs(t, err, types.ErrDuplicateName)

	got, err := repo.RequireShape("a")
	require.NoError(t, err)
	assert.Same(t, original, got)
	assert.Equal(t, []string{"a", "b"}, names(repo.ListTopLevel()))
	assert.Equal(t, 2, repo.Len())
}

func TestRequireLookups(t *testing.T) {
	repo := newRepo(t, "a", "b")
	_, err := repo.Group("g", []string{"a"})
	require.NoError(t, err)

	_, err = repo.RequireShape("missing")
	assert.ErrorIs(t, err, types.ErrUnknownShape)

	_, err = repo.RequireTopLevel("missing")
	assert.ErrorIs(t, err, types.ErrUnknownShape)

	_, err = repo.RequireTopLevel("a")
	assert.ErrorIs(t, err, types.ErrGroupedShape)

	s, err := repo.RequireShape("a")
	require.NoError(t, err)
	assert.Equal(t, "a", s.Name())

	_, err = repo.RequireGroup("b")
	assert.ErrorIs(t, err, types.ErrNotAGroup)

	_, err = repo.RequireGroup("missing")
	assert.ErrorIs(t, err, types.ErrUnknownShape)

	g, err := repo.RequireGroup("g")
	require.NoError(t, err)
	assert.Equal(t, "g", g.Name())
}

func TestGroupPlacesGroupOnTop(t *testing.T) {
	repo := newRepo(t, "a", "b", "c", "d")

	g, err := repo.Group("g", []string{"c", "a"})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "d", "g"}, names(repo.ListTopLevel()))
	assert.Equal(t, []string{"c", "a"}, names(g.Children()))
	assert.False(t, repo.IsTopLevel("a"))
	assert.False(t, repo.IsTopLevel("c"))
	assert.True(t, repo.IsTopLevel("g"))
	assert.Equal(t, 5, repo.Len())
}

func TestGroupValidatesBeforeMutating(t *testing.T) {
	tests := []struct {
		name    string
		group   string
		members []string
		wantErr error
	}{
		{name: "group name taken", group: "b", members: []string{"a"}, wantErr: types.ErrDuplicateName},
		{name: "empty member list", group: "g2", members: nil, wantErr: types.ErrEmptyGroup},
		{name: "unknown member after valid one", group: "g2", members: []string{"a", "zzz"}, wantErr: types.ErrUnknownShape},
		{name: "grouped member after valid one", group: "g2", members: []string{"a", "c"}, wantErr: types.ErrGroupedShape},
		{name: "member listed twice", group: "g2", members: []string{"a", "a"}, wantErr: types.ErrDuplicateName},
		{name: "empty group name", group: "", members: []string{"a"}, wantErr: types.ErrInvalidGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo(t, "a", "b", "c")
			_, err := repo.Group("g1", []string{"c"})
			require.NoError(t, err)
			before := names(repo.ListTopLevel())

			_, err = repo.Group(tt.group, tt.members)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, names(repo.ListTopLevel()), "z-order must not change on error")
			assert.True(t, repo.IsTopLevel("a"), "members must stay top-level on error")
			assert.False(t, repo.Contains("g2"))
			assert.Equal(t, 4, repo.Len())
		})
	}
}

func TestGroupUngroupRoundTrip(t *testing.T) {
	repo := newRepo(t, "x", "a", "y", "b", "z")

	_, err := repo.Group("g", []string{"a", "b"})
	require.NoError(t, err)
	// Raise another shape above the group so the slot is not the top.
	require.NoError(t, repo.Register(mustRect(t, "w", 50, 50, 1, 1)))
	assert.Equal(t, []string{"x", "y", "z", "g", "w"}, names(repo.ListTopLevel()))

	restored, err := repo.Ungroup("g")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, names(restored))
	assert.Equal(t, []string{"x", "y", "z", "a", "b", "w"}, names(repo.ListTopLevel()))
	assert.True(t, repo.IsTopLevel("a"))
	assert.True(t, repo.IsTopLevel("b"))
	assert.False(t, repo.Contains("g"))
}

func TestUngroupErrors(t *testing.T) {
	repo := newRepo(t, "a", "b")
	_, err := repo.Group("inner", []string{"a"})
	require.NoError(t, err)
	_, err = repo.Group("outer", []string{"inner", "b"})
	require.NoError(t, err)

	_, err = repo.Ungroup("missing")
	assert.ErrorIs(t, err, types.ErrUnknownShape)

	_, err = repo.Ungroup("a")
	assert.ErrorIs(t, err, types.ErrNotAGroup)

	_, err = repo.Ungroup("inner")
	assert.ErrorIs(t, err, types.ErrGroupedShape)

	restored, err := repo.Ungroup("outer")
	require.NoError(t, err)
	assert.Equal(t, []string{"inner", "b"}, names(restored))
	assert.True(t, repo.IsTopLevel("inner"))
	assert.False(t, repo.IsTopLevel("a"), "grandchildren stay grouped")
}

func TestDelete(t *testing.T) {
	repo := newRepo(t, "a", "b")

	removed, err := repo.Delete("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, removed)
	assert.Equal(t, []string{"b"}, names(repo.ListTopLevel()))

	_, err = repo.Delete("a")
	assert.ErrorIs(t, err, types.ErrUnknownShape)
}

func TestDeleteGroupedMemberFails(t *testing.T) {
	repo := newRepo(t, "a", "b")
	_, err := repo.Group("g", []string{"a", "b"})
	require.NoError(t, err)

	_, err = repo.Delete("a")
	assert.ErrorIs(t, err, types.ErrGroupedShape)
	assert.True(t, repo.Contains("a"))
}

func TestDeleteGroupIsRecursive(t *testing.T) {
	repo := newRepo(t, "a", "b", "c", "keep")
	_, err := repo.Group("inner", []string{"a", "b"})
	require.NoError(t, err)
	_, err = repo.Group("outer", []string{"inner", "c"})
	require.NoError(t, err)

	removed, err := repo.Delete("outer")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "inner", "c", "outer"}, removed)
	for _, name := range removed {
		_, err := repo.RequireShape(name)
		assert.ErrorIs(t, err, types.ErrUnknownShape, name)
	}
	assert.Equal(t, []string{"keep"}, names(repo.ListTopLevel()))
	assert.Equal(t, 1, repo.Len())
}

func TestFindTopmostAt(t *testing.T) {
	repo := New()
	require.NoError(t, repo.Register(mustRect(t, "r", 0, 0, 2, 2)))
	require.NoError(t, repo.Register(mustRect(t, "r2", 0, 0, 2, 2)))

	s, ok := repo.FindTopmostAt(types.NewPoint(1, 0), types.DefaultTolerance)
	require.True(t, ok)
	assert.Equal(t, "r2", s.Name(), "most recently registered shape wins")

	_, ok = repo.FindTopmostAt(types.NewPoint(1, 1), types.DefaultTolerance)
	assert.False(t, ok, "interior points are not covered")

	_, err := repo.Group("g", []string{"r"})
	require.NoError(t, err)
	s, ok = repo.FindTopmostAt(types.NewPoint(1, 0), types.DefaultTolerance)
	require.True(t, ok)
	assert.Equal(t, "g", s.Name(), "the new group is raised above r2")
}

func TestGroupedMemberMoveIsVisibleByName(t *testing.T) {
	repo := newRepo(t, "a", "b")
	_, err := repo.Group("g", []string{"a", "b"})
	require.NoError(t, err)

	_, err = repo.RequireTopLevel("a")
	require.ErrorIs(t, err, types.ErrGroupedShape)

	g, err := repo.RequireGroup("g")
	require.NoError(t, err)
	g.Move(3, 4)

	a, err := repo.RequireShape("a")
	require.NoError(t, err)
	assert.Equal(t, types.BoundingBox{MinX: 3, MinY: 4, MaxX: 4, MaxY: 5}, a.BoundingBox())

	restored, err := repo.Ungroup("g")
	require.NoError(t, err)
	assert.Same(t, a, restored[0], "ungroup returns the same shape objects")
}

func TestListTopLevelIsSnapshot(t *testing.T) {
	repo := newRepo(t, "a", "b")
	list := repo.ListTopLevel()
	list[0] = nil

	assert.Equal(t, []string{"a", "b"}, names(repo.ListTopLevel()))
}
