package view

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/clevis/internal/editor"
	"github.com/mesh-intelligence/clevis/pkg/types"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0.00"},
		{in: 1, want: "1.00"},
		{in: 1.005, want: "1.01"},
		{in: 2.675, want: "2.68"},
		{in: -1.005, want: "-1.01"},
		{in: 1.004, want: "1.00"},
		{in: 123456.789, want: "123456.79"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		desc types.Description
		want string
	}{
		{
			name: "rectangle",
			desc: types.Description{Kind: types.ShapeRectangle, Name: "r",
				Rectangle: &types.RectangleGeometry{X: 0, Y: 1, Width: 2, Height: 3.5}},
			want: "rectangle r 0.00 1.00 2.00 3.50",
		},
		{
			name: "square",
			desc: types.Description{Kind: types.ShapeSquare, Name: "s",
				Rectangle: &types.RectangleGeometry{X: 1, Y: 1, Width: 2, Height: 2}},
			want: "square s 1.00 1.00 2.00",
		},
		{
			name: "circle",
			desc: types.Description{Kind: types.ShapeCircle, Name: "c",
				Circle: &types.CircleGeometry{Center: types.NewPoint(1, 2), Radius: 3}},
			want: "circle c 1.00 2.00 3.00",
		},
		{
			name: "line",
			desc: types.Description{Kind: types.ShapeLine, Name: "l",
				Line: &types.LineGeometry{Start: types.NewPoint(0, 0), End: types.NewPoint(1, -1)}},
			want: "line l 0.00 0.00 1.00 -1.00",
		},
		{
			name: "group",
			desc: types.Description{Kind: types.ShapeGroup, Name: "g", Children: []string{"a", "b"}},
			want: "group g [a, b]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.desc))
		})
	}
}

func TestViewPlainOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	v := New(&out, &errOut, false)

	v.ShowBoundingBox(types.BoundingBox{MinX: -1, MinY: 0, MaxX: 2, MaxY: 2.5})
	v.ShowBool(true)
	v.ShowShapeAt(types.Description{}, false)
	v.ShowShapeAt(types.Description{Name: "r"}, true)
	v.ShowTree([]editor.TreeEntry{
		{Depth: 0, Description: types.Description{Kind: types.ShapeGroup, Name: "g", Children: []string{"c"}}},
		{Depth: 1, Description: types.Description{Kind: types.ShapeCircle, Name: "c",
			Circle: &types.CircleGeometry{Radius: 1}}},
	})
	v.ShowError(fmt.Errorf("%w: x", types.ErrUnknownShape))

	assert.Equal(t, "-1.00 0.00 3.00 2.50\ntrue\nNONE\nr\ngroup g [c]\n  circle c 0.00 0.00 1.00\n", out.String())
	assert.Equal(t, "undefined shape: x\n", errOut.String(), "errors are unstyled when not writing to a terminal")
}

func TestViewJSONOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	v := New(&out, &errOut, true)

	v.ShowDescription(types.Description{Kind: types.ShapeCircle, Name: "c", ID: "id-1",
		Circle: &types.CircleGeometry{Center: types.NewPoint(1, 2), Radius: 3}})

	var got types.Description
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "c", got.Name)
	assert.Equal(t, 3.0, got.Circle.Radius)

	v.ShowError(errors.Join(types.ErrGroupedShape))
	var errDoc map[string]string
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &errDoc))
	assert.Equal(t, types.KindGroupedShape, errDoc["kind"])
}
