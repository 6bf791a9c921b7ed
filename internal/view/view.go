// Package view renders editor results on the console. Numbers are printed
// with two decimals, rounding half away from zero. In JSON mode every
// result is written as a JSON document instead of plain text.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/clevis/internal/editor"
	"github.com/mesh-intelligence/clevis/pkg/types"
)

// NoShape is printed when a point query matches nothing.
const NoShape = "NONE"

// View writes results to out and errors to errOut.
type View struct {
	out      io.Writer
	errOut   io.Writer
	jsonMode bool
	errStyle lipgloss.Style
}

// New creates a View. Error text is styled only when errOut is a terminal.
func New(out, errOut io.Writer, jsonMode bool) *View {
	renderer := lipgloss.NewRenderer(errOut)
	return &View{
		out:      out,
		errOut:   errOut,
		jsonMode: jsonMode,
		errStyle: renderer.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// ShowMessage prints a line of text.
func (v *View) ShowMessage(msg string) {
	fmt.Fprintln(v.out, msg)
}

// ShowError prints an error message on the error writer.
func (v *View) ShowError(err error) {
	if v.jsonMode {
		v.writeJSON(v.errOut, map[string]string{
			"error": err.Error(),
			"kind":  types.ErrorKind(err),
		})
		return
	}
	fmt.Fprintln(v.errOut, v.errStyle.Render(err.Error()))
}

// ShowBoundingBox prints "minX minY width height".
func (v *View) ShowBoundingBox(box types.BoundingBox) {
	if v.jsonMode {
		v.writeJSON(v.out, map[string]float64{
			"x":      box.MinX,
			"y":      box.MinY,
			"width":  box.Width(),
			"height": box.Height(),
		})
		return
	}
	fmt.Fprintln(v.out, strings.Join([]string{
		FormatNumber(box.MinX),
		FormatNumber(box.MinY),
		FormatNumber(box.Width()),
		FormatNumber(box.Height()),
	}, " "))
}

// ShowBool prints true or false.
func (v *View) ShowBool(b bool) {
	if v.jsonMode {
		v.writeJSON(v.out, map[string]bool{"result": b})
		return
	}
	fmt.Fprintln(v.out, b)
}

// ShowShapeAt prints the name of the matched shape, or NONE.
func (v *View) ShowShapeAt(d types.Description, found bool) {
	if v.jsonMode {
		if !found {
			v.writeJSON(v.out, map[string]any{"shape": nil})
			return
		}
		v.writeJSON(v.out, map[string]any{"shape": d})
		return
	}
	if !found {
		fmt.Fprintln(v.out, NoShape)
		return
	}
	fmt.Fprintln(v.out, d.Name)
}

// ShowDescription prints one shape description.
func (v *View) ShowDescription(d types.Description) {
	if v.jsonMode {
		v.writeJSON(v.out, d)
		return
	}
	fmt.Fprintln(v.out, Describe(d))
}

// ShowTree prints a recursive listing, indenting two spaces per depth.
func (v *View) ShowTree(entries []editor.TreeEntry) {
	if v.jsonMode {
		if entries == nil {
			entries = []editor.TreeEntry{}
		}
		v.writeJSON(v.out, entries)
		return
	}
	for _, entry := range entries {
		fmt.Fprintln(v.out, strings.Repeat("  ", entry.Depth)+Describe(entry.Description))
	}
}

func (v *View) writeJSON(w io.Writer, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		fmt.Fprintf(v.errOut, "marshal output: %s\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

// Describe renders a description in command syntax, for example
// "rectangle r 0.00 0.00 2.00 1.00" or "group g [a, b]".
func Describe(d types.Description) string {
	switch d.Kind {
	case types.ShapeSquare:
		r := d.Rectangle
		return fmt.Sprintf("square %s %s %s %s", d.Name, FormatNumber(r.X), FormatNumber(r.Y), FormatNumber(r.Width))
	case types.ShapeRectangle:
		r := d.Rectangle
		return fmt.Sprintf("rectangle %s %s %s %s %s", d.Name,
			FormatNumber(r.X), FormatNumber(r.Y), FormatNumber(r.Width), FormatNumber(r.Height))
	case types.ShapeCircle:
		c := d.Circle
		return fmt.Sprintf("circle %s %s %s %s", d.Name,
			FormatNumber(c.Center.X), FormatNumber(c.Center.Y), FormatNumber(c.Radius))
	case types.ShapeLine:
		l := d.Line
		return fmt.Sprintf("line %s %s %s %s %s", d.Name,
			FormatNumber(l.Start.X), FormatNumber(l.Start.Y), FormatNumber(l.End.X), FormatNumber(l.End.Y))
	case types.ShapeGroup:
		return fmt.Sprintf("group %s [%s]", d.Name, strings.Join(d.Children, ", "))
	default:
		return d.Name
	}
}

// FormatNumber formats v with exactly two decimals. The shortest decimal
// form of v is rounded half away from zero, so 1.005 prints as 1.01.
func FormatNumber(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
