// Package layer defines the rectangle records the conversion operates on.
//
// A [Layer] is an axis-aligned box in integer pixel coordinates with the
// visual attributes needed to render it as a table cell: resolved CSS, text
// runs for text layers, an exported bitmap for image layers, and an optional
// hyperlink. Layers arrive as a flat list in document space; the containment
// builder nests them and rewrites coordinates relative to each parent.
package layer

import (
	"fmt"

	"github.com/matzehuels/mailgrid/pkg/css"
)

// TextRun is a span of text sharing one set of character styles. Text may
// contain literal newlines for forced line breaks.
type TextRun struct {
	Text string           `json:"text"`
	CSS  css.Declarations `json:"css,omitempty"`
}

// Layer is a single rectangle with visual attributes.
//
// Coordinates satisfy X1 <= X2 and Y1 <= Y2 for well-formed input. Degenerate
// boxes are tolerated everywhere; they only contribute coincident grid lines.
type Layer struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`

	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`

	// Border is the resolved border width used to inset the content box.
	Border int              `json:"border,omitempty"`
	CSS    css.Declarations `json:"css,omitempty"`

	Content []TextRun `json:"content,omitempty"`

	// Source is the path of the exported bitmap relative to the HTML file.
	// When set, the layer renders as an image and its text is ignored.
	Source string `json:"source,omitempty"`

	// Image optionally points at a local bitmap used by exporters that do
	// not talk to the design tool.
	Image string `json:"image,omitempty"`

	Children []Layer `json:"children,omitempty"`
}

// Width returns the horizontal extent.
func (l Layer) Width() int { return l.X2 - l.X1 }

// Height returns the vertical extent.
func (l Layer) Height() int { return l.Y2 - l.Y1 }

// Contains reports whether o lies inside l. Edges may coincide.
func (l Layer) Contains(o Layer) bool {
	return l.X1 <= o.X1 && o.X2 <= l.X2 && l.Y1 <= o.Y1 && o.Y2 <= l.Y2
}

// SameBox reports whether l and o have identical bounds.
func (l Layer) SameBox(o Layer) bool {
	return l.X1 == o.X1 && l.Y1 == o.Y1 && l.X2 == o.X2 && l.Y2 == o.Y2
}

// Translate returns l shifted by (-dx, -dy). Children are left untouched
// because they are stored relative to l.
func (l Layer) Translate(dx, dy int) Layer {
	l.X1 -= dx
	l.X2 -= dx
	l.Y1 -= dy
	l.Y2 -= dy
	return l
}

// HasChildren reports whether nested layers exist.
func (l Layer) HasChildren() bool { return len(l.Children) > 0 }

// IsExportable reports whether the layer renders from an exported bitmap.
func (l Layer) IsExportable() bool { return l.Source != "" }

// IsText reports whether the layer carries text runs.
func (l Layer) IsText() bool { return len(l.Content) > 0 }

// Clone returns a deep copy, including children and style slices.
func (l Layer) Clone() Layer {
	out := l
	out.CSS = l.CSS.Clone()
	if l.Content != nil {
		out.Content = make([]TextRun, len(l.Content))
		for i, run := range l.Content {
			out.Content[i] = TextRun{Text: run.Text, CSS: run.CSS.Clone()}
		}
	}
	if l.Children != nil {
		out.Children = make([]Layer, len(l.Children))
		for i, c := range l.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// String implements fmt.Stringer for log output.
func (l Layer) String() string {
	name := l.Title
	if name == "" {
		name = l.ID
	}
	return fmt.Sprintf("%s [%d,%d %dx%d]", name, l.X1, l.Y1, l.Width(), l.Height())
}

// Walk calls fn for every layer in depth-first pre-order.
func Walk(layers []Layer, fn func(l *Layer, depth int)) {
	walk(layers, 0, fn)
}

func walk(layers []Layer, depth int, fn func(l *Layer, depth int)) {
	for i := range layers {
		fn(&layers[i], depth)
		walk(layers[i].Children, depth+1, fn)
	}
}

// Count returns the number of layers including all descendants.
func Count(layers []Layer) int {
	n := 0
	Walk(layers, func(*Layer, int) { n++ })
	return n
}
