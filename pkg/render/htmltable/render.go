package htmltable

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/mailgrid/pkg/css"
	"github.com/matzehuels/mailgrid/pkg/grid"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/links"
)

const indentUnit = "    "

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	policy links.Policy
}

// WithLinkPolicy sets how auto-detected text links interact with layer URLs.
// The default is links.ExplicitWins.
func WithLinkPolicy(p links.Policy) Option {
	return func(r *renderer) { r.policy = p }
}

// Render writes the table tree rooted at t. Indentation starts at the
// root viewport's depth.
func Render(t *grid.Table, opts ...Option) string {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}
	var buf bytes.Buffer
	r.table(&buf, t)
	return buf.String()
}

func line(buf *bytes.Buffer, depth int, format string, args ...any) {
	buf.WriteString(strings.Repeat(indentUnit, depth))
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')
}

func (r *renderer) table(buf *bytes.Buffer, t *grid.Table) {
	vp := t.Viewport
	d := vp.Depth
	line(buf, d, `<table style="border-collapse:collapse;table-layout:fixed;width:%dpx;height:%dpx;margin:auto;" border="0" width="%d" height="%d">`,
		vp.Width, vp.Height, vp.Width, vp.Height)

	if cols := t.Grid.Columns; len(cols) > 2 {
		line(buf, d+1, "<colgroup>")
		var b strings.Builder
		for i := 0; i < len(cols)-1; i++ {
			fmt.Fprintf(&b, `<col style="width:%dpx;"/>`, cols[i+1]-cols[i])
		}
		line(buf, d+2, "%s", b.String())
		line(buf, d+1, "</colgroup>")
	}

	for _, row := range t.Rows {
		line(buf, d+1, "<tr>")
		for _, s := range row {
			if s.Empty() {
				line(buf, d+2, `<td colspan="%d" style="width:%dpx;height:%dpx;">&shy;</td>`, s.Colspan, s.Width, s.Height)
				continue
			}
			r.cell(buf, d, s)
		}
		line(buf, d+1, "</tr>")
	}
	line(buf, d, "</table>")
}

func (r *renderer) cell(buf *bytes.Buffer, d int, s grid.Slot) {
	l := s.Layer
	line(buf, d+2, `<td style="vertical-align:top;padding:0px;width:%dpx;height:%dpx;" colspan="%d" rowspan="%d">`,
		s.Width, s.Height, s.Colspan, s.Rowspan)

	linked := strings.TrimSpace(l.URL) != ""
	if linked {
		line(buf, d+3, `<a href="%s" style="text-decoration:none;" target="_blank">`, html.EscapeString(links.Href(l.URL)))
	}
	line(buf, d+3, `<div style="%s">`, html.EscapeString(CellStyle(*l, s.Viewport).String()))
	if s.Child != nil {
		r.table(buf, s.Child)
	} else {
		r.leaf(buf, d+4, *l, s.Viewport)
	}
	line(buf, d+3, "</div>")
	if linked {
		line(buf, d+3, "</a>")
	}
	line(buf, d+2, "</td>")
}

// leaf writes the content of a layer without children. Content is only
// written into the fragment holding the layer's top-left corner.
func (r *renderer) leaf(buf *bytes.Buffer, d int, l layer.Layer, vp grid.Viewport) {
	if vp.ClippedLeft() || vp.ClippedTop() {
		return
	}
	if l.IsExportable() {
		line(buf, d, `<img src="%s" style="display:block;" width="%d" height="%d" alt="%s"/>`,
			html.EscapeString(l.Source), l.Width()-2*l.Border, l.Height()-2*l.Border, html.EscapeString(l.Title))
		return
	}

	auto := r.policy.AutoLink(l.URL)
	for _, run := range l.Content {
		style := run.CSS.String()
		text := strings.TrimSpace(run.Text)
		if auto && links.Linkable(text) {
			linkStyle := "text-decoration:none;"
			if run.CSS.Has("text-decoration") {
				linkStyle = ""
			}
			line(buf, d, `<a href="%s" style="%s" target="_blank">%s</a>`,
				html.EscapeString(links.Href(text)), html.EscapeString(linkStyle+style), html.EscapeString(run.Text))
			continue
		}
		line(buf, d, `<span style="%s">%s</span>`, html.EscapeString(style), textHTML(run.Text))
	}
}

// textHTML escapes text and turns literal newlines into line breaks.
func textHTML(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br/>")
}

// CellStyle returns the declarations of the <div> inside a content cell for
// the part of l visible through vp.
func CellStyle(l layer.Layer, vp grid.Viewport) css.Declarations {
	style := css.Declarations{{Name: "display", Value: "block"}}
	inner := vp.Inner(l.Border)

	for _, d := range l.CSS {
		switch d.Name {
		case "background-color":
			if l.IsExportable() {
				continue
			}
			style = append(style, d)
		case "border-radius":
			style = append(style, css.Declaration{Name: d.Name, Value: clipRadius(d.Value, vp)})
		case "border":
			if !vp.Clipped() {
				style = append(style, d)
				continue
			}
			if !vp.ClippedLeft() {
				style = append(style, css.Declaration{Name: "border-left", Value: d.Value})
			}
			if !vp.ClippedTop() {
				style = append(style, css.Declaration{Name: "border-top", Value: d.Value})
			}
			if !vp.ClippedRight() {
				style = append(style, css.Declaration{Name: "border-right", Value: d.Value})
			}
			if !vp.ClippedBottom() {
				style = append(style, css.Declaration{Name: "border-bottom", Value: d.Value})
			}
		default:
			style = append(style, d)
		}
	}

	if l.HasChildren() && l.IsExportable() && vp.Width > 0 {
		style = append(style,
			css.Declaration{Name: "background-image", Value: "url(" + l.Source + ")"},
			css.Declaration{Name: "background-size", Value: fmt.Sprintf("%d%% auto", vp.OriginalWidth/vp.Width*100)},
		)
		if vp.OffsetX > 0 || vp.OffsetY > 0 {
			style = append(style, css.Declaration{Name: "background-position", Value: fmt.Sprintf("-%dpx -%dpx", vp.OffsetX, vp.OffsetY)})
		}
	}

	style = append(style,
		css.Declaration{Name: "width", Value: fmt.Sprintf("%dpx", inner.Width)},
		css.Declaration{Name: "height", Value: fmt.Sprintf("%dpx", inner.Height)},
	)
	return style
}

// clipRadius zeroes the corners that touch a clipped edge. Corners are in
// CSS order: top-left, top-right, bottom-right, bottom-left.
func clipRadius(value string, vp grid.Viewport) string {
	v := css.Expand(value)
	if vp.ClippedLeft() {
		v[0], v[3] = "0", "0"
	}
	if vp.ClippedTop() {
		v[0], v[1] = "0", "0"
	}
	if vp.ClippedRight() {
		v[1], v[2] = "0", "0"
	}
	if vp.ClippedBottom() {
		v[2], v[3] = "0", "0"
	}
	return css.Contract(v)
}
