package htmltable

import (
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/mailgrid/pkg/css"
	"github.com/matzehuels/mailgrid/pkg/grid"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/links"
)

func box(id string, x1, y1, x2, y2 int) layer.Layer {
	return layer.Layer{ID: id, Title: id, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func render(t *testing.T, layers []layer.Layer, vp grid.Viewport, opts ...Option) (string, Stats) {
	t.Helper()
	out := Render(grid.Build(layers, vp), opts...)
	st, err := Inspect(out)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	return out, st
}

func TestRenderSideBySide(t *testing.T) {
	out, st := render(t, []layer.Layer{box("a", 0, 0, 50, 50), box("b", 50, 0, 100, 50)}, grid.Root(100, 50, 0))

	if st.Tables != 1 || st.Cells != 2 || st.Placeholders != 0 {
		t.Errorf("Inspect() = %+v, want 1 table with 2 cells", st)
	}
	if !strings.Contains(out, `<col style="width:50px;"/><col style="width:50px;"/>`) {
		t.Errorf("missing column hints:\n%s", out)
	}
	if strings.Count(out, `colspan="1" rowspan="1"`) != 2 {
		t.Errorf("expected two unmerged cells:\n%s", out)
	}
}

func TestRenderNestedTable(t *testing.T) {
	a := box("a", 0, 0, 100, 100)
	a.Border = 2
	a.CSS = css.Declarations{{Name: "border", Value: "2px solid #000000"}}
	a.Children = []layer.Layer{box("b", 23, 23, 73, 73)}

	out, st := render(t, []layer.Layer{a}, grid.Root(100, 100, 0))
	if st.Tables != 2 || st.MaxNesting != 2 {
		t.Errorf("Inspect() = %+v, want 2 tables nested 2 deep", st)
	}
	if st.Placeholders != 4 {
		t.Errorf("Placeholders = %d, want 4", st.Placeholders)
	}
	if !strings.Contains(out, `width="96" height="96"`) {
		t.Errorf("nested table should fill the content box:\n%s", out)
	}
}

var hrefPattern = regexp.MustCompile(`<a href="([^"]*)"`)

func TestRenderAutoLinks(t *testing.T) {
	text := box("text", 0, 0, 200, 20)
	text.Content = []layer.TextRun{{Text: "https://example.com"}}

	explicit := text
	explicit.URL = "www.example.org"

	tests := []struct {
		name   string
		layer  layer.Layer
		policy links.Policy
		want   []string
	}{
		{"auto", text, links.ExplicitWins, []string{"https://example.com"}},
		{"explicit wins", explicit, links.ExplicitWins, []string{"http://www.example.org"}},
		{"both", explicit, links.Both, []string{"http://www.example.org", "https://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Nested anchors are rewritten by HTML parsers, so read the
			// targets from the raw markup.
			out, _ := render(t, []layer.Layer{tt.layer}, grid.Root(200, 20, 0), WithLinkPolicy(tt.policy))
			var got []string
			for _, m := range hrefPattern.FindAllStringSubmatch(out, -1) {
				got = append(got, m[1])
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("links = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderExplicitLinks(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"example.com", "http://example.com"},
		{"https://example.com:8080/promo", "https://example.com:8080/promo"},
		{"https://example.com/list?ids=1,2", "https://example.com/list?ids=1,2"},
		{" hello@example.com ", "mailto:hello@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			l := box("button", 0, 0, 200, 40)
			l.URL = tt.url
			_, st := render(t, []layer.Layer{l}, grid.Root(200, 40, 0))
			if !reflect.DeepEqual(st.Links, []string{tt.want}) {
				t.Errorf("Links = %v, want [%s]", st.Links, tt.want)
			}
		})
	}

	blank := box("button", 0, 0, 200, 40)
	blank.URL = "   "
	if _, st := render(t, []layer.Layer{blank}, grid.Root(200, 40, 0)); len(st.Links) != 0 {
		t.Errorf("blank url should not be linked, got %v", st.Links)
	}
}

func TestRenderEmailLink(t *testing.T) {
	l := box("contact", 0, 0, 200, 20)
	l.Content = []layer.TextRun{{Text: "hello@example.com", CSS: css.Declarations{{Name: "text-decoration", Value: "underline"}}}}

	out, st := render(t, []layer.Layer{l}, grid.Root(200, 20, 0))
	if !reflect.DeepEqual(st.Links, []string{"mailto:hello@example.com"}) {
		t.Errorf("Links = %v", st.Links)
	}
	if strings.Contains(out, "text-decoration:none;text-decoration") {
		t.Errorf("run decoration should replace the link default:\n%s", out)
	}
}

func TestRenderExportedImage(t *testing.T) {
	img := box("logo", 0, 0, 52, 52)
	img.Border = 2
	img.Source = "assets/logo@2x.png"
	img.CSS = css.Declarations{
		{Name: "background-color", Value: "#ffffff"},
		{Name: "border", Value: "2px solid #000000"},
	}

	out, st := render(t, []layer.Layer{img}, grid.Root(52, 52, 0))
	if !strings.Contains(out, `width="48" height="48"`) {
		t.Errorf("image should be inset by the border:\n%s", out)
	}
	if !reflect.DeepEqual(st.Images, []string{"assets/logo@2x.png"}) {
		t.Errorf("Images = %v", st.Images)
	}
	if strings.Contains(out, "background-color") {
		t.Errorf("exported layers should not carry a background color:\n%s", out)
	}
}

func TestRenderText(t *testing.T) {
	l := box("copy", 0, 0, 300, 40)
	l.Content = []layer.TextRun{
		{Text: "Fish & Chips\nDaily", CSS: css.Declarations{{Name: "font-weight", Value: "700"}}},
		{Text: " <b>not bold</b>"},
	}
	out, _ := render(t, []layer.Layer{l}, grid.Root(300, 40, 0))

	if !strings.Contains(out, `<span style="font-weight:700;">Fish &amp; Chips<br/>Daily</span>`) {
		t.Errorf("first run not rendered as expected:\n%s", out)
	}
	if !strings.Contains(out, "&lt;b&gt;not bold&lt;/b&gt;") {
		t.Errorf("run text not escaped:\n%s", out)
	}
}

func TestRenderSplitLayerContentOnce(t *testing.T) {
	wide := box("wide", 0, 0, 100, 40)
	wide.Content = []layer.TextRun{{Text: "once"}}
	blocker := box("blocker", 50, 0, 100, 20)

	out, _ := render(t, []layer.Layer{wide, blocker}, grid.Root(100, 40, 0))
	if n := strings.Count(out, ">once<"); n != 1 {
		t.Errorf("text rendered %d times, want 1:\n%s", n, out)
	}
}

func TestCellStyle(t *testing.T) {
	base := box("card", 0, 0, 100, 40)
	base.Border = 1
	base.CSS = css.Declarations{
		{Name: "background-color", Value: "#ff0000"},
		{Name: "border", Value: "1px solid #000000"},
		{Name: "border-radius", Value: "4px"},
	}

	image := base
	image.Source = "assets/card@2x.png"
	image.Border = 0
	image.CSS = nil
	image.Children = []layer.Layer{box("badge", 10, 10, 20, 20)}

	tests := []struct {
		name  string
		layer layer.Layer
		vp    grid.Viewport
		want  string
	}{
		{
			name:  "whole layer",
			layer: base,
			vp:    grid.Root(100, 40, 0),
			want:  "display:block;background-color:#ff0000;border:1px solid #000000;border-radius:4px;width:98px;height:38px;",
		},
		{
			name:  "left fragment",
			layer: base,
			vp:    grid.Viewport{Width: 50, Height: 40, OriginalWidth: 100, OriginalHeight: 40},
			want: "display:block;background-color:#ff0000;border-left:1px solid #000000;border-top:1px solid #000000;" +
				"border-bottom:1px solid #000000;border-radius:4px 0 0 4px;width:49px;height:38px;",
		},
		{
			name:  "cropped background",
			layer: image,
			vp:    grid.Viewport{Width: 50, Height: 40, OffsetX: 50, OriginalWidth: 100, OriginalHeight: 40},
			want: "display:block;background-image:url(assets/card@2x.png);background-size:200% auto;" +
				"background-position:-50px -0px;width:50px;height:40px;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellStyle(tt.layer, tt.vp).String(); got != tt.want {
				t.Errorf("CellStyle() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestDocument(t *testing.T) {
	out := Document(css.Color{R: 1, G: 1, B: 1, A: 1}, "<table></table>\n")
	if !strings.HasPrefix(out, "<!doctype html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(out, `<body bgcolor="#ffffff"`) || !strings.Contains(out, "background-color: #ffffff;") {
		t.Errorf("background not applied:\n%s", out)
	}
	st, err := Inspect(out)
	if err != nil {
		t.Fatal(err)
	}
	if st.Tables != 1 {
		t.Errorf("Tables = %d, want 1 (body wrapper excluded)", st.Tables)
	}
}
