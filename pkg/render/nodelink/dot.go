package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the relative box, border and link target to labels.
	// When false, only the layer title is shown.
	Detailed bool
}

// ToDOT converts a nested layer tree to Graphviz DOT format. The result can
// be rendered with [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Node names are assigned in depth-first order ("n0", "n1", ...) because
// layer ids are not guaranteed to be unique.
func ToDOT(layers []layer.Layer, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	next := 0
	var visit func(ls []layer.Layer, parent string)
	visit = func(ls []layer.Layer, parent string) {
		for _, l := range ls {
			name := fmt.Sprintf("n%d", next)
			next++
			fmt.Fprintf(&buf, "  %s [%s];\n", name, strings.Join(fmtAttrs(l, fmtLabel(l, opts.Detailed)), ", "))
			if parent != "" {
				edges = append(edges, fmt.Sprintf("  %s -> %s;\n", parent, name))
			}
			visit(l.Children, name)
		}
	}
	visit(layers, "")

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(l layer.Layer, detailed bool) string {
	name := l.Title
	if name == "" {
		name = l.ID
	}
	if !detailed {
		return name
	}

	parts := []string{fmt.Sprintf("%d,%d %dx%d", l.X1, l.Y1, l.Width(), l.Height())}
	if l.Border > 0 {
		parts = append(parts, fmt.Sprintf("border: %d", l.Border))
	}
	if l.URL != "" {
		parts = append(parts, "url: "+l.URL)
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(l layer.Layer, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case l.IsExportable():
		attrs = append(attrs, "fillcolor=lightblue")
	case l.IsText():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	if l.URL != "" {
		attrs = append(attrs, "fontcolor=blue")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag, whose size is in points,
// with one sized in pixels so rsvg-convert scales it predictably.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
