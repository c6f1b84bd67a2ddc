// Package render holds the debugging views of a conversion and the shared
// format conversion they use.
//
// # Overview
//
// The email markup itself is produced by the [htmltable] subpackage. The
// remaining renderers exist to look at the intermediate structures:
//
//   - Node-link diagrams of the containment forest (in [nodelink])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [htmltable]: github.com/matzehuels/mailgrid/pkg/render/htmltable
// [nodelink]: github.com/matzehuels/mailgrid/pkg/render/nodelink
package render
