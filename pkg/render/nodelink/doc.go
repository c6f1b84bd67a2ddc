// Package nodelink draws the containment forest of a document as a
// node-link diagram.
//
// Every layer becomes a box; an arrow points from a layer to each layer
// nested inside it. The diagram is the quickest way to see why a layer ended
// up in an unexpected nested table.
//
// # Usage
//
//	tree := containment.Nest(doc.Layers, containment.BackToFront)
//	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Node Styles
//
//   - Exported bitmaps are filled light blue
//   - Text layers are drawn with a dashed outline
//   - Layers with a URL get a blue label
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
