// Package pkg provides the core libraries of mailgrid.
//
// # Overview
//
// mailgrid turns a design artboard, a list of absolutely positioned
// rectangles, into nested HTML tables that email clients render without
// CSS positioning. The pkg directory is organized into three areas:
//
//  1. Domain logic ([layer], [containment], [grid], [css], [links])
//  2. Output ([render/htmltable], [render/nodelink], [export])
//  3. Orchestration and infrastructure ([pipeline], [cache], [prefs], [io])
//
// # Architecture
//
// The data flow of one conversion:
//
//	layer document (JSON)
//	         ↓
//	    [io] package (decode, flatten groups)
//	         ↓
//	    [containment] package (nest layers that enclose each other)
//	         ↓
//	    [grid] package (cut each level into rows and columns)
//	         ↓
//	    [render/htmltable] package (emit tables, cells, images and links)
//	         ↓
//	    HTML document + assets directory
//
// # Quick Start
//
//	doc, _ := io.ImportJSON("newsletter.json")
//	result, _ := pipeline.Convert(doc, pipeline.Options{})
//	os.WriteFile("newsletter.html", []byte(result.HTML), 0o644)
//
// Or step by step:
//
//	forest := containment.Build(doc.Layers, containment.BackToFront)
//	vp := grid.Root(doc.CanvasWidth(), doc.Height, 3)
//	tbl := grid.Build(forest.Layers(0, 0), vp, grid.WithStacking(grid.LastWins))
//	html := htmltable.RenderDocument(doc.Background, tbl)
//
// # Main Packages
//
// [layer] - The document model: rectangles with borders, CSS declarations,
// text runs, link targets and exportable images.
//
// [containment] - Builds the containment forest. A layer becomes the child of
// the smallest layer that fully encloses it.
//
// [grid] - Grid synthesis. The edges of the layers on one nesting level split
// the viewport into rows and columns; covered cells merge into spans and
// every span with children becomes a nested table.
//
// [render/htmltable] - Writes the table tree as email HTML and inspects
// generated markup.
//
// [render/nodelink] - Graphviz diagrams of the containment forest.
//
// [export] - Asset exporters (sketchtool, pre-rendered images).
//
// [pipeline] - Options, pure conversion and the cached [pipeline.Runner]
// shared by every CLI command.
//
// [cache] - File, Redis and null caches for converted documents.
//
// [prefs] - Persisted user preferences.
//
// [layer]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/layer
// [containment]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/containment
// [grid]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/grid
// [css]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/css
// [links]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/links
// [render/htmltable]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/render/htmltable
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/render/nodelink
// [export]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/cache
// [prefs]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/prefs
// [io]: https://pkg.go.dev/github.com/matzehuels/mailgrid/pkg/io
package pkg
