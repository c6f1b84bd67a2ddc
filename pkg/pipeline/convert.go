package pipeline

import (
	"time"

	"go.uber.org/multierr"

	"github.com/matzehuels/mailgrid/pkg/containment"
	"github.com/matzehuels/mailgrid/pkg/export"
	"github.com/matzehuels/mailgrid/pkg/grid"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/render/htmltable"
)

// Convert turns a document into email HTML. It never touches the
// filesystem; only invalid options make it fail.
func Convert(doc *layer.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	tbl, forest := Table(doc, opts)
	html := htmltable.RenderDocument(doc.Background, tbl, htmltable.WithLinkPolicy(opts.links))

	return &Result{
		HTML:     html,
		Assets:   Assets(doc),
		Warnings: multierr.Errors(doc.Validate()),
		Stats:    tableStats(tbl, forest, start),
	}, nil
}

// tableStats summarizes a built table and its forest. Duration runs from
// start to now.
func tableStats(tbl *grid.Table, forest *containment.Forest, start time.Time) Stats {
	st := tbl.Stats()
	return Stats{
		Layers:   forest.Len(),
		Roots:    len(forest.Roots()),
		Tables:   st.Tables,
		Cells:    st.Cells,
		Empty:    st.Empty,
		Depth:    st.Depth,
		Duration: time.Since(start),
	}
}

// Table runs the nesting and grid stages. The root viewport spans the
// rightmost layer edge and the document height. opts must be validated.
func Table(doc *layer.Document, opts Options) (*grid.Table, *containment.Forest) {
	forest := containment.Build(doc.Layers, opts.order)
	vp := grid.Root(doc.CanvasWidth(), doc.Height, opts.Indent)
	tbl := grid.Build(forest.Layers(0, 0), vp,
		grid.WithStacking(opts.stacking),
		grid.WithConcurrency(opts.Concurrency),
	)
	return tbl, forest
}

// Assets lists the exportable layers of doc in depth-first order.
func Assets(doc *layer.Document) []export.Asset {
	var assets []export.Asset
	layer.Walk(doc.Layers, func(l *layer.Layer, _ int) {
		if !l.IsExportable() {
			return
		}
		assets = append(assets, export.Asset{
			ID:     l.ID,
			Width:  l.Width(),
			Height: l.Height(),
			Image:  l.Image,
		})
	})
	return assets
}
