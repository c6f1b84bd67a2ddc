package grid

import (
	"sync"

	"github.com/matzehuels/mailgrid/pkg/layer"
)

// depthStep is the indentation added per nested table.
const depthStep = 4

// Slot is a span resolved for rendering.
type Slot struct {
	Span

	// Width and Height are the cell size in pixels.
	Width, Height int

	// Layer owns the cell; nil for empty placeholders.
	Layer *layer.Layer

	// Viewport is the part of Layer visible through this cell, in the
	// layer's own coordinates. Zero for empty placeholders.
	Viewport Viewport

	// Child is the nested table for a layer with children.
	Child *Table
}

// Table is one rendered level: a synthesized grid with its slots resolved
// and nested tables built.
type Table struct {
	Viewport Viewport
	Grid     *Grid
	Rows     [][]Slot
}

type builder struct {
	stacking    Stacking
	concurrency int
}

// Option configures Build.
type Option func(*builder)

// WithStacking sets the overlap rule. The default is LastWins.
func WithStacking(s Stacking) Option {
	return func(b *builder) { b.stacking = s }
}

// WithConcurrency builds the nested tables of the top level on up to n
// goroutines. Coverage within a level stays sequential. Values below 2
// build everything on the calling goroutine.
func WithConcurrency(n int) Option {
	return func(b *builder) { b.concurrency = n }
}

// Build synthesizes layers against vp and recurses into every content cell
// whose layer has children. Layers must be relativized: each level's
// coordinates are relative to its parent's content origin.
func Build(layers []layer.Layer, vp Viewport, opts ...Option) *Table {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	t := b.level(layers, vp)
	if b.concurrency < 2 {
		b.nest(t)
		return t
	}

	// At most b.concurrency child builds run at once.
	var wg sync.WaitGroup
	sem := make(chan struct{}, b.concurrency)
	for r := range t.Rows {
		for i := range t.Rows[r] {
			s := &t.Rows[r][i]
			if s.Layer == nil || !s.Layer.HasChildren() {
				continue
			}
			sem <- struct{}{}
			wg.Add(1)
			go func() {
				defer func() { <-sem; wg.Done() }()
				s.Child = b.child(s)
			}()
		}
	}
	wg.Wait()
	return t
}

// level synthesizes one table without descending into children.
func (b *builder) level(layers []layer.Layer, vp Viewport) *Table {
	g := Synthesize(layers, vp, b.stacking)
	t := &Table{Viewport: vp, Grid: g, Rows: make([][]Slot, len(g.Cells))}

	for r, spans := range g.Spans() {
		for _, s := range spans {
			slot := Slot{Span: s, Width: g.Width(s), Height: g.Height(s)}
			if s.Cell.Kind == Content {
				l := &g.Layers[s.Cell.Index]
				slot.Layer = l
				slot.Viewport = Viewport{
					Width:          slot.Width,
					Height:         slot.Height,
					OffsetX:        g.Columns[s.Col] - l.X1,
					OffsetY:        g.Rows[s.Row] - l.Y1,
					OriginalWidth:  l.Width(),
					OriginalHeight: l.Height(),
					Depth:          vp.Depth + depthStep,
				}
			}
			t.Rows[r] = append(t.Rows[r], slot)
		}
	}
	return t
}

func (b *builder) nest(t *Table) {
	for r := range t.Rows {
		for i := range t.Rows[r] {
			s := &t.Rows[r][i]
			if s.Layer != nil && s.Layer.HasChildren() {
				s.Child = b.child(s)
			}
		}
	}
}

func (b *builder) child(s *Slot) *Table {
	t := b.level(s.Layer.Children, s.Viewport.Inner(s.Layer.Border))
	b.nest(t)
	return t
}

// Walk calls fn for t and every nested table in depth-first order.
func (t *Table) Walk(fn func(t *Table, level int)) {
	t.walk(0, fn)
}

func (t *Table) walk(level int, fn func(*Table, int)) {
	fn(t, level)
	for _, row := range t.Rows {
		for _, s := range row {
			if s.Child != nil {
				s.Child.walk(level+1, fn)
			}
		}
	}
}

// Stats summarizes a table tree.
type Stats struct {
	Tables int // tables including nested ones
	Cells  int // emitted cells, placeholders included
	Empty  int // placeholder cells
	Depth  int // nesting levels
}

// Stats counts tables and cells in the tree rooted at t.
func (t *Table) Stats() Stats {
	var st Stats
	t.Walk(func(tbl *Table, level int) {
		st.Tables++
		if level+1 > st.Depth {
			st.Depth = level + 1
		}
		for _, row := range tbl.Rows {
			for _, s := range row {
				st.Cells++
				if s.Empty() {
					st.Empty++
				}
			}
		}
	})
	return st
}
