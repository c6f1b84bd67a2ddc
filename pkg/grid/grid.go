package grid

import (
	"fmt"
	"slices"
	"sort"

	"github.com/matzehuels/mailgrid/pkg/layer"
)

// Stacking decides which layer owns a cell covered by several siblings.
type Stacking int

const (
	// LastWins gives the cell to the last covering layer in sibling order.
	LastWins Stacking = iota
	// FirstWins gives the cell to the first covering layer in sibling order.
	FirstWins
)

// String returns the stacking name used in flags and config files.
func (s Stacking) String() string {
	switch s {
	case LastWins:
		return "last-wins"
	case FirstWins:
		return "first-wins"
	default:
		return fmt.Sprintf("Stacking(%d)", int(s))
	}
}

// ParseStacking parses a stacking name. The empty string selects LastWins.
func ParseStacking(s string) (Stacking, error) {
	switch s {
	case "", "last-wins":
		return LastWins, nil
	case "first-wins":
		return FirstWins, nil
	}
	return LastWins, fmt.Errorf("invalid stacking: %s (must be 'last-wins' or 'first-wins')", s)
}

// CellKind tags a grid cell.
type CellKind int

const (
	// Empty cells are covered by no layer.
	Empty CellKind = iota
	// Continuation cells are absorbed by a rowspan from a row above.
	Continuation
	// Content cells are owned by the layer at Cell.Index.
	Content
)

// Cell is one grid cell. Index is meaningful only for Content cells.
type Cell struct {
	Kind  CellKind
	Index int
}

// content returns a Content cell for layer i.
func content(i int) Cell { return Cell{Kind: Content, Index: i} }

// Grid is one synthesized table level.
type Grid struct {
	Viewport Viewport

	// Layers are the siblings inside the viewport, translated to the
	// viewport origin and sorted top-left first. Cell indices refer here.
	Layers []layer.Layer

	// Rows and Columns are the sorted, distinct boundaries. A grid with n
	// rows has n+1 row boundaries.
	Rows    []int
	Columns []int

	// Cells holds len(Rows)-1 rows of len(Columns)-1 cells.
	Cells [][]Cell
}

// Synthesize lays out siblings against a viewport.
//
// Layers not lying entirely inside the viewport are dropped. The rest are
// translated by the viewport offset and stably sorted by (y1, x1) before
// coverage, so the stacking rule only breaks ties between layers at equal
// positions or overlapping layers in sibling order.
func Synthesize(layers []layer.Layer, vp Viewport, stacking Stacking) *Grid {
	g := &Grid{Viewport: vp}

	for _, l := range layers {
		if l.X1 >= vp.OffsetX && l.X2 <= vp.Width+vp.OffsetX &&
			l.Y1 >= vp.OffsetY && l.Y2 <= vp.Height+vp.OffsetY {
			g.Layers = append(g.Layers, l.Translate(vp.OffsetX, vp.OffsetY))
		}
	}
	sort.SliceStable(g.Layers, func(i, j int) bool {
		a, b := g.Layers[i], g.Layers[j]
		if a.Y1 != b.Y1 {
			return a.Y1 < b.Y1
		}
		return a.X1 < b.X1
	})

	rows := []int{0, vp.Height}
	cols := []int{0, vp.Width}
	for _, l := range g.Layers {
		rows = append(rows, l.Y1, l.Y2)
		cols = append(cols, l.X1, l.X2)
	}
	slices.Sort(rows)
	slices.Sort(cols)
	g.Rows = slices.Compact(rows)
	g.Columns = slices.Compact(cols)

	g.Cells = make([][]Cell, len(g.Rows)-1)
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, len(g.Columns)-1)
		for c := range g.Cells[r] {
			g.Cells[r][c] = g.cover(r, c, stacking)
		}
	}
	return g
}

func (g *Grid) cover(r, c int, stacking Stacking) Cell {
	top, bottom := g.Rows[r], g.Rows[r+1]
	left, right := g.Columns[c], g.Columns[c+1]
	cell := Cell{}
	for i, l := range g.Layers {
		if l.X1 < right && l.X2 > left && l.Y1 < bottom && l.Y2 > top {
			cell = content(i)
			if stacking == FirstWins {
				break
			}
		}
	}
	return cell
}

// Span is a merged run of cells emitted as one table cell.
type Span struct {
	Row, Col         int
	Colspan, Rowspan int
	Cell             Cell
}

// Empty reports whether the span is a placeholder.
func (s Span) Empty() bool { return s.Cell.Kind == Empty }

// Spans merges cells into colspan and rowspan runs. The result has one
// entry per grid row, possibly with no spans when every cell of the row is
// a continuation. Grid.Cells is not modified.
func (g *Grid) Spans() [][]Span {
	cells := make([][]Cell, len(g.Cells))
	for r := range g.Cells {
		cells[r] = slices.Clone(g.Cells[r])
	}

	out := make([][]Span, len(cells))
	for r, row := range cells {
		last := len(row) - 1
		colspan := 1
		for c := range row {
			cell := row[c]
			switch cell.Kind {
			case Continuation:
				continue

			case Empty:
				if c == last || row[c+1].Kind != Empty {
					out[r] = append(out[r], Span{Row: r, Col: c - colspan + 1, Colspan: colspan, Rowspan: 1, Cell: cell})
					colspan = 1
				} else {
					colspan++
				}

			case Content:
				if c < last && row[c+1] == cell {
					colspan++
					continue
				}
				start := c - colspan + 1
				rowspan := 1
				for i := r + 1; i < len(cells); i++ {
					if !fills(cells[i], start, c, cell) {
						break
					}
					for z := start; z <= c; z++ {
						cells[i][z] = Cell{Kind: Continuation}
					}
					rowspan++
				}
				out[r] = append(out[r], Span{Row: r, Col: start, Colspan: colspan, Rowspan: rowspan, Cell: cell})
				colspan = 1
			}
		}
	}
	return out
}

// fills reports whether row holds cell in every column from start to end
// and does not continue past end.
func fills(row []Cell, start, end int, cell Cell) bool {
	if end+1 < len(row) && row[end+1] == cell {
		return false
	}
	for z := start; z <= end; z++ {
		if row[z] != cell {
			return false
		}
	}
	return true
}

// Width returns the pixel width of the columns covered by s.
func (g *Grid) Width(s Span) int {
	return g.Columns[s.Col+s.Colspan] - g.Columns[s.Col]
}

// Height returns the pixel height of the rows covered by s.
func (g *Grid) Height(s Span) int {
	return g.Rows[s.Row+s.Rowspan] - g.Rows[s.Row]
}
