package grid

import (
	"reflect"
	"testing"

	"github.com/matzehuels/mailgrid/pkg/layer"
)

func TestViewportInner(t *testing.T) {
	tests := []struct {
		name   string
		vp     Viewport
		border int
		want   Viewport
	}{
		{
			name:   "no border",
			vp:     Root(100, 100, 3),
			border: 0,
			want:   Root(100, 100, 3),
		},
		{
			name:   "full layer",
			vp:     Root(100, 100, 3),
			border: 2,
			want:   Viewport{Width: 96, Height: 96, OriginalWidth: 96, OriginalHeight: 96, Depth: 3},
		},
		{
			name:   "right fragment",
			vp:     Viewport{Width: 50, Height: 100, OffsetX: 50, OriginalWidth: 100, OriginalHeight: 100},
			border: 2,
			want:   Viewport{Width: 48, Height: 96, OffsetX: 48, OriginalWidth: 96, OriginalHeight: 96},
		},
		{
			name:   "top fragment",
			vp:     Viewport{Width: 100, Height: 40, OriginalWidth: 100, OriginalHeight: 100},
			border: 2,
			want:   Viewport{Width: 96, Height: 38, OriginalWidth: 96, OriginalHeight: 96},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vp.Inner(tt.border); got != tt.want {
				t.Errorf("Inner(%d) = %+v, want %+v", tt.border, got, tt.want)
			}
		})
	}
}

func TestViewportClipping(t *testing.T) {
	vp := Viewport{Width: 50, Height: 40, OffsetX: 50, OriginalWidth: 100, OriginalHeight: 80}
	if !vp.ClippedLeft() || vp.ClippedRight() {
		t.Errorf("horizontal clipping wrong for %v", vp)
	}
	if vp.ClippedTop() || !vp.ClippedBottom() {
		t.Errorf("vertical clipping wrong for %v", vp)
	}
	if Root(10, 10, 0).Clipped() {
		t.Error("root viewport reported as clipped")
	}
}

func TestBuildNestedTable(t *testing.T) {
	a := box("a", 0, 0, 100, 100)
	a.Border = 2
	a.Children = []layer.Layer{box("b", 23, 23, 73, 73)}

	tbl := Build([]layer.Layer{a}, Root(100, 100, 3))
	if len(tbl.Rows) != 1 || len(tbl.Rows[0]) != 1 {
		t.Fatalf("root rows = %v", tbl.Rows)
	}
	slot := tbl.Rows[0][0]
	if slot.Layer == nil || slot.Layer.ID != "a" {
		t.Fatalf("root slot layer = %v", slot.Layer)
	}
	if slot.Viewport.Depth != 7 {
		t.Errorf("slot depth = %d, want 7", slot.Viewport.Depth)
	}

	child := slot.Child
	if child == nil {
		t.Fatal("expected nested table")
	}
	if child.Viewport.Width != 96 || child.Viewport.Height != 96 {
		t.Errorf("child viewport = %v, want 96x96", child.Viewport)
	}
	if !reflect.DeepEqual(child.Grid.Columns, []int{0, 23, 73, 96}) {
		t.Errorf("child columns = %v", child.Grid.Columns)
	}
	middle := child.Rows[1]
	if len(middle) != 3 || middle[1].Layer == nil || middle[1].Layer.ID != "b" {
		t.Errorf("middle row = %+v", middle)
	}
	if !middle[0].Empty() || !middle[2].Empty() {
		t.Error("expected placeholders around b")
	}
	if n := len(child.Rows[0]); n != 1 || child.Rows[0][0].Colspan != 3 {
		t.Errorf("top row = %+v, want one placeholder spanning 3", child.Rows[0])
	}
}

func TestBuildSplitLayer(t *testing.T) {
	wide := box("wide", 0, 0, 100, 40)
	wide.Children = []layer.Layer{box("label", 10, 25, 30, 35)}
	layers := []layer.Layer{wide, box("blocker", 50, 0, 100, 20)}

	tbl := Build(layers, Root(100, 40, 0))
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}

	top := tbl.Rows[0][0]
	if top.Layer.ID != "wide" || !top.Viewport.Clipped() {
		t.Fatalf("top fragment = %+v", top)
	}
	if !top.Viewport.ClippedRight() || !top.Viewport.ClippedBottom() {
		t.Errorf("top fragment viewport = %v", top.Viewport)
	}
	if top.Child == nil || len(top.Child.Grid.Layers) != 0 {
		t.Errorf("label should not appear in the top fragment")
	}

	bottom := tbl.Rows[1][0]
	if bottom.Layer.ID != "wide" || bottom.Colspan != 2 {
		t.Fatalf("bottom fragment = %+v", bottom)
	}
	if bottom.Viewport.OffsetY != 20 || !bottom.Viewport.ClippedTop() {
		t.Errorf("bottom viewport = %v", bottom.Viewport)
	}
	labels := bottom.Child.Grid.Layers
	if len(labels) != 1 || !labels[0].SameBox(box("", 10, 5, 30, 15)) {
		t.Errorf("bottom fragment layers = %v", labels)
	}
}

func TestBuildConcurrencyMatchesSequential(t *testing.T) {
	var layers []layer.Layer
	for i := 0; i < 6; i++ {
		l := box("row", 0, i*50, 100, (i+1)*50)
		l.Children = []layer.Layer{box("cell", 10, 10, 40, 40), box("cell", 50, 10, 90, 40)}
		layers = append(layers, l)
	}
	vp := Root(100, 300, 3)

	seq := Build(layers, vp)
	for _, n := range []int{2, 4, 64} {
		par := Build(layers, vp, WithConcurrency(n))
		if !reflect.DeepEqual(seq, par) {
			t.Errorf("build with concurrency %d differs from sequential build", n)
		}
		for r := range par.Rows {
			for _, s := range par.Rows[r] {
				if s.Layer != nil && s.Layer.HasChildren() && s.Child == nil {
					t.Errorf("concurrency %d: row %d missing its nested table", n, r)
				}
			}
		}
	}
}

func TestTableStats(t *testing.T) {
	a := box("a", 0, 0, 100, 100)
	a.Children = []layer.Layer{box("b", 25, 25, 75, 75)}
	st := Build([]layer.Layer{a}, Root(100, 100, 0)).Stats()

	want := Stats{Tables: 2, Cells: 1 + 5, Empty: 4, Depth: 2}
	if st != want {
		t.Errorf("Stats() = %+v, want %+v", st, want)
	}
}
