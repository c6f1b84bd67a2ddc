package containment

import (
	"fmt"

	"github.com/matzehuels/mailgrid/pkg/layer"
)

// Order selects the sequence in which layers are inserted into the forest.
type Order int

const (
	// BackToFront inserts from the last layer to the first.
	BackToFront Order = iota
	// FrontToBack inserts from the first layer to the last.
	FrontToBack
)

// String returns the order name used in flags and config files.
func (o Order) String() string {
	switch o {
	case BackToFront:
		return "back-to-front"
	case FrontToBack:
		return "front-to-back"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder parses an order name. The empty string selects BackToFront.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "back-to-front":
		return BackToFront, nil
	case "front-to-back":
		return FrontToBack, nil
	}
	return BackToFront, fmt.Errorf("invalid order: %s (must be 'back-to-front' or 'front-to-back')", s)
}

// Forest is the containment structure over an arena of layers. Layer
// geometry is absolute; children are referenced by index.
type Forest struct {
	layers   []layer.Layer
	children [][]int
	parent   []int
	roots    []int
}

// Build nests layers by containment. Any Children already present on the
// input are flattened in depth-first order first, so a partially nested
// extraction is treated the same as a flat one.
func Build(layers []layer.Layer, order Order) *Forest {
	f := &Forest{}
	layer.Walk(layers, func(l *layer.Layer, _ int) {
		c := *l
		c.Children = nil
		f.layers = append(f.layers, c.Clone())
	})
	f.children = make([][]int, len(f.layers))
	f.parent = make([]int, len(f.layers))
	for i := range f.parent {
		f.parent[i] = -1
	}

	if order == FrontToBack {
		for i := range f.layers {
			f.insert(i)
		}
	} else {
		for i := len(f.layers) - 1; i >= 0; i-- {
			f.insert(i)
		}
	}
	return f
}

func (f *Forest) insert(idx int) {
	box := f.layers[idx]
	siblings := &f.roots
	parent := -1

descend:
	for {
		for j := len(*siblings) - 1; j >= 0; j-- {
			s := (*siblings)[j]
			if f.layers[s].Contains(box) {
				parent = s
				siblings = &f.children[s]
				continue descend
			}
		}
		break
	}

	// Existing siblings that fit inside the new layer move under it.
	kept := (*siblings)[:0]
	for _, s := range *siblings {
		if box.Contains(f.layers[s]) {
			f.children[idx] = append(f.children[idx], s)
			f.parent[s] = idx
			continue
		}
		kept = append(kept, s)
	}
	*siblings = append(kept, idx)
	f.parent[idx] = parent
}

// Len returns the number of layers in the forest.
func (f *Forest) Len() int { return len(f.layers) }

// Roots returns the indices of the top-level layers in sibling order.
func (f *Forest) Roots() []int { return append([]int(nil), f.roots...) }

// Children returns the indices of the direct children of node i.
func (f *Forest) Children(i int) []int { return append([]int(nil), f.children[i]...) }

// Parent returns the index of the parent of node i, or -1 for roots.
func (f *Forest) Parent(i int) int { return f.parent[i] }

// Layer returns node i in absolute coordinates, without children.
func (f *Forest) Layer(i int) layer.Layer { return f.layers[i] }

// Depth returns the number of levels in the forest. An empty forest has
// depth 0.
func (f *Forest) Depth() int {
	var depth func(ids []int) int
	depth = func(ids []int) int {
		best := 0
		for _, id := range ids {
			if d := 1 + depth(f.children[id]); d > best {
				best = d
			}
		}
		return best
	}
	return depth(f.roots)
}

// Layers returns the forest as a fresh tree. Roots are translated by
// (-x, -y); every child is relative to its parent's content origin.
func (f *Forest) Layers(x, y int) []layer.Layer {
	return f.build(f.roots, x, y)
}

func (f *Forest) build(ids []int, x, y int) []layer.Layer {
	if len(ids) == 0 {
		return nil
	}
	out := make([]layer.Layer, len(ids))
	for i, id := range ids {
		abs := f.layers[id]
		rel := abs.Clone().Translate(x, y)
		rel.Children = f.build(f.children[id], abs.X1+abs.Border, abs.Y1+abs.Border)
		out[i] = rel
	}
	return out
}

// Shift moves a relativized tree to a new origin. Children are stored
// relative to their parent, so only the roots change. The input is not
// modified.
func Shift(layers []layer.Layer, x, y int) []layer.Layer {
	if layers == nil {
		return nil
	}
	out := make([]layer.Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Clone().Translate(x, y)
	}
	return out
}

// Nest is Build followed by Layers(0, 0).
func Nest(layers []layer.Layer, order Order) []layer.Layer {
	return Build(layers, order).Layers(0, 0)
}
