// Package containment nests a flat list of layers by geometric containment.
//
// A layer becomes the child of the deepest layer whose box contains it
// (edges may coincide). Siblings at any level never contain each other but
// may partially overlap; the grid synthesizer resolves that later.
//
// Building is split in two phases so the input is never mutated:
//
//  1. [Build] records parent/child relationships as indices into an arena
//     of cloned layers. Geometry stays absolute.
//  2. [Forest.Layers] produces a fresh tree where every child is expressed
//     relative to its parent's content origin (x1+border, y1+border).
//
// # Insertion Order
//
// Extraction emits layers front-most first. [BackToFront] (the default)
// inserts from the end of the list so the front-most layer is inserted
// last; siblings come out ordered back to front and a last-wins grid lets
// the front-most layer claim overlapping cells. [FrontToBack] inserts in
// list order.
//
// Layers with identical boxes nest: the one inserted later becomes the child
// of the one inserted earlier.
package containment
