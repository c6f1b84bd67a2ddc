// Package grid turns sibling layers into a table grid.
//
// Each nesting level is synthesized against a [Viewport]: the sub-region of
// the owning layer visible through the current table cell. Synthesis runs in
// three steps:
//
//  1. Boundary extraction. The distinct x and y edges of all layers, plus
//     the viewport edges, become the column and row boundaries. Coordinates
//     are integers, so equal edges collapse exactly.
//  2. Coverage. Every cell between consecutive boundaries is assigned to the
//     layer overlapping it. When several layers overlap a cell the stacking
//     rule decides: [LastWins] lets the later layer in sibling order claim
//     the cell, [FirstWins] keeps the earlier one.
//  3. Spans. Runs of cells owned by the same layer merge into colspan and
//     rowspan; cells absorbed by a rowspan become [Continuation] cells and
//     consecutive [Empty] cells merge horizontally.
//
// [Build] then recurses into every content cell whose layer has children,
// producing a [Table] tree ready for rendering. A layer split across several
// cells gets one nested table per fragment, each with a viewport offset so
// only the children visible in that fragment are laid out.
package grid
