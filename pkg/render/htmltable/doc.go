// Package htmltable renders a [grid.Table] tree as nested HTML tables for
// email clients.
//
// Every table level is sized to its viewport with table-layout:fixed and,
// when it has more than one column, a <colgroup> of width hints. Content
// cells wrap a sized <div> carrying the layer's CSS; empty cells hold a soft
// hyphen so clients do not collapse them.
//
// Borders and rounded corners are only drawn on edges that are real edges
// of the layer. A layer split across several cells draws its left border
// in the fragment that touches its left edge, and so on. An exported bitmap
// with children becomes a cropped background image of each fragment.
//
// # Links
//
// A layer URL wraps the whole cell in an <a>. Text runs that look like a URL
// or an email address are linked individually; the [links.Policy] decides
// whether that still happens inside a layer that has its own URL.
//
// [Inspect] parses rendered output back with goquery and reports structural
// counts, which the CLI and the tests use to check output without comparing
// markup byte for byte.
package htmltable
