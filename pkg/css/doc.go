// Package css holds the small CSS toolkit used by the table renderer.
//
// Layers carry their style as an ordered list of declarations rather than a
// map: the rendered style attribute must be byte-for-byte reproducible, so
// declaration order is preserved from the input all the way to the output.
//
// # Declarations
//
// [Declarations] decode from JSON in two shapes. An object keeps the key
// order of the source document:
//
//	{"color": "#ffffff", "border": "2px solid #000000"}
//
// An array holds raw attribute lines as emitted by design tools and is run
// through [ParseAttributes]:
//
//	["background: #ffffff;", "border: 2px solid #000000;"]
//
// # Shorthands
//
// [Expand] and [Contract] convert between the 1-4 value shorthand used by
// properties like border-radius and an explicit four-corner form, so that
// individual corners can be zeroed when a layer is split across cells.
//
// # Colors
//
// [Color] stores normalized RGBA components and formats them as #rrggbb
// with [Color.Hex].
package css
