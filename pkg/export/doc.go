// Package export writes the bitmap assets referenced by rendered markup.
//
// Exportable layers render as <img src="assets/<id>@2x.png">. After the HTML
// is written, an [Exporter] must produce those files at twice the layer size
// inside the assets directory next to the HTML file. The converter treats
// export as a single success or failure signal; it does not retry or verify
// the produced files.
//
// Three exporters are provided:
//
//   - [Sketchtool] runs the design tool's command line exporter as a
//     subprocess against the saved design file.
//   - [Images] scales local bitmaps referenced by each layer's image field.
//   - [Nop] does nothing, for HTML-only runs.
package export
