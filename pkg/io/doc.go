// Package io reads and writes layer documents as JSON.
//
// # Overview
//
// A document is what the layer-extraction step produces for one artboard:
// canvas size, background color, and the visible layers with their frames,
// resolved CSS, text runs and link targets. The converter never reads design
// files itself; it only consumes this format.
//
// # JSON Format
//
//	{
//	  "name": "Spring Newsletter",
//	  "width": 600,
//	  "height": 900,
//	  "background": "#f4f4f4",
//	  "file": "/Users/me/newsletter.sketch",
//	  "layers": [
//	    {
//	      "id": "0C5E...",
//	      "title": "Headline",
//	      "x": 40, "y": 32, "width": 520, "height": 48,
//	      "css": ["color: #222222;", "text-align: center;"],
//	      "content": [{"text": "Hello", "css": {"font-size": "32px"}}]
//	    },
//	    {
//	      "id": "9A1F...",
//	      "title": "Hero",
//	      "x": 0, "y": 96, "width": 600, "height": 300,
//	      "exportable": true
//	    }
//	  ]
//	}
//
// Layers are listed front-most first. Frames are floating point in the
// host's coordinate space and are rounded to whole pixels exactly once, on
// import; the converter only works with integers.
//
// # Layer Fields
//
//   - id: asset file name stem; a random UUID is assigned when missing
//   - x, y, width, height: frame relative to the enclosing group
//   - css: object or host attribute lines ("border: 1px solid #979797;")
//   - border: border width; derived from css "border" when omitted
//   - text / content: a single string or styled text runs
//   - url: link target for the whole layer
//   - exportable: render from an exported bitmap at assets/<id>@2x.png
//   - image: local bitmap used by the images exporter
//   - hidden: skip the layer and everything in it
//   - layers: group members; their frames are relative to the group
//
// Non-exportable groups are flattened into their members. Exportable groups
// are a single bitmap and their members are dropped.
//
// # Export
//
// [WriteJSON] writes the flat, imported form back: absolute integer frames,
// ids filled in, groups dissolved. Reading it again yields the same document.
package io
