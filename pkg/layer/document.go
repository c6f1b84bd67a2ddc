package layer

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/matzehuels/mailgrid/pkg/css"
	"github.com/matzehuels/mailgrid/pkg/errors"
)

// Document is the output of layer extraction: one artboard worth of layers
// in document coordinates, plus the canvas it sits on.
type Document struct {
	Name       string    `json:"name"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Background css.Color `json:"background"`
	Layers     []Layer   `json:"layers"`

	// File is the host design file the layers were extracted from. Asset
	// exporters that call back into the design tool need it saved on disk.
	File string `json:"file,omitempty"`
}

// CanvasWidth returns the width of the root table: the rightmost edge of
// any layer, or the document width when there are no layers. The canvas
// starts at x=0, so the width is never negative.
func (d *Document) CanvasWidth() int {
	if len(d.Layers) == 0 {
		return d.Width
	}
	maxX := 0
	Walk(d.Layers, func(l *Layer, _ int) {
		maxX = max(maxX, l.X2)
	})
	return maxX
}

// Assets returns the ids of all exportable layers in depth-first order.
func (d *Document) Assets() []string {
	var ids []string
	Walk(d.Layers, func(l *Layer, _ int) {
		if l.IsExportable() {
			ids = append(ids, l.ID)
		}
	})
	return ids
}

// Find returns a pointer to the layer with the given id.
func (d *Document) Find(id string) (*Layer, bool) {
	var found *Layer
	Walk(d.Layers, func(l *Layer, _ int) {
		if found == nil && l.ID == id {
			found = l
		}
	})
	return found, found != nil
}

// Validate reports problems that do not stop conversion but usually point at
// a broken extraction: inverted or empty boxes, duplicate ids, and ids that
// are unsafe as asset file names. The returned error combines every issue;
// use multierr.Errors to list them.
func (d *Document) Validate() error {
	var err error
	seen := make(map[string]bool)
	Walk(d.Layers, func(l *Layer, _ int) {
		switch {
		case l.X1 > l.X2 || l.Y1 > l.Y2:
			err = multierr.Append(err, errors.New(errors.ErrCodeInvalidDocument,
				"layer %s: inverted bounds", l))
		case l.X1 == l.X2 || l.Y1 == l.Y2:
			err = multierr.Append(err, errors.New(errors.ErrCodeInvalidDocument,
				"layer %s: zero area", l))
		}
		if seen[l.ID] {
			err = multierr.Append(err, errors.New(errors.ErrCodeInvalidDocument,
				"duplicate layer id %q", l.ID))
		}
		seen[l.ID] = true
		if l.IsExportable() {
			if vErr := errors.ValidateAssetID(l.ID); vErr != nil {
				err = multierr.Append(err, fmt.Errorf("layer %s: %w", l, vErr))
			}
		}
	})
	return err
}
