package io

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/mailgrid/pkg/css"
	"github.com/matzehuels/mailgrid/pkg/errors"
	"github.com/matzehuels/mailgrid/pkg/export"
	"github.com/matzehuels/mailgrid/pkg/layer"
)

// ReadJSON decodes a layer document from r.
//
// Malformed JSON fails with INVALID_FORMAT. Geometry is not validated here;
// call [layer.Document.Validate] for warnings. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*layer.Document, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
	}

	doc := &layer.Document{
		Name:       data.Name,
		Width:      round(data.Width),
		Height:     round(data.Height),
		Background: css.White,
		File:       data.File,
	}
	if data.Background != nil {
		doc.Background = *data.Background
	}
	doc.Layers = flatten(data.Layers, 0, 0)
	return doc, nil
}

// ImportJSON reads the document at path.
func ImportJSON(path string) (*layer.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

func flatten(in []wireLayer, dx, dy float64) []layer.Layer {
	var out []layer.Layer
	for _, w := range in {
		if w.Hidden {
			continue
		}
		x, y := w.X+dx, w.Y+dy
		if len(w.Layers) > 0 && !w.Exportable {
			out = append(out, flatten(w.Layers, x, y)...)
			continue
		}
		out = append(out, toLayer(w, x, y))
	}
	return out
}

func toLayer(w wireLayer, x, y float64) layer.Layer {
	l := layer.Layer{
		ID:      w.ID,
		Title:   w.Title,
		URL:     strings.TrimSpace(w.URL),
		X1:      round(x),
		Y1:      round(y),
		X2:      round(x + w.Width),
		Y2:      round(y + w.Height),
		CSS:     w.CSS,
		Content: w.Content,
		Image:   w.Image,
	}
	if l.ID == "" {
		l.ID = strings.ToUpper(uuid.NewString())
	}
	if l.URL == "null" {
		l.URL = ""
	}
	if w.Border != nil {
		l.Border = round(*w.Border)
	} else if v, ok := w.CSS.Get("border"); ok {
		l.Border = css.BorderWidth(v)
	}
	if len(l.Content) == 0 && w.Text != "" {
		l.Content = []layer.TextRun{{Text: w.Text}}
	}
	switch {
	case w.Exportable:
		l.Source = export.SourcePath(l.ID)
	case w.Source != "":
		l.Source = w.Source
	}
	return l
}

// round rounds half away from zero, matching the host's frame rounding.
func round(v float64) int { return int(math.Round(v)) }
