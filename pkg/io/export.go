package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mailgrid/pkg/css"
	"github.com/matzehuels/mailgrid/pkg/export"
	"github.com/matzehuels/mailgrid/pkg/layer"
)

type document struct {
	Name       string      `json:"name,omitempty"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Background *css.Color  `json:"background,omitempty"`
	File       string      `json:"file,omitempty"`
	Layers     []wireLayer `json:"layers"`
}

type wireLayer struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Border *float64         `json:"border,omitempty"`
	CSS    css.Declarations `json:"css,omitempty"`

	Text    string          `json:"text,omitempty"`
	Content []layer.TextRun `json:"content,omitempty"`

	Exportable bool   `json:"exportable,omitempty"`
	Source     string `json:"source,omitempty"`
	Image      string `json:"image,omitempty"`
	Hidden     bool   `json:"hidden,omitempty"`

	Layers []wireLayer `json:"layers,omitempty"`
}

// WriteJSON encodes doc in the import format. Document layers carry
// absolute frames, so every layer, children included, is written as one
// flat entry.
func WriteJSON(doc *layer.Document, w io.Writer) error {
	bg := doc.Background
	out := document{
		Name:       doc.Name,
		Width:      float64(doc.Width),
		Height:     float64(doc.Height),
		Background: &bg,
		File:       doc.File,
		Layers:     []wireLayer{},
	}
	layer.Walk(doc.Layers, func(l *layer.Layer, _ int) {
		out.Layers = append(out.Layers, fromLayer(*l))
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func fromLayer(l layer.Layer) wireLayer {
	border := float64(l.Border)
	w := wireLayer{
		ID:      l.ID,
		Title:   l.Title,
		URL:     l.URL,
		X:       float64(l.X1),
		Y:       float64(l.Y1),
		Width:   float64(l.Width()),
		Height:  float64(l.Height()),
		Border:  &border,
		CSS:     l.CSS,
		Content: l.Content,
		Image:   l.Image,
	}
	switch {
	case l.Source == "":
	case l.Source == export.SourcePath(l.ID):
		w.Exportable = true
	default:
		w.Source = l.Source
	}
	return w
}

// ExportJSON writes doc to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *layer.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}
