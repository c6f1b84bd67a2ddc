package export

import (
	"context"
	"fmt"
	"path"
)

// Dir is the assets directory name, relative to the HTML file.
const Dir = "assets"

// Scale is the pixel density assets are exported at.
const Scale = 2

// Asset is a layer whose pixels must be exported.
type Asset struct {
	ID     string
	Width  int // layer width in CSS pixels
	Height int // layer height in CSS pixels

	// Image is an optional local bitmap. Only [Images] uses it.
	Image string
}

// Exporter writes assets into dir as FileName(asset.ID).
type Exporter interface {
	Export(ctx context.Context, assets []Asset, dir string) error
}

// FileName returns the file name of an exported asset.
func FileName(id string) string {
	return fmt.Sprintf("%s@%dx.png", id, Scale)
}

// SourcePath returns the path rendered markup uses to reference an asset.
func SourcePath(id string) string {
	return path.Join(Dir, FileName(id))
}

// IDs returns the asset ids in order.
func IDs(assets []Asset) []string {
	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
	}
	return ids
}

// Nop is an Exporter that writes nothing.
type Nop struct{}

// Export implements Exporter.
func (Nop) Export(context.Context, []Asset, string) error { return nil }

// Kind names an exporter in flags and config files.
type Kind string

const (
	KindNone       Kind = "none"
	KindSketchtool Kind = "sketchtool"
	KindImages     Kind = "images"
)

// Kinds lists the accepted exporter names.
var Kinds = []Kind{KindNone, KindSketchtool, KindImages}

// Config selects and configures an exporter.
type Config struct {
	Kind       Kind
	Sketchtool string // sketchtool binary; empty uses DefaultSketchtool
	File       string // saved design file for sketchtool
}

// New returns the exporter described by cfg. An empty kind selects Nop.
func New(cfg Config) (Exporter, error) {
	switch cfg.Kind {
	case "", KindNone:
		return Nop{}, nil
	case KindSketchtool:
		return &Sketchtool{Binary: cfg.Sketchtool, File: cfg.File}, nil
	case KindImages:
		return &Images{}, nil
	}
	return nil, fmt.Errorf("unknown exporter: %s (must be one of %v)", cfg.Kind, Kinds)
}

// KindOf returns the kind of a built-in exporter, or "custom".
func KindOf(e Exporter) Kind {
	switch e.(type) {
	case Nop, *Nop:
		return KindNone
	case *Sketchtool:
		return KindSketchtool
	case *Images:
		return KindImages
	}
	return "custom"
}
