// Package pipeline runs a document conversion end to end.
//
// The pipeline has three stages, shared by every command that converts:
//
//  1. Nest: build the containment forest and relativize coordinates
//  2. Grid: synthesize the table tree against the canvas viewport
//  3. Render: emit the email HTML document
//
// [Convert] runs them without side effects. [Runner] adds caching,
// logging and hooks, and exports the assets the HTML references.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("newsletter.html", []byte(result.HTML), 0o644)
//	err = runner.ExportAssets(ctx, result, "newsletter.html")
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mailgrid/pkg/cache"
	"github.com/matzehuels/mailgrid/pkg/containment"
	"github.com/matzehuels/mailgrid/pkg/errors"
	"github.com/matzehuels/mailgrid/pkg/export"
	"github.com/matzehuels/mailgrid/pkg/grid"
	"github.com/matzehuels/mailgrid/pkg/links"
)

const (
	DefaultStacking = "last-wins"
	DefaultOrder    = "back-to-front"
	DefaultLinks    = "explicit-wins"
	DefaultExporter = string(export.KindNone)

	// DefaultIndent is the nesting depth of the root table inside the
	// document boilerplate.
	DefaultIndent = 3
)

// Options configures a conversion. Zero values select the defaults.
type Options struct {
	Stacking    string `toml:"stacking" json:"stacking,omitempty"`
	Order       string `toml:"order" json:"order,omitempty"`
	Links       string `toml:"links" json:"links,omitempty"`
	Indent      int    `toml:"indent" json:"indent,omitempty"`
	Concurrency int    `toml:"concurrency" json:"concurrency,omitempty"`

	Exporter   string `toml:"exporter" json:"exporter,omitempty"`
	Sketchtool string `toml:"sketchtool" json:"sketchtool,omitempty"`
	SketchFile string `toml:"sketch_file" json:"sketch_file,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool        `toml:"-" json:"-"`
	Logger  *log.Logger `toml:"-" json:"-"`

	stacking  grid.Stacking
	order     containment.Order
	links     links.Policy
	validated bool
}

// ValidateAndSetDefaults fills unset options and parses the enumerated
// ones. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Stacking == "" {
		o.Stacking = DefaultStacking
	}
	if o.Order == "" {
		o.Order = DefaultOrder
	}
	if o.Links == "" {
		o.Links = DefaultLinks
	}
	if o.Exporter == "" {
		o.Exporter = DefaultExporter
	}
	if o.Indent == 0 {
		o.Indent = DefaultIndent
	}

	var err error
	if o.stacking, err = grid.ParseStacking(o.Stacking); err != nil {
		return invalid(err)
	}
	if o.order, err = containment.ParseOrder(o.Order); err != nil {
		return invalid(err)
	}
	if o.links, err = links.ParsePolicy(o.Links); err != nil {
		return invalid(err)
	}
	if err := ValidateExporter(o.Exporter); err != nil {
		return err
	}
	if o.Indent < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "indent must not be negative, got %d", o.Indent)
	}
	if o.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "concurrency must not be negative, got %d", o.Concurrency)
	}
	o.validated = true
	return nil
}

func invalid(err error) error {
	return errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid option")
}

// ValidateExporter checks an exporter name.
func ValidateExporter(name string) error {
	for _, k := range export.Kinds {
		if string(k) == name {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidOption, "invalid exporter: %q (must be one of %v)", name, export.Kinds)
}

// CacheKeyOpts returns the options that change the rendered HTML.
func (o *Options) CacheKeyOpts() cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		Stacking: o.Stacking,
		Order:    o.Order,
		Links:    o.Links,
		Indent:   o.Indent,
	}
}

// ExporterConfig returns the exporter selection. docFile is the design file
// recorded in the document; SketchFile overrides it.
func (o *Options) ExporterConfig(docFile string) export.Config {
	file := o.SketchFile
	if file == "" {
		file = docFile
	}
	return export.Config{
		Kind:       export.Kind(o.Exporter),
		Sketchtool: o.Sketchtool,
		File:       file,
	}
}

// Result is the output of a conversion.
type Result struct {
	// HTML is the complete email document.
	HTML string

	// Assets are the exportable layers the HTML references under
	// assets/<id>@2x.png, in depth-first document order.
	Assets []export.Asset

	// Warnings are non-fatal document issues.
	Warnings []error

	Stats    Stats
	CacheHit bool
}

// Stats describes a conversion.
type Stats struct {
	Layers   int // input layers including nested ones
	Roots    int // top-level layers after nesting
	Tables   int
	Cells    int
	Empty    int // placeholder cells
	Depth    int // table nesting levels
	Duration time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("%d layers, %d tables, %d cells (%d empty), depth %d",
		s.Layers, s.Tables, s.Cells, s.Empty, s.Depth)
}
