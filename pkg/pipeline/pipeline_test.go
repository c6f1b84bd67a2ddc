package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mailgrid/pkg/containment"
	"github.com/matzehuels/mailgrid/pkg/errors"
	"github.com/matzehuels/mailgrid/pkg/export"
	"github.com/matzehuels/mailgrid/pkg/grid"
	"github.com/matzehuels/mailgrid/pkg/links"
)

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should be valid: %v", err)
	}
	if opts.Stacking != DefaultStacking || opts.Order != DefaultOrder || opts.Links != DefaultLinks {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if opts.Indent != DefaultIndent {
		t.Errorf("Indent = %d, want %d", opts.Indent, DefaultIndent)
	}
	if opts.Exporter != DefaultExporter {
		t.Errorf("Exporter = %q, want %q", opts.Exporter, DefaultExporter)
	}
	if opts.stacking != grid.LastWins || opts.order != containment.BackToFront || opts.links != links.ExplicitWins {
		t.Error("parsed values should match the defaults")
	}
}

func TestValidateAndSetDefaultsParses(t *testing.T) {
	opts := Options{Stacking: "first-wins", Order: "front-to-back", Links: "both"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.stacking != grid.FirstWins || opts.order != containment.FrontToBack || opts.links != links.Both {
		t.Errorf("parsed = %v %v %v", opts.stacking, opts.order, opts.links)
	}
}

func TestValidateAndSetDefaultsRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"stacking", Options{Stacking: "top-wins"}},
		{"order", Options{Order: "sideways"}},
		{"links", Options{Links: "never"}},
		{"exporter", Options{Exporter: "ftp"}},
		{"indent", Options{Indent: -1}},
		{"concurrency", Options{Concurrency: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidOption) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidOption)
			}
		})
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Links: "both"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts.CacheKeyOpts()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.CacheKeyOpts() != first {
		t.Error("second call changed options")
	}
}

func TestExporterConfig(t *testing.T) {
	opts := Options{Exporter: "sketchtool", Sketchtool: "/bin/sketchtool"}
	cfg := opts.ExporterConfig("doc.sketch")
	if cfg.Kind != export.KindSketchtool || cfg.Sketchtool != "/bin/sketchtool" || cfg.File != "doc.sketch" {
		t.Errorf("ExporterConfig = %+v", cfg)
	}

	opts.SketchFile = "override.sketch"
	if got := opts.ExporterConfig("doc.sketch").File; got != "override.sketch" {
		t.Errorf("SketchFile should override the document file, got %q", got)
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mailgrid.toml")
	content := `stacking = "first-wins"
links = "both"
indent = 1
exporter = "images"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.Stacking != "first-wins" || opts.Links != "both" || opts.Indent != 1 || opts.Exporter != "images" {
		t.Errorf("LoadOptions = %+v", opts)
	}
	if opts.Order != "" {
		t.Errorf("unset keys should stay empty, Order = %q", opts.Order)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("stackng = \"first-wins\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptions(unknown); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("unknown key: err = %v", err)
	}

	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("stacking = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptions(broken); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("broken file: err = %v", err)
	}

	if _, err := LoadOptions(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}
