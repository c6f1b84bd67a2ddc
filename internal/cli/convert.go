package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mailgrid/pkg/errors"
	"github.com/matzehuels/mailgrid/pkg/export"
	mgio "github.com/matzehuels/mailgrid/pkg/io"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/pipeline"
)

// convertOpts holds the convert command flags that are not conversion
// options.
type convertOpts struct {
	output   string
	config   string
	noCache  bool
	cacheURL string
	open     bool
}

func (c *CLI) convertCommand() *cobra.Command {
	var flags convertOpts
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "convert <document.json>",
		Short: "Convert a layer document into an email HTML file",
		Long: `Convert reads a layer document, nests its layers by containment, lays them
out as nested tables and writes a standalone HTML file. Exportable layers are
written as assets/<id>@2x.png next to the HTML file by the selected exporter.

Options are read from --config (TOML) first; flags given on the command line
override them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := mergeOptions(cmd, flags.config, opts)
			if err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), args[0], flags, merged)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output HTML file (default: <document name>.html)")
	cmd.Flags().StringVar(&flags.config, "config", "", "TOML file with conversion options")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the conversion cache")
	cmd.Flags().StringVar(&flags.cacheURL, "cache-url", "", "cache backend: redis://host:port/db or none (default: file cache)")
	cmd.Flags().BoolVar(&flags.open, "open", false, "open the HTML file when done")
	addOptionFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached output")
	cmd.Flags().StringVar(&opts.Exporter, "exporter", "", "asset exporter: none (default), sketchtool, images")
	cmd.Flags().StringVar(&opts.Sketchtool, "sketchtool", "", "sketchtool binary (default: bundled with Sketch.app)")
	cmd.Flags().StringVar(&opts.SketchFile, "sketch-file", "", "saved design file for sketchtool (default: from the document)")

	return cmd
}

// addOptionFlags registers the flags that change the generated tables.
func addOptionFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Stacking, "stacking", "", "overlap rule: last-wins (default), first-wins")
	cmd.Flags().StringVar(&opts.Order, "order", "", "nesting order: back-to-front (default), front-to-back")
	cmd.Flags().StringVar(&opts.Links, "links", "", "link policy: explicit-wins (default), both")
	cmd.Flags().IntVar(&opts.Indent, "indent", 0, "nesting depth of the root table")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "build nested tables on this many goroutines")
}

// mergeOptions loads the config file, if any, and overlays the flags the
// user set explicitly.
func mergeOptions(cmd *cobra.Command, configPath string, fromFlags pipeline.Options) (pipeline.Options, error) {
	opts := pipeline.Options{}
	if configPath != "" {
		loaded, err := pipeline.LoadOptions(configPath)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	set := cmd.Flags().Changed
	if set("stacking") {
		opts.Stacking = fromFlags.Stacking
	}
	if set("order") {
		opts.Order = fromFlags.Order
	}
	if set("links") {
		opts.Links = fromFlags.Links
	}
	if set("indent") {
		opts.Indent = fromFlags.Indent
	}
	if set("concurrency") {
		opts.Concurrency = fromFlags.Concurrency
	}
	if set("exporter") {
		opts.Exporter = fromFlags.Exporter
	}
	if set("sketchtool") {
		opts.Sketchtool = fromFlags.Sketchtool
	}
	if set("sketch-file") {
		opts.SketchFile = fromFlags.SketchFile
	}
	opts.Refresh = fromFlags.Refresh
	return opts, opts.ValidateAndSetDefaults()
}

func (c *CLI) runConvert(ctx context.Context, input string, flags convertOpts, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	doc, err := mgio.ImportJSON(input)
	if err != nil {
		return err
	}
	output := flags.output
	if output == "" {
		output = defaultOutput(doc, input)
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache, flags.cacheURL)
	if err != nil {
		return err
	}
	defer runner.Close()
	if runner.Exporter, err = export.New(opts.ExporterConfig(doc.File)); err != nil {
		return err
	}

	opts.Logger = logger
	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logger.Warn("document issue", "err", w)
	}

	if err := os.WriteFile(output, []byte(result.HTML), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Converted %s", StyleHighlight.Render(docTitle(doc, input)))
	printFile(output)
	fmt.Println(statsLine(result.Stats, result.CacheHit))

	if err := c.exportAssets(ctx, runner, result, output, opts); err != nil {
		return err
	}

	if flags.open {
		if err := openFile(output); err != nil {
			logger.Warn("could not open output", "err", err)
		}
	}
	return nil
}

// exportAssets runs the exporter. A failed export is reported as a warning
// and fails the command; the HTML file is kept.
func (c *CLI) exportAssets(ctx context.Context, runner *pipeline.Runner, result *pipeline.Result, output string, opts pipeline.Options) error {
	if len(result.Assets) == 0 {
		return nil
	}
	if export.Kind(opts.Exporter) == export.KindNone {
		printDetail("%d assets not exported", len(result.Assets))
		printNextStep("Export them with", "mailgrid convert --exporter sketchtool")
		return nil
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %d assets...", len(result.Assets)))
	spin.Start()
	err := runner.ExportAssets(ctx, result, output)
	cancelled := spin.Cancelled()
	spin.Stop()
	if cancelled {
		return ctx.Err()
	}
	if err != nil {
		printWarning("Assets were not exported: %s", errors.UserMessage(err))
		return err
	}
	printSuccess("Exported %d assets", len(result.Assets))
	printFile(filepath.Join(filepath.Dir(output), export.Dir))
	return nil
}

// defaultOutput derives "<slug>.html" from the document name, or from the
// input file name when the document has none.
func defaultOutput(doc *layer.Document, input string) string {
	name := slug.Make(docTitle(doc, input))
	if name == "" {
		name = "email"
	}
	return name + ".html"
}

func docTitle(doc *layer.Document, input string) string {
	if strings.TrimSpace(doc.Name) != "" {
		return doc.Name
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func openFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", abs)
	case "linux":
		cmd = exec.Command("xdg-open", abs)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", abs)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
