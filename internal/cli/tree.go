package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mailgrid/pkg/containment"
	"github.com/matzehuels/mailgrid/pkg/errors"
	mgio "github.com/matzehuels/mailgrid/pkg/io"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/render/nodelink"
)

const (
	treeText = "text"
	treeDOT  = "dot"
	treeSVG  = "svg"
	treePNG  = "png"
	treePDF  = "pdf"
)

var treeFormats = []string{treeText, treeDOT, treeSVG, treePNG, treePDF}

type treeOpts struct {
	format   string
	output   string
	order    string
	detailed bool
}

func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: treeText}

	cmd := &cobra.Command{
		Use:   "tree <document.json>",
		Short: "Show how layers nest by containment",
		Long: `Tree prints the containment forest the converter builds before laying out
tables. Child coordinates are relative to the parent's content box.

Graphviz formats (dot, svg, png, pdf) draw the same forest as a diagram;
png and pdf need rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(treeFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.order, "order", "", "nesting order: back-to-front (default), front-to-back")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include boxes, borders and links in diagram labels")

	return cmd
}

func runTree(ctx context.Context, input string, opts treeOpts) error {
	order, err := containment.ParseOrder(opts.order)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOption, err, "invalid --order")
	}
	doc, err := mgio.ImportJSON(input)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	forest := containment.Build(doc.Layers, order)
	layers := forest.Layers(0, 0)

	var out []byte
	switch opts.format {
	case treeText:
		out = []byte(renderTextTree(docTitle(doc, input), layers) + "\n")
	case treeDOT:
		out = []byte(nodelink.ToDOT(layers, nodelink.Options{Detailed: opts.detailed}))
	case treeSVG:
		out, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(layers, nodelink.Options{Detailed: opts.detailed}))
	case treePNG:
		out, err = nodelink.RenderPNG(ctx, nodelink.ToDOT(layers, nodelink.Options{Detailed: opts.detailed}), 2)
	case treePDF:
		out, err = nodelink.RenderPDF(ctx, nodelink.ToDOT(layers, nodelink.Options{Detailed: opts.detailed}))
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", opts.format, strings.Join(treeFormats, ", "))
	}
	if err != nil {
		return err
	}
	prog.done("built containment tree", "layers", forest.Len(), "roots", len(forest.Roots()), "depth", forest.Depth())

	if opts.output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printFile(opts.output)
	return nil
}

var (
	treeRootStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeEnumStyle = lipgloss.NewStyle().Foreground(colorDim).MarginRight(1)
)

// renderTextTree draws the nested layers under a root labelled title.
func renderTextTree(title string, layers []layer.Layer) string {
	t := tree.Root(treeRootStyle.Render(title)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle)
	addTreeChildren(t, layers)
	return t.String()
}

func addTreeChildren(t *tree.Tree, layers []layer.Layer) {
	for _, l := range layers {
		label := treeLabel(l)
		if !l.HasChildren() {
			t.Child(label)
			continue
		}
		sub := tree.Root(label)
		addTreeChildren(sub, l.Children)
		t.Child(sub)
	}
}

// treeLabel is "<name> x,y wxh" plus a marker for images, text and links.
func treeLabel(l layer.Layer) string {
	label := fmt.Sprintf("%s %s", layerName(l), StyleDim.Render(fmt.Sprintf("%d,%d %dx%d", l.X1, l.Y1, l.Width(), l.Height())))
	switch {
	case l.IsExportable():
		label += " " + StyleHighlight.Render("[image]")
	case l.IsText():
		label += " " + StyleDim.Render("[text]")
	}
	if l.URL != "" {
		label += " " + StyleLink.Render(l.URL)
	}
	return label
}
