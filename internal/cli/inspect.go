package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	mgio "github.com/matzehuels/mailgrid/pkg/io"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/pipeline"
	"github.com/matzehuels/mailgrid/pkg/render/htmltable"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var opts pipeline.Options
	var config string

	cmd := &cobra.Command{
		Use:   "inspect <document.json>",
		Short: "List layers and summarize the generated tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := mergeOptions(cmd, config, opts)
			if err != nil {
				return err
			}
			return runInspect(cmd.Context(), args[0], merged)
		},
	}
	cmd.Flags().StringVar(&config, "config", "", "TOML file with conversion options")
	addOptionFlags(cmd, &opts)
	return cmd
}

func runInspect(ctx context.Context, input string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	doc, err := mgio.ImportJSON(input)
	if err != nil {
		return err
	}

	result, err := pipeline.Convert(doc, opts)
	if err != nil {
		return err
	}
	markup, err := htmltable.Inspect(result.HTML)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(docTitle(doc, input)))
	printNewline()
	fmt.Println(layerTable(doc).Render())
	printNewline()

	printKeyValue("Canvas", fmt.Sprintf("%dx%d (root table %dpx wide)", doc.Width, doc.Height, doc.CanvasWidth()))
	printKeyValue("Layers", fmt.Sprintf("%d in %d roots", result.Stats.Layers, result.Stats.Roots))
	printKeyValue("Tables", fmt.Sprintf("%d, nested %d deep", result.Stats.Tables, result.Stats.Depth))
	printKeyValue("Cells", fmt.Sprintf("%d (%d placeholders)", markup.Cells, markup.Placeholders))
	printKeyValue("Images", strconv.Itoa(len(markup.Images)))
	printKeyValue("Links", strconv.Itoa(len(markup.Links)))
	printKeyValue("HTML", fmt.Sprintf("%d bytes", len(result.HTML)))

	for _, w := range result.Warnings {
		logger.Warn("document issue", "err", w)
	}
	return nil
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableDimStyle    = tableCellStyle.Foreground(colorDim)
)

// layerTable lists every layer in document order with its absolute box.
func layerTable(doc *layer.Document) *table.Table {
	var rows [][]string
	layer.Walk(doc.Layers, func(l *layer.Layer, depth int) {
		rows = append(rows, []string{
			l.ID,
			l.Title,
			fmt.Sprintf("%d,%d → %d,%d", l.X1, l.Y1, l.X2, l.Y2),
			layerKind(*l),
			l.URL,
		})
	})

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Title", "Box", "Kind", "Link").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0 || col == 2:
				return tableDimStyle
			}
			return tableCellStyle
		})
}

func layerKind(l layer.Layer) string {
	switch {
	case l.IsExportable():
		return "image"
	case l.IsText():
		return "text"
	case l.HasChildren():
		return "group"
	}
	return "shape"
}
