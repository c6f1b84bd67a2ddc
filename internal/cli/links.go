package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mailgrid/pkg/errors"
	mgio "github.com/matzehuels/mailgrid/pkg/io"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/links"
	"github.com/matzehuels/mailgrid/pkg/prefs"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	sidebarStyle      = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1).
				Width(36)
)

func (c *CLI) linksCommand() *cobra.Command {
	var assignments []string

	cmd := &cobra.Command{
		Use:   "links <document.json>",
		Short: "Edit layer hyperlinks",
		Long: `Edit the link target of each layer.

Without flags an interactive editor opens. Use --set id=url (repeatable) to
assign links from scripts; an empty url removes the link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(assignments) > 0 {
				return runSetLinks(cmd.Context(), args[0], assignments)
			}
			store, err := c.prefsStore()
			if err != nil {
				return err
			}
			return runLinksEditor(cmd.Context(), args[0], store)
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "assign a link as id=url")
	return cmd
}

func runSetLinks(ctx context.Context, path string, assignments []string) error {
	doc, err := mgio.ImportJSON(path)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := applyLink(doc, a); err != nil {
			return err
		}
	}
	if err := mgio.ExportJSON(doc, path); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("links saved", "path", path, "count", len(assignments))
	printSuccess("Updated %d link(s)", len(assignments))
	printFile(path)
	return nil
}

// applyLink parses an id=url assignment and sets the layer's link.
func applyLink(doc *layer.Document, assignment string) error {
	id, url, ok := strings.Cut(assignment, "=")
	if !ok || id == "" {
		return errors.New(errors.ErrCodeInvalidInput, "link assignment %q must look like id=url", assignment)
	}
	l, found := doc.Find(id)
	if !found {
		return errors.New(errors.ErrCodeInvalidInput, "no layer with id %q", id)
	}
	url = strings.TrimSpace(url)
	if !validLink(url) {
		return errors.New(errors.ErrCodeInvalidInput, "%q is not a URL or email address", url)
	}
	l.URL = url
	return nil
}

func runLinksEditor(ctx context.Context, path string, store prefs.Store) error {
	doc, err := mgio.ImportJSON(path)
	if err != nil {
		return err
	}
	model := NewLinksModel(doc, prefs.Enabled(ctx, store, prefs.Sidebar))
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	m := final.(LinksModel)
	if !m.Saved {
		if m.Dirty {
			printWarning("Discarded unsaved link changes")
		}
		return nil
	}
	if err := mgio.ExportJSON(doc, path); err != nil {
		return err
	}
	printSuccess("Saved links")
	printFile(path)
	return nil
}

// LinksModel is the bubbletea model of the link editor. It edits the
// layers of Doc in place.
type LinksModel struct {
	Doc     *layer.Document
	Layers  []*layer.Layer
	Depths  []int
	Cursor  int
	Offset  int
	Height  int
	Sidebar bool

	Editing bool
	Input   string
	Err     string

	Dirty bool
	Saved bool
}

// NewLinksModel lists every layer of doc in document order.
func NewLinksModel(doc *layer.Document, sidebar bool) LinksModel {
	m := LinksModel{Doc: doc, Height: 15, Sidebar: sidebar}
	layer.Walk(doc.Layers, func(l *layer.Layer, depth int) {
		m.Layers = append(m.Layers, l)
		m.Depths = append(m.Depths, depth)
	})
	return m
}

func (m LinksModel) Init() tea.Cmd {
	return nil
}

func (m LinksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Editing {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layers)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			m.Sidebar = !m.Sidebar
		case "enter", "e":
			if len(m.Layers) > 0 {
				m.Editing = true
				m.Input = m.Layers[m.Cursor].URL
				m.Err = ""
			}
		case "x", "delete":
			if len(m.Layers) > 0 && m.Layers[m.Cursor].URL != "" {
				m.Layers[m.Cursor].URL = ""
				m.Dirty = true
			}
		case "s":
			m.Saved = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m LinksModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.Editing = false
		m.Err = ""
	case tea.KeyEnter:
		url := strings.TrimSpace(m.Input)
		if !validLink(url) {
			m.Err = "not a URL or email address"
			return m, nil
		}
		if m.Layers[m.Cursor].URL != url {
			m.Layers[m.Cursor].URL = url
			m.Dirty = true
		}
		m.Editing = false
		m.Err = ""
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Input += " "
	case tea.KeyRunes:
		m.Input += string(msg.Runes)
	}
	return m, nil
}

func (m LinksModel) View() string {
	var b strings.Builder

	title := "Links"
	if m.Doc != nil && m.Doc.Name != "" {
		title = "Links · " + m.Doc.Name
	}
	if m.Dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ edit  x clear  tab details  s save  q quit"))
	b.WriteString("\n\n")

	if len(m.Layers) == 0 {
		b.WriteString(listDimStyle.Render("  no layers"))
		return b.String()
	}

	list := m.listView()
	if m.Sidebar {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", m.detailView())
	}
	b.WriteString(list)
	b.WriteString("\n\n")

	switch {
	case m.Editing:
		b.WriteString(StyleHighlight.Render("  link: "))
		b.WriteString(m.Input)
		b.WriteString("█")
		if m.Err != "" {
			b.WriteString("  ")
			b.WriteString(StyleWarning.Render(m.Err))
		}
	default:
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layers))))
	}
	return b.String()
}

func (m LinksModel) listView() string {
	end := min(m.Offset+m.Height, len(m.Layers))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		l := m.Layers[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		name := strings.Repeat("  ", m.Depths[i]) + layerName(*l)
		link := l.URL
		if link == "" {
			link = "—"
		}
		rows = append(rows, []string{cursor, name, link})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Layer", "Link").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case idx < len(m.Layers) && m.Layers[idx].URL == "" && col == 2:
				return listDimStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func (m LinksModel) detailView() string {
	l := m.Layers[m.Cursor]
	lines := []string{
		StyleTitle.Render(layerName(*l)),
		StyleDim.Render("id ") + l.ID,
		StyleDim.Render("box ") + fmt.Sprintf("%d,%d %dx%d", l.X1, l.Y1, l.Width(), l.Height()),
		StyleDim.Render("kind ") + layerKind(*l),
	}
	if l.IsText() {
		var text strings.Builder
		for _, run := range l.Content {
			text.WriteString(run.Text)
		}
		lines = append(lines, StyleDim.Render("text ")+text.String())
	}
	if l.URL != "" {
		lines = append(lines, StyleDim.Render("href ")+StyleLink.Render(links.Href(l.URL)))
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

// validLink accepts an empty link (no link) or any target without
// whitespace. Scheme-less domains are completed by links.Href.
func validLink(url string) bool {
	return !strings.ContainsAny(url, " \t\r\n")
}

func layerName(l layer.Layer) string {
	if l.Title != "" {
		return l.Title
	}
	return l.ID
}
