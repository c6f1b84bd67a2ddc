package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mailgrid/pkg/errors"
	mgio "github.com/matzehuels/mailgrid/pkg/io"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/pipeline"
	"github.com/matzehuels/mailgrid/pkg/prefs"
)

func sampleDocument() *layer.Document {
	return &layer.Document{
		Name:   "Spring Sale",
		Width:  200,
		Height: 120,
		Layers: []layer.Layer{
			{ID: "hero", Title: "Hero", X1: 0, Y1: 0, X2: 200, Y2: 80, Children: []layer.Layer{
				{ID: "headline", Title: "Headline", X1: 10, Y1: 10, X2: 190, Y2: 40,
					Content: []layer.TextRun{{Text: "50% off"}}},
			}},
			{ID: "footer", X1: 0, Y1: 80, X2: 200, Y2: 120, URL: "example.com"},
		},
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		name  string
		doc   *layer.Document
		input string
		want  string
	}{
		{"document name", &layer.Document{Name: "Spring Sale 2026"}, "in.json", "spring-sale-2026.html"},
		{"file name", &layer.Document{}, "/tmp/Weekly Digest.json", "weekly-digest.html"},
		{"nothing usable", &layer.Document{Name: "   "}, "/tmp/.json", "email.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultOutput(tt.doc, tt.input); got != tt.want {
				t.Errorf("defaultOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMergeOptions(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "mailgrid.toml")
	if err := os.WriteFile(cfg, []byte("stacking = \"first-wins\"\nindent = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	newCmd := func(args ...string) (*cobra.Command, pipeline.Options) {
		var opts pipeline.Options
		cmd := &cobra.Command{Use: "test"}
		addOptionFlags(cmd, &opts)
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}
		return cmd, opts
	}

	t.Run("config only", func(t *testing.T) {
		cmd, flags := newCmd()
		got, err := mergeOptions(cmd, cfg, flags)
		if err != nil {
			t.Fatal(err)
		}
		if got.Stacking != "first-wins" || got.Indent != 5 || got.Order != pipeline.DefaultOrder {
			t.Errorf("mergeOptions() = %+v", got)
		}
	})

	t.Run("flags override config", func(t *testing.T) {
		cmd, flags := newCmd("--stacking", "last-wins", "--links", "both")
		got, err := mergeOptions(cmd, cfg, flags)
		if err != nil {
			t.Fatal(err)
		}
		if got.Stacking != "last-wins" || got.Links != "both" || got.Indent != 5 {
			t.Errorf("mergeOptions() = %+v", got)
		}
	})

	t.Run("invalid flag value", func(t *testing.T) {
		cmd, flags := newCmd("--order", "sideways")
		_, err := mergeOptions(cmd, "", flags)
		if !errors.Is(err, errors.ErrCodeInvalidOption) {
			t.Errorf("mergeOptions() error = %v, want %s", err, errors.ErrCodeInvalidOption)
		}
	})
}

func TestApplyLink(t *testing.T) {
	tests := []struct {
		name       string
		assignment string
		id         string
		want       string
		wantErr    bool
	}{
		{name: "set", assignment: "headline=https://example.com/sale", id: "headline", want: "https://example.com/sale"},
		{name: "email", assignment: "hero=hello@example.com", id: "hero", want: "hello@example.com"},
		{name: "clear", assignment: "footer=", id: "footer", want: ""},
		{name: "bare domain", assignment: "footer=example.org", id: "footer", want: "example.org"},
		{name: "port", assignment: "hero=https://example.com:8080/promo", id: "hero", want: "https://example.com:8080/promo"},
		{name: "no separator", assignment: "footer", wantErr: true},
		{name: "unknown id", assignment: "nope=www.example.com", wantErr: true},
		{name: "not a link", assignment: "hero=click here", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			err := applyLink(doc, tt.assignment)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("applyLink() error = %v, want %s", err, errors.ErrCodeInvalidInput)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			l, _ := doc.Find(tt.id)
			if l.URL != tt.want {
				t.Errorf("URL = %q, want %q", l.URL, tt.want)
			}
		})
	}
}

func TestRunSetLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := mgio.ExportJSON(sampleDocument(), path); err != nil {
		t.Fatal(err)
	}

	if err := runSetLinks(t.Context(), path, []string{"headline=www.example.com/sale"}); err != nil {
		t.Fatal(err)
	}

	doc, err := mgio.ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	l, ok := doc.Find("headline")
	if !ok || l.URL != "www.example.com/sale" {
		t.Errorf("headline after save = %+v", l)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m LinksModel, keys ...string) LinksModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(LinksModel)
	}
	return m
}

func TestLinksModel(t *testing.T) {
	t.Run("lists layers depth first", func(t *testing.T) {
		m := NewLinksModel(sampleDocument(), false)
		var ids []string
		for _, l := range m.Layers {
			ids = append(ids, l.ID)
		}
		if got := strings.Join(ids, ","); got != "hero,headline,footer" {
			t.Errorf("layers = %s", got)
		}
		if m.Depths[1] != 1 {
			t.Errorf("headline depth = %d, want 1", m.Depths[1])
		}
	})

	t.Run("edit link", func(t *testing.T) {
		doc := sampleDocument()
		m := press(NewLinksModel(doc, false), "down", "enter", "https://a.io", "enter")
		if m.Editing || !m.Dirty {
			t.Fatalf("editing=%v dirty=%v", m.Editing, m.Dirty)
		}
		if l, _ := doc.Find("headline"); l.URL != "https://a.io" {
			t.Errorf("headline URL = %q", l.URL)
		}
	})

	t.Run("reject invalid link", func(t *testing.T) {
		m := press(NewLinksModel(sampleDocument(), false), "enter", "not a link", "enter")
		if !m.Editing || m.Err == "" {
			t.Errorf("editing=%v err=%q, want an error while still editing", m.Editing, m.Err)
		}
		m = press(m, "esc")
		if m.Editing || m.Dirty {
			t.Errorf("escape should cancel: editing=%v dirty=%v", m.Editing, m.Dirty)
		}
	})

	t.Run("backspace", func(t *testing.T) {
		m := press(NewLinksModel(sampleDocument(), false), "down", "down", "enter", "backspace", "backspace", "backspace")
		if m.Input != "example." {
			t.Errorf("input = %q", m.Input)
		}
	})

	t.Run("clear and save", func(t *testing.T) {
		doc := sampleDocument()
		m := press(NewLinksModel(doc, false), "down", "down", "x")
		if l, _ := doc.Find("footer"); l.URL != "" || !m.Dirty {
			t.Errorf("footer URL = %q dirty=%v", l.URL, m.Dirty)
		}
		next, cmd := m.Update(key("s"))
		if !next.(LinksModel).Saved || cmd == nil {
			t.Error("s should save and quit")
		}
	})

	t.Run("sidebar", func(t *testing.T) {
		m := NewLinksModel(sampleDocument(), false)
		if strings.Contains(m.View(), "50% off") {
			t.Error("detail pane shown while sidebar is off")
		}
		m = press(m, "down", "tab")
		if !strings.Contains(m.View(), "50% off") {
			t.Errorf("detail pane missing text:\n%s", m.View())
		}
	})
}

func TestPrefsCommand(t *testing.T) {
	store := prefs.NewMemoryStore()
	c := &CLI{Logger: newLogger(&bytes.Buffer{}, log.InfoLevel), Prefs: store}

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := c.prefsCommand()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		err := cmd.ExecuteContext(t.Context())
		return out.String(), err
	}

	if out, err := run("get", prefs.Sidebar); err != nil || strings.TrimSpace(out) != "0" {
		t.Fatalf("get default = %q, %v", out, err)
	}
	if _, err := run("set", prefs.Sidebar, "1"); err != nil {
		t.Fatal(err)
	}
	if !prefs.Enabled(t.Context(), store, prefs.Sidebar) {
		t.Error("sidebar should be enabled after set")
	}
	if _, err := run("set", prefs.Sidebar, "yes"); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("set invalid value error = %v", err)
	}
}

func TestRenderTextTree(t *testing.T) {
	out := renderTextTree("Spring Sale", sampleDocument().Layers)
	for _, want := range []string{"Spring Sale", "Hero", "Headline", "[text]", "footer", "example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Hero") > strings.Index(out, "Headline") {
		t.Errorf("child printed before parent:\n%s", out)
	}
}

func TestLayerTable(t *testing.T) {
	out := layerTable(sampleDocument()).Render()
	for _, want := range []string{"ID", "hero", "headline", "0,80 → 200,120", "group", "text", "shape"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
