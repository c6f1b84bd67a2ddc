// Package cli implements the mailgrid command-line interface.
//
// Commands:
//   - convert: turn a layer document into an email HTML file and export its assets
//   - tree: show the containment tree as text or a Graphviz diagram
//   - inspect: list layers and summarize the generated tables
//   - links: edit layer hyperlinks interactively
//   - prefs, cache, completion: housekeeping
//
// All commands accept --verbose (-v) for debug logging. The logger travels
// through the command context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mailgrid/pkg/buildinfo"
	"github.com/matzehuels/mailgrid/pkg/cache"
	"github.com/matzehuels/mailgrid/pkg/observability"
	"github.com/matzehuels/mailgrid/pkg/pipeline"
	"github.com/matzehuels/mailgrid/pkg/prefs"
)

// appName names the cache and config directories.
const appName = "mailgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	// Prefs overrides the preference store. Nil opens the file store on
	// first use.
	Prefs prefs.Store
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	buildinfo.Resolve()
	root := &cobra.Command{
		Use:          appName,
		Short:        "mailgrid converts design layers into email-safe HTML tables",
		Long:         `mailgrid turns absolutely positioned design layers into nested HTML tables that render the same way in every email client.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetConvertHooks(hooks)
			observability.SetCacheHooks(hooks)
			cmd.SetContext(withLogger(contextOf(cmd), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.linksCommand())
	root.AddCommand(c.prefsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// newRunner creates a pipeline runner backed by the cache selected by the
// flags.
func (c *CLI) newRunner(ctx context.Context, noCache bool, cacheURL string) (*pipeline.Runner, error) {
	store, err := openCache(ctx, noCache, cacheURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func openCache(ctx context.Context, noCache bool, url string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil && url == "" {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, url, dir)
}

func (c *CLI) prefsStore() (prefs.Store, error) {
	if c.Prefs != nil {
		return c.Prefs, nil
	}
	store, err := prefs.NewFileStore("")
	if err != nil {
		return nil, err
	}
	c.Prefs = store
	return store, nil
}

// cacheDir returns $XDG_CACHE_HOME/mailgrid, falling back to
// ~/.cache/mailgrid.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
