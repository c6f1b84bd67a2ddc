package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/matzehuels/mailgrid/pkg/cache"
	"github.com/matzehuels/mailgrid/pkg/errors"
	"github.com/matzehuels/mailgrid/pkg/export"
	mgio "github.com/matzehuels/mailgrid/pkg/io"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/observability"
)

// Runner executes conversions with caching and exports their assets.
//
// A Runner holds no per-conversion state; one value may serve concurrent
// conversions with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Exporter export.Exporter
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer and a nil logger the default logger. The
// exporter starts as [export.Nop].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Exporter: export.Nop{},
	}
}

// Execute converts doc, serving the HTML from the cache when the same
// document was converted with the same options before.
func (r *Runner) Execute(ctx context.Context, doc *layer.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	key, err := r.documentKey(doc, opts)
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		if html, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "document")
			logger.Debug("cache hit", "document", doc.Name)
			// Only rendering is skipped; the grid is rebuilt for its stats.
			start := time.Now()
			tbl, forest := Table(doc, opts)
			return &Result{
				HTML:     string(html),
				Assets:   Assets(doc),
				Warnings: multierr.Errors(doc.Validate()),
				Stats:    tableStats(tbl, forest, start),
				CacheHit: true,
			}, nil
		} else if err != nil {
			logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	hooks := observability.Convert()
	hooks.OnConvertStart(ctx, doc.Name, layer.Count(doc.Layers))
	result, err := Convert(doc, opts)
	if err != nil {
		hooks.OnConvertComplete(ctx, doc.Name, 0, 0, err)
		return nil, err
	}
	hooks.OnConvertComplete(ctx, doc.Name, result.Stats.Tables, result.Stats.Duration, nil)

	logger.Info("converted document",
		"layers", result.Stats.Layers,
		"tables", result.Stats.Tables,
		"duration", result.Stats.Duration)

	if err := r.Cache.Set(ctx, key, []byte(result.HTML), cache.TTLDocument); err != nil {
		logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "document", len(result.HTML))
	}
	return result, nil
}

// ExportAssets writes the assets of result next to the HTML file at
// htmlPath, into its assets directory. Every asset id is checked before
// the exporter runs since ids become file names.
func (r *Runner) ExportAssets(ctx context.Context, result *Result, htmlPath string) error {
	if len(result.Assets) == 0 {
		return nil
	}
	for _, a := range result.Assets {
		if err := errors.ValidateAssetID(a.ID); err != nil {
			return err
		}
	}

	dir := filepath.Join(filepath.Dir(htmlPath), export.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "create %s", dir)
	}

	exporter := r.Exporter
	if exporter == nil {
		exporter = export.Nop{}
	}
	start := time.Now()
	err := exporter.Export(ctx, result.Assets, dir)
	observability.Convert().OnExport(ctx, string(export.KindOf(exporter)), len(result.Assets), time.Since(start), err)
	if err != nil {
		return err
	}
	r.Logger.Info("exported assets", "count", len(result.Assets), "dir", dir, "duration", time.Since(start))
	return nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// documentKey hashes the canonical JSON form of doc together with the
// options that affect output.
func (r *Runner) documentKey(doc *layer.Document, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := mgio.WriteJSON(doc, &buf); err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	return r.Keyer.DocumentKey(cache.Hash(buf.Bytes()), opts.CacheKeyOpts()), nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
