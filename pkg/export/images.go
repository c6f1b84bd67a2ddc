package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mailgrid/pkg/errors"
)

// headerSize is enough bytes for filetype to recognize every image format.
const headerSize = 262

// Images renders local bitmaps to Scale times the layer size.
type Images struct {
	// Concurrency bounds parallel conversions; values below 1 mean 4.
	Concurrency int
}

// Export implements Exporter. Every asset is attempted; failures are
// combined into one EXPORT_FAILED error.
func (e *Images) Export(ctx context.Context, assets []Asset, dir string) error {
	if len(assets) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "create %s", dir)
	}

	limit := e.Concurrency
	if limit < 1 {
		limit = 4
	}
	errs := make([]error, len(assets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, a := range assets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			errs[i] = exportImage(a, dir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := multierr.Combine(errs...); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "%d of %d assets failed", len(multierr.Errors(err)), len(assets))
	}
	return nil
}

func exportImage(a Asset, dir string) error {
	if err := errors.ValidateAssetID(a.ID); err != nil {
		return err
	}
	if a.Image == "" {
		return fmt.Errorf("asset %s: no local image", a.ID)
	}
	if err := checkImage(a.Image); err != nil {
		return fmt.Errorf("asset %s: %w", a.ID, err)
	}

	img, err := imaging.Open(a.Image, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("asset %s: decode: %w", a.ID, err)
	}
	if a.Width > 0 && a.Height > 0 {
		img = imaging.Resize(img, a.Width*Scale, a.Height*Scale, imaging.Lanczos)
	}
	if err := imaging.Save(img, filepath.Join(dir, FileName(a.ID))); err != nil {
		return fmt.Errorf("asset %s: write: %w", a.ID, err)
	}
	return nil
}

// checkImage verifies that path starts with an image signature.
func checkImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := f.Read(head)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if !filetype.IsImage(head[:n]) {
		return fmt.Errorf("%s is not an image", path)
	}
	return nil
}
