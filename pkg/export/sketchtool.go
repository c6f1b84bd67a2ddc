package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/matzehuels/mailgrid/pkg/errors"
)

// DefaultSketchtool is the binary bundled with the design application.
const DefaultSketchtool = "/Applications/Sketch.app/Contents/Resources/sketchtool/bin/sketchtool"

// Sketchtool exports slices by id from a saved design file.
type Sketchtool struct {
	Binary string // empty uses DefaultSketchtool
	File   string // saved design file; required
}

// Args returns the sketchtool arguments for exporting ids into dir.
func (s *Sketchtool) Args(ids []string, dir string) []string {
	return []string{
		"export", "slices", s.File,
		fmt.Sprintf("--scales=%d", Scale),
		"--formats=png",
		"--use-id-for-name=yes",
		"--group-contents-only=yes",
		"--save-for-web=no",
		"--overwriting=yes",
		"--compact=yes",
		"--items=" + strings.Join(ids, ","),
		"--output=" + dir,
	}
}

// Export implements Exporter. It fails with UNSAVED_DOCUMENT when no design
// file is set and with EXPORT_FAILED when the subprocess exits non-zero.
func (s *Sketchtool) Export(ctx context.Context, assets []Asset, dir string) error {
	if len(assets) == 0 {
		return nil
	}
	if s.File == "" {
		return errors.New(errors.ErrCodeUnsavedDocument, "to export the assets, save the design file first")
	}
	if _, err := os.Stat(s.File); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "design file %s", s.File)
	}
	for _, a := range assets {
		if err := errors.ValidateAssetID(a.ID); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "create %s", dir)
	}

	bin := s.Binary
	if bin == "" {
		bin = DefaultSketchtool
	}
	cmd := exec.CommandContext(ctx, bin, s.Args(IDs(assets), dir)...)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "sketchtool: %s", strings.TrimSpace(errBuf.String()))
	}
	return nil
}
