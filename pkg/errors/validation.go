package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxAssetIDLength bounds asset ids, which end up as file names.
const maxAssetIDLength = 256

// ValidateAssetID checks that an asset id is safe to use as a file name
// inside the assets directory ("<id>@2x.png").
//
// Rejected:
//   - empty ids and ids longer than 256 bytes
//   - control characters and null bytes
//   - path separators and traversal sequences
//   - leading dots (hidden files)
func ValidateAssetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidAssetID, "asset id cannot be empty")
	}
	if len(id) > maxAssetIDLength {
		return New(ErrCodeInvalidAssetID, "asset id too long (max %d characters)", maxAssetIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAssetID, "asset id contains control characters")
		}
	}
	if strings.ContainsAny(id, `/\`) {
		return New(ErrCodeInvalidAssetID, "asset id %q contains a path separator", id)
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidAssetID, "asset id %q contains a traversal sequence", id)
	}
	if strings.HasPrefix(id, ".") {
		return New(ErrCodeInvalidAssetID, "asset id %q cannot start with a dot", id)
	}
	return nil
}

// ValidateOutputPath checks that path names an HTML file that can be
// written: non-empty, free of control characters, not a directory-style
// path, and with an .html or .htm extension.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, `\`) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return nil
	}
	return New(ErrCodeInvalidPath, "output path %q must end in .html", path)
}
