// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package ingest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/doctown/docpack/internal/store"
	dperr "github.com/doctown/docpack/pkg/errors"
)

// skipDirs are build artifacts and tooling caches never worth freezing.
var skipDirs = map[string]struct{}{
	"__pycache__":   {},
	"node_modules":  {},
	"venv":          {},
	"env":           {},
	"dist":          {},
	"build":         {},
	"target":        {},
	"vendor":        {},
	".git":          {},
	".svn":          {},
	".hg":           {},
	".venv":         {},
	".env":          {},
	".tox":          {},
	".pytest_cache": {},
	".mypy_cache":   {},
	".ruff_cache":   {},
}

// FolderIngester walks a local directory tree.
type FolderIngester struct{}

var _ Ingester = (*FolderIngester)(nil)

// NewFolderIngester returns an ingester for local folders.
func NewFolderIngester() *FolderIngester { return &FolderIngester{} }

func (i *FolderIngester) SourceType() string { return "folder" }

// CanHandle reports whether source is an existing directory.
func (i *FolderIngester) CanHandle(source string) bool {
	info, err := os.Stat(source)
	return err == nil && info.IsDir()
}

// Ingest walks source recursively and calls fn for every file that is not
// hidden or inside an artifact directory. Paths are relative to source and
// slash-separated. Unreadable files are skipped, not fatal.
func (i *FolderIngester) Ingest(ctx context.Context, source string, fn func(rec *store.FileRecord) error) error {
	root, err := filepath.Abs(source)
	if err != nil {
		return dperr.Wrap(err, dperr.CodeIngestReadFailure, "resolving source folder", dperr.FieldSource(source))
	}

	var cbErr error
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && shouldSkip(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if shouldSkip(rel) || !d.Type().IsRegular() {
			return nil
		}

		raw, readErr := os.ReadFile(p)
		if readErr != nil {
			// Permission problems on individual files do not abort the walk.
			return nil
		}

		if err := fn(fileRecord(rel, raw, int64(len(raw)))); err != nil {
			cbErr = err
			return fs.SkipAll
		}
		return nil
	})
	switch {
	case cbErr != nil:
		return cbErr
	case walkErr != nil && ctx.Err() != nil:
		return walkErr
	case walkErr != nil:
		return dperr.Wrap(walkErr, dperr.CodeIngestReadFailure, "walking source folder", dperr.FieldSource(source))
	}
	return nil
}

// shouldSkip reports whether any path component is hidden or a known
// artifact directory.
func shouldSkip(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
		if _, ok := skipDirs[part]; ok {
			return true
		}
	}
	return false
}

// fileRecord classifies raw bytes and builds the record stored for a file.
// Text content is decoded lossily: invalid UTF-8 sequences become U+FFFD.
func fileRecord(relPath string, raw []byte, size int64) *store.FileRecord {
	rec := &store.FileRecord{
		Path:      relPath,
		SizeBytes: size,
		Extension: strings.ToLower(filepath.Ext(relPath)),
		IsBinary:  DetectBinary(relPath, raw),
	}
	if !rec.IsBinary {
		text := strings.ToValidUTF8(string(raw), "�")
		rec.Content = &text
	}
	return rec
}
