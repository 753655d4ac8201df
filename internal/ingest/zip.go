// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package ingest

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/doctown/docpack/internal/store"
	dperr "github.com/doctown/docpack/pkg/errors"
)

// ZipIngester reads files out of a zip archive. Unlike the folder walk it
// takes the archive at face value: entries are not filtered by name.
type ZipIngester struct{}

var _ Ingester = (*ZipIngester)(nil)

// NewZipIngester returns an ingester for .zip archives.
func NewZipIngester() *ZipIngester { return &ZipIngester{} }

func (i *ZipIngester) SourceType() string { return "zip" }

// CanHandle reports whether source is an existing .zip file.
func (i *ZipIngester) CanHandle(source string) bool {
	if !strings.EqualFold(filepath.Ext(source), ".zip") {
		return false
	}
	info, err := os.Stat(source)
	return err == nil && info.Mode().IsRegular()
}

// Ingest calls fn for every file entry in the archive, in archive order.
func (i *ZipIngester) Ingest(ctx context.Context, source string, fn func(rec *store.FileRecord) error) error {
	zr, err := zip.OpenReader(source)
	if err != nil {
		return dperr.Wrap(err, dperr.CodeIngestReadFailure, "opening zip archive", dperr.FieldSource(source))
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			continue
		}

		raw, err := readZipEntry(f)
		if err != nil {
			return dperr.Wrap(err, dperr.CodeIngestReadFailure, "reading zip entry",
				dperr.FieldSource(source), dperr.FieldPath(f.Name))
		}

		rec := fileRecord(f.Name, raw, int64(f.UncompressedSize64))
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
