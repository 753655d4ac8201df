// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doctown/docpack/internal/store"
	dperr "github.com/doctown/docpack/pkg/errors"
)

// StoreDocument upserts a file record by path. Re-ingesting the same path
// replaces the whole row.
func (d *DocPack) StoreDocument(ctx context.Context, rec *store.FileRecord) error {
	if rec == nil || rec.Path == "" {
		return dperr.New(dperr.CodeStoreInvalidInput, "store document: path must not be empty")
	}

	var content sql.NullString
	if rec.Content != nil {
		content = sql.NullString{String: *rec.Content, Valid: true}
	}

	return d.inTx(ctx, func(tx *sql.Tx) error {
		const q = `INSERT OR REPLACE INTO files (path, content, size_bytes, extension, is_binary)
VALUES (?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, q, rec.Path, content, rec.SizeBytes, rec.Extension, boolToInt(rec.IsBinary)); err != nil {
			return dperr.Wrapf(err, dperr.CodeStoreTransactionFailure, "storing document %s", rec.Path)
		}
		return nil
	})
}

// ListFiles returns all files whose path starts with prefix, ordered by path.
func (d *DocPack) ListFiles(ctx context.Context, prefix string) ([]*store.FileRecord, error) {
	const q = `SELECT path, content, size_bytes, extension, is_binary
FROM files WHERE path LIKE ? ESCAPE '\' ORDER BY path`

	rows, err := d.db.QueryContext(ctx, q, escapeLike(prefix)+"%")
	if err != nil {
		return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "listing files with prefix %q: %w", prefix, err)
	}
	defer func() { _ = rows.Close() }()

	var files []*store.FileRecord
	for rows.Next() {
		rec, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "iterating files: %w", err)
	}

	return files, nil
}

// ReadFile returns the full file row for an exact path, or a coded
// not-found error.
func (d *DocPack) ReadFile(ctx context.Context, path string) (*store.FileRecord, error) {
	const q = `SELECT path, content, size_bytes, extension, is_binary FROM files WHERE path = ?`

	row := d.db.QueryRowContext(ctx, q, path)
	rec, err := scanFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dperr.New(dperr.CodeStoreFileNotFound, "file not found", dperr.FieldPath(path))
		}
		return nil, err
	}
	return rec, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*store.FileRecord, error) {
	var (
		rec      store.FileRecord
		content  sql.NullString
		isBinary int
	)
	if err := row.Scan(&rec.Path, &content, &rec.SizeBytes, &rec.Extension, &isBinary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "scanning file row: %w", err)
	}
	if content.Valid {
		rec.Content = &content.String
	}
	rec.IsBinary = isBinary != 0
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// escapeLike escapes LIKE metacharacters so a prefix containing % or _
// matches literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
