// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

// Package sqlite implements store.DocStore on a single SQLite file, the
// .docpack container format. Four relations: files, chunks, vectors,
// metadata. Embeddings are stored as raw little-endian float32 blobs;
// readers must take the dimensionality from the embedding_dimensions
// metadata key, the schema does not self-describe vector length.
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/doctown/docpack/internal/store"
	dperr "github.com/doctown/docpack/pkg/errors"
)

// Compile-time interface check.
var _ store.DocStore = (*DocPack)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS files (
	path       TEXT PRIMARY KEY,
	content    TEXT,
	size_bytes INTEGER NOT NULL,
	extension  TEXT,
	is_binary  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS chunks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path   TEXT NOT NULL,
	chunk_index INTEGER NOT NULL,
	text        TEXT NOT NULL,
	start_char  INTEGER,
	end_char    INTEGER,
	FOREIGN KEY (file_path) REFERENCES files(path)
);

CREATE TABLE IF NOT EXISTS vectors (
	chunk_id  INTEGER PRIMARY KEY,
	embedding BLOB NOT NULL,
	FOREIGN KEY (chunk_id) REFERENCES chunks(id)
);

CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT
);

CREATE INDEX IF NOT EXISTS idx_chunks_file ON chunks(file_path);
`

// DocPack is the SQLite-backed docpack store. One process owns a given
// docpack for writing at a time; concurrent writers are out of scope.
type DocPack struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (or creates) the docpack at path and idempotently initialises
// the schema. A fresh docpack is stamped with a docpack_id provenance key.
func Open(path string) (*DocPack, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "opening docpack %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "pinging docpack %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "initialising docpack schema: %w", err)
	}

	// Stamp an identity once; re-opens keep the existing one.
	const stamp = `INSERT OR IGNORE INTO metadata (key, value) VALUES (?, ?)`
	if _, err := db.Exec(stamp, store.MetaDocpackID, uuid.NewString()); err != nil {
		_ = db.Close()
		return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "stamping docpack id: %w", err)
	}

	return &DocPack{db: db, path: path, logger: slog.Default()}, nil
}

// Path returns the filesystem location of the docpack file.
func (d *DocPack) Path() string {
	return d.path
}

// Close closes the underlying database connection.
func (d *DocPack) Close() error {
	return d.db.Close()
}

// inTx runs fn inside a transaction: commit on success, roll back and
// propagate on any failure, on every exit path.
func (d *DocPack) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return dperr.Errorf(dperr.CodeStoreTransactionFailure, "beginning transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			d.logger.ErrorContext(ctx, "transaction rollback failed", "docpack", d.path, "error", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dperr.Errorf(dperr.CodeStoreTransactionFailure, "committing transaction: %w", err)
	}
	return nil
}
