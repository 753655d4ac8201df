// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	dperr "github.com/doctown/docpack/pkg/errors"
)

// SetMetadata upserts a metadata key/value pair.
func (d *DocPack) SetMetadata(ctx context.Context, key, value string) error {
	if key == "" {
		return dperr.New(dperr.CodeStoreInvalidInput, "set metadata: key must not be empty")
	}

	return d.inTx(ctx, func(tx *sql.Tx) error {
		const q = `INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)`
		if _, err := tx.ExecContext(ctx, q, key, value); err != nil {
			return dperr.Wrapf(err, dperr.CodeStoreTransactionFailure, "setting metadata %s", key)
		}
		return nil
	})
}

// GetMetadata returns the value for key, or a coded not-found error.
func (d *DocPack) GetMetadata(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM metadata WHERE key = ?`

	var value string
	if err := d.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", dperr.New(dperr.CodeStoreMetadataNotFound, "metadata key not found", dperr.Field("key", key))
		}
		return "", dperr.Errorf(dperr.CodeStoreDatabaseFailure, "getting metadata %s: %w", key, err)
	}
	return value, nil
}
