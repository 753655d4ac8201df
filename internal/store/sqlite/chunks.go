// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/doctown/docpack/internal/store"
	dperr "github.com/doctown/docpack/pkg/errors"
)

// StoreChunks inserts all chunks in one transaction and returns their
// store-assigned ids in input order. Ids are monotonically increasing
// across the whole docpack and never reused.
func (d *DocPack) StoreChunks(ctx context.Context, chunks []store.Chunk) ([]int64, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	for _, c := range chunks {
		if strings.TrimSpace(c.Text) == "" {
			return nil, dperr.New(dperr.CodeStoreInvalidInput,
				"store chunks: chunk text must not be blank", dperr.FieldPath(c.FilePath))
		}
	}

	ids := make([]int64, 0, len(chunks))
	err := d.inTx(ctx, func(tx *sql.Tx) error {
		const q = `INSERT INTO chunks (file_path, chunk_index, text, start_char, end_char)
VALUES (?, ?, ?, ?, ?)`
		for _, c := range chunks {
			res, err := tx.ExecContext(ctx, q, c.FilePath, c.Index, c.Text, c.StartChar, c.EndChar)
			if err != nil {
				return dperr.Wrapf(err, dperr.CodeStoreTransactionFailure, "inserting chunk %d of %s", c.Index, c.FilePath)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return dperr.Wrapf(err, dperr.CodeStoreTransactionFailure, "reading chunk id")
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// StoreEmbeddings inserts one vectors row per (chunkID, vector) pair,
// encoding each vector as little-endian float32 bytes. The first write
// fixes the docpack's dimensionality (persisted under the
// embedding_dimensions metadata key); later writes must match it.
func (d *DocPack) StoreEmbeddings(ctx context.Context, chunkIDs []int64, vectors [][]float32) error {
	if len(chunkIDs) != len(vectors) {
		return dperr.Errorf(dperr.CodeStoreInvalidInput,
			"store embeddings: %d chunk ids for %d vectors", len(chunkIDs), len(vectors))
	}
	if len(chunkIDs) == 0 {
		return nil
	}

	dims, err := d.declaredDimensions(ctx)
	if err != nil {
		return err
	}
	if dims == 0 {
		dims = len(vectors[0])
		if dims == 0 {
			return dperr.New(dperr.CodeStoreInvalidInput, "store embeddings: empty vector")
		}
	}
	for i, vec := range vectors {
		if len(vec) != dims {
			return dperr.New(dperr.CodeStoreVectorDimensions, "vector dimensionality mismatch",
				dperr.Field("chunk_id", chunkIDs[i]),
				dperr.Field("got", len(vec)),
				dperr.Field("want", dims))
		}
	}

	return d.inTx(ctx, func(tx *sql.Tx) error {
		// Persist the dimensionality alongside the first batch so readers
		// can decode the blobs.
		const meta = `INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)`
		if _, err := tx.ExecContext(ctx, meta, store.MetaEmbeddingDims, strconv.Itoa(dims)); err != nil {
			return dperr.Wrapf(err, dperr.CodeStoreTransactionFailure, "recording embedding dimensions")
		}

		const q = `INSERT INTO vectors (chunk_id, embedding) VALUES (?, ?)`
		for i, vec := range vectors {
			blob, err := encodeEmbedding(vec)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, q, chunkIDs[i], blob); err != nil {
				return dperr.Wrapf(err, dperr.CodeStoreTransactionFailure, "inserting vector for chunk %d", chunkIDs[i])
			}
		}
		return nil
	})
}

// declaredDimensions returns the persisted embedding dimensionality, or 0
// when no embeddings have been stored yet.
func (d *DocPack) declaredDimensions(ctx context.Context) (int, error) {
	val, err := d.GetMetadata(ctx, store.MetaEmbeddingDims)
	if err != nil {
		if dperr.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	dims, err := strconv.Atoi(val)
	if err != nil || dims <= 0 {
		return 0, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "corrupt %s metadata: %q", store.MetaEmbeddingDims, val)
	}
	return dims, nil
}
