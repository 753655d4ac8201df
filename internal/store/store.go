// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package store

import "context"

// DocStore is the persistent home for files, chunks, vectors, and metadata
// of one docpack. Each mutating call is one atomic unit of work: either all
// of its rows are written or none.
//
// Recall is a brute-force cosine scan. That is a deliberate trade-off for
// "one docpack = one small corpus"; an index-backed implementation can be
// swapped in behind this same contract.
type DocStore interface {
	// StoreDocument upserts a file record by path (full row replacement).
	StoreDocument(ctx context.Context, rec *FileRecord) error

	// StoreChunks inserts all chunks in one transaction and returns their
	// store-assigned ids in input order.
	StoreChunks(ctx context.Context, chunks []Chunk) ([]int64, error)

	// StoreEmbeddings inserts one vector per (id, vector) pair. Every vector
	// must match the store's declared embedding dimensionality.
	StoreEmbeddings(ctx context.Context, chunkIDs []int64, vectors [][]float32) error

	// SetMetadata upserts a metadata key. GetMetadata returns a coded
	// not-found error for absent keys.
	SetMetadata(ctx context.Context, key, value string) error
	GetMetadata(ctx context.Context, key string) (string, error)

	// ListFiles returns all files whose path starts with prefix, ordered by
	// path. An empty prefix lists everything.
	ListFiles(ctx context.Context, prefix string) ([]*FileRecord, error)

	// ReadFile returns the full file row, or a coded not-found error.
	ReadFile(ctx context.Context, path string) (*FileRecord, error)

	// Recall scores every stored vector against the query by cosine
	// similarity and returns at most limit results, best first.
	Recall(ctx context.Context, query []float32, limit int) ([]SearchResult, error)

	Close() error
}
