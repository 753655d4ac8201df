// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package sqlite

import (
	"context"
	"math"
	"sort"

	"github.com/doctown/docpack/internal/store"
	dperr "github.com/doctown/docpack/pkg/errors"
)

// Recall scans every stored (chunk, vector) pair, scores it against the
// query by cosine similarity, and returns at most limit results ranked by
// non-increasing score. Ties keep encounter (chunk id) order.
//
// O(N·D) per query, no index. Fine for one docpack's corpus; swap the
// DocStore implementation if that ever stops being true.
func (d *DocPack) Recall(ctx context.Context, query []float32, limit int) ([]store.SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}
	if len(query) == 0 {
		return nil, dperr.New(dperr.CodeStoreInvalidInput, "recall: query vector must not be empty")
	}

	dims, err := d.declaredDimensions(ctx)
	if err != nil {
		return nil, err
	}
	if dims > 0 && len(query) != dims {
		return nil, dperr.New(dperr.CodeStoreVectorDimensions, "query vector disagrees with docpack dimensionality",
			dperr.Field("got", len(query)),
			dperr.Field("want", dims))
	}

	const q = `SELECT c.file_path, c.text, v.embedding
FROM chunks c JOIN vectors v ON c.id = v.chunk_id
ORDER BY c.id`

	rows, err := d.db.QueryContext(ctx, q)
	if err != nil {
		return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "scanning vectors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []store.SearchResult
	for rows.Next() {
		var (
			r    store.SearchResult
			blob []byte
		)
		if err := rows.Scan(&r.FilePath, &r.Text, &blob); err != nil {
			return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "scanning recall row: %w", err)
		}

		vec, err := decodeEmbedding(blob, dims)
		if err != nil {
			return nil, err
		}

		r.Score = cosineSimilarity(query, vec)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dperr.Errorf(dperr.CodeStoreDatabaseFailure, "iterating recall rows: %w", err)
	}

	// Stable: equal scores keep encounter order, no secondary key.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// cosineSimilarity returns dot(a,b) / (‖a‖·‖b‖), or 0.0 when either norm is
// zero: the degenerate all-zero vector scores nothing rather than dividing
// by zero.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
