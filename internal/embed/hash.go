// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// defaultHashDimensions balances recall quality against docpack size for
// the offline provider.
const defaultHashDimensions = 256

// Hash is a deterministic local provider using token feature hashing. It
// needs no network or API key, so freezing always has a working default,
// and identical text always produces identical vectors.
type Hash struct {
	dims int
}

var _ Provider = (*Hash)(nil)

// NewHash creates the local provider. dims <= 0 selects the default width.
func NewHash(dims int) *Hash {
	if dims <= 0 {
		dims = defaultHashDimensions
	}
	return &Hash{dims: dims}
}

func (p *Hash) ModelName() string { return "hash-fnv" }
func (p *Hash) Dimension() int    { return p.dims }

func (p *Hash) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = p.embedOne(t)
	}
	return vectors, nil
}

// embedOne buckets lowercased word tokens by FNV-1a hash and L2-normalizes
// the counts. Texts with no tokens map to the zero vector, which cosine
// similarity scores as 0 against everything.
func (p *Hash) embedOne(text string) []float32 {
	vec := make([]float32, p.dims)

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, tok := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum32()%uint32(p.dims)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := 1 / math.Sqrt(norm)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) * inv)
		}
	}
	return vec
}
