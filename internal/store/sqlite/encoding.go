// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package sqlite

import (
	"encoding/binary"
	"math"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"

	dperr "github.com/doctown/docpack/pkg/errors"
)

// encodeEmbedding encodes a vector as a compact little-endian float32 blob,
// 4 bytes per component. This is the persisted .docpack wire format.
func encodeEmbedding(vec []float32) ([]byte, error) {
	blob, err := sqlite_vec.SerializeFloat32(vec)
	if err != nil {
		return nil, dperr.Errorf(dperr.CodeStoreVectorMalformed, "serialising embedding: %w", err)
	}
	return blob, nil
}

// decodeEmbedding decodes a stored blob back into float32 components.
// wantDims > 0 enforces the docpack's declared dimensionality; a blob whose
// byte length is not a multiple of 4, or whose decoded length disagrees with
// the declared dimensionality, is a hard decode error, never silently
// truncated.
func decodeEmbedding(blob []byte, wantDims int) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, dperr.New(dperr.CodeStoreVectorMalformed, "embedding blob length is not a multiple of 4",
			dperr.Field("bytes", len(blob)))
	}

	n := len(blob) / 4
	if wantDims > 0 && n != wantDims {
		return nil, dperr.New(dperr.CodeStoreVectorDimensions, "embedding blob disagrees with declared dimensionality",
			dperr.Field("got", n),
			dperr.Field("want", wantDims))
	}

	vec := make([]float32, n)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
