// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package embed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctown/docpack/internal/embed"
	dperr "github.com/doctown/docpack/pkg/errors"
)

// embeddingsStub serves the embeddings endpoint, recording the last request
// body and answering every input with a vector of the given width.
func embeddingsStub(t *testing.T, width int, lastBody *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*lastBody = body

		inputs, _ := body["input"].([]any)
		data := make([]map[string]any, len(inputs))
		for i := range inputs {
			vec := make([]float64, width)
			vec[i%width] = 1
			data[i] = map[string]any{"object": "embedding", "index": i, "embedding": vec}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  body["model"],
			"usage":  map[string]any{"prompt_tokens": 1, "total_tokens": 1},
		}))
	}))
}

func TestOpenAI_ForwardsConfiguredDimensions(t *testing.T) {
	var gotBody map[string]any
	srv := embeddingsStub(t, 8, &gotBody)
	defer srv.Close()

	p, err := embed.NewOpenAI(embed.Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		Dimensions: 8,
	})
	require.NoError(t, err)
	require.Equal(t, 8, p.Dimension())

	vectors, err := p.Embed(context.Background(), []string{"alpha", "beta"})
	require.NoError(t, err)

	// The configured width must reach the API, not just Dimension().
	assert.Equal(t, float64(8), gotBody["dimensions"])
	assert.Equal(t, "text-embedding-3-small", gotBody["model"])
	assert.Equal(t, []any{"alpha", "beta"}, gotBody["input"])

	require.Len(t, vectors, 2)
	for _, vec := range vectors {
		assert.Len(t, vec, p.Dimension())
	}
}

func TestOpenAI_RejectsUnexpectedVectorWidth(t *testing.T) {
	var gotBody map[string]any
	srv := embeddingsStub(t, 4, &gotBody)
	defer srv.Close()

	p, err := embed.NewOpenAI(embed.Config{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		Dimensions: 8,
	})
	require.NoError(t, err)

	_, err = p.Embed(context.Background(), []string{"alpha"})
	require.Error(t, err)
	assert.True(t, dperr.HasCode(err, dperr.CodeEmbedResponseInvalid))
}
