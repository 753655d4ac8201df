// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

// Package embed turns chunk text into fixed-dimension vectors. Providers
// wrap hosted embedding APIs plus a deterministic local fallback.
package embed

import (
	"context"
	"fmt"

	dperr "github.com/doctown/docpack/pkg/errors"
)

// Provider produces embedding vectors for batches of text.
type Provider interface {
	// ModelName identifies the embedding model, recorded as docpack
	// provenance metadata.
	ModelName() string

	// Dimension is the vector width this provider produces.
	Dimension() int

	// Embed returns one vector per input text, in input order. An empty
	// input yields an empty result and no error.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Config selects and parameterizes a provider.
type Config struct {
	// Provider is "openai", "google", or "hash".
	Provider string

	// Model overrides the provider's default embedding model.
	Model string

	// APIKey authenticates against hosted providers. Unused by "hash".
	APIKey string

	// BaseURL overrides the API endpoint, useful against a mock server.
	BaseURL string

	// Dimensions overrides the vector width where the provider supports it.
	Dimensions int
}

// New builds the provider named by cfg.
func New(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg)
	case "google":
		return NewGoogle(cfg)
	case "hash", "":
		return NewHash(cfg.Dimensions), nil
	default:
		return nil, dperr.New(dperr.CodeEmbedRequestInvalid,
			fmt.Sprintf("unknown embedding provider %q (want openai, google, or hash)", cfg.Provider),
			dperr.FieldProvider(cfg.Provider))
	}
}
