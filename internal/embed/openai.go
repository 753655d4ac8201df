// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package embed

import (
	"context"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	dperr "github.com/doctown/docpack/pkg/errors"
)

const (
	defaultOpenAIModel      = "text-embedding-3-small"
	defaultOpenAIDimensions = 1536
)

// OpenAI embeds text through the OpenAI embeddings API.
type OpenAI struct {
	client openaisdk.Client
	model  string
	dims   int
}

var _ Provider = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI-backed provider. The API key is required.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, dperr.New(dperr.CodeEmbedRequestInvalid,
			"openai embedding provider requires an api key", dperr.FieldProvider("openai"))
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = defaultOpenAIDimensions
	}

	return &OpenAI{client: openaisdk.NewClient(opts...), model: model, dims: dims}, nil
}

func (p *OpenAI) ModelName() string { return p.model }
func (p *OpenAI) Dimension() int    { return p.dims }

func (p *OpenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := p.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Input:      openaisdk.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:      openaisdk.EmbeddingModel(p.model),
		Dimensions: openaisdk.Int(int64(p.dims)),
	})
	if err != nil {
		return nil, dperr.Wrap(err, dperr.CodeEmbedUpstreamFailure,
			"openai embedding request failed", dperr.FieldProvider("openai"), dperr.Field("model", p.model))
	}
	if len(resp.Data) != len(texts) {
		return nil, dperr.New(dperr.CodeEmbedResponseInvalid,
			"openai returned a different number of embeddings than inputs",
			dperr.FieldProvider("openai"),
			dperr.Field("want", len(texts)), dperr.Field("got", len(resp.Data)))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		if len(d.Embedding) != p.dims {
			return nil, dperr.New(dperr.CodeEmbedResponseInvalid,
				"openai returned an embedding of unexpected width",
				dperr.FieldProvider("openai"),
				dperr.Field("want", p.dims), dperr.Field("got", len(d.Embedding)))
		}
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
