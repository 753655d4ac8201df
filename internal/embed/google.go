// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package embed

import (
	"context"

	"google.golang.org/genai"

	dperr "github.com/doctown/docpack/pkg/errors"
)

const (
	defaultGoogleModel      = "gemini-embedding-001"
	defaultGoogleDimensions = 3072
)

// Google embeds text through the Gemini API.
type Google struct {
	client *genai.Client
	model  string
	dims   int
}

var _ Provider = (*Google)(nil)

// NewGoogle creates a Gemini-backed provider. The API key is required.
func NewGoogle(cfg Config) (*Google, error) {
	if cfg.APIKey == "" {
		return nil, dperr.New(dperr.CodeEmbedRequestInvalid,
			"google embedding provider requires an api key", dperr.FieldProvider("google"))
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, dperr.Wrap(err, dperr.CodeEmbedUpstreamFailure,
			"creating gemini client", dperr.FieldProvider("google"))
	}

	model := cfg.Model
	if model == "" {
		model = defaultGoogleModel
	}
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = defaultGoogleDimensions
	}

	return &Google{client: client, model: model, dims: dims}, nil
}

func (p *Google) ModelName() string { return p.model }
func (p *Google) Dimension() int    { return p.dims }

func (p *Google) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	dims := int32(p.dims)
	resp, err := p.client.Models.EmbedContent(ctx, p.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, dperr.Wrap(err, dperr.CodeEmbedUpstreamFailure,
			"gemini embedding request failed", dperr.FieldProvider("google"), dperr.Field("model", p.model))
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, dperr.New(dperr.CodeEmbedResponseInvalid,
			"gemini returned a different number of embeddings than inputs",
			dperr.FieldProvider("google"),
			dperr.Field("want", len(texts)), dperr.Field("got", len(resp.Embeddings)))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, dperr.New(dperr.CodeEmbedResponseInvalid,
				"gemini returned an empty embedding", dperr.FieldProvider("google"), dperr.Field("index", i))
		}
		if len(e.Values) != p.dims {
			return nil, dperr.New(dperr.CodeEmbedResponseInvalid,
				"gemini returned an embedding of unexpected width",
				dperr.FieldProvider("google"),
				dperr.Field("want", p.dims), dperr.Field("got", len(e.Values)))
		}
		vectors[i] = e.Values
	}
	return vectors, nil
}
