// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/doctown/docpack/internal/store"
	dperr "github.com/doctown/docpack/pkg/errors"
)

func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "info",
		Method:      http.MethodGet,
		Path:        "/api/v1/info",
		Summary:     "Docpack provenance and contents summary",
		Tags:        []string{"docpack"},
	}, s.handleInfo)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-files",
		Method:      http.MethodGet,
		Path:        "/api/v1/files",
		Summary:     "List files in the docpack",
		Tags:        []string{"docpack"},
	}, s.handleListFiles)

	huma.Register(s.api, huma.Operation{
		OperationID: "read-file",
		Method:      http.MethodGet,
		Path:        "/api/v1/file",
		Summary:     "Read one file's content",
		Tags:        []string{"docpack"},
	}, s.handleReadFile)

	huma.Register(s.api, huma.Operation{
		OperationID: "recall",
		Method:      http.MethodPost,
		Path:        "/api/v1/recall",
		Summary:     "Semantic search over the docpack",
		Tags:        []string{"docpack"},
	}, s.handleRecall)
}

// --- Request/Response types for huma ---

type infoOutput struct {
	Body InfoBody
}

// InfoBody describes a docpack's provenance.
type InfoBody struct {
	DocpackID      string `json:"docpack_id"`
	Source         string `json:"source,omitempty"`
	SourceType     string `json:"source_type,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	EmbeddingDims  string `json:"embedding_dimensions,omitempty"`
	FileCount      int    `json:"file_count"`
}

type listFilesInput struct {
	Prefix string `query:"prefix" doc:"Only list paths starting with this prefix"`
}
type listFilesOutput struct {
	Body struct {
		Files []FileSummary `json:"files"`
	}
}

// FileSummary is a file listing entry without content.
type FileSummary struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Extension string `json:"extension,omitempty"`
	IsBinary  bool   `json:"is_binary"`
}

type readFileInput struct {
	Path string `query:"path" required:"true" doc:"Docpack-relative file path"`
}
type readFileOutput struct {
	Body struct {
		Path     string `json:"path"`
		Content  string `json:"content"`
		IsBinary bool   `json:"is_binary"`
	}
}

type recallInput struct {
	Body struct {
		Query string `json:"query" minLength:"1" doc:"Natural-language query text"`
		Limit int    `json:"limit,omitempty" doc:"Maximum results, default 5"`
	}
}
type recallOutput struct {
	Body struct {
		Results []RecallResult `json:"results"`
	}
}

// RecallResult is one scored chunk.
type RecallResult struct {
	FilePath string  `json:"file_path"`
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
}

// --- Handlers ---

func (s *Server) handleInfo(ctx context.Context, _ *struct{}) (*infoOutput, error) {
	out := &infoOutput{}

	// Metadata keys may be absent on a partially frozen pack; only the
	// docpack id is guaranteed.
	fields := map[string]*string{
		store.MetaDocpackID:      &out.Body.DocpackID,
		store.MetaSource:         &out.Body.Source,
		store.MetaSourceType:     &out.Body.SourceType,
		store.MetaCreatedAt:      &out.Body.CreatedAt,
		store.MetaEmbeddingModel: &out.Body.EmbeddingModel,
		store.MetaEmbeddingDims:  &out.Body.EmbeddingDims,
	}
	for key, dst := range fields {
		val, err := s.store.GetMetadata(ctx, key)
		if err != nil {
			if dperr.IsNotFound(err) {
				continue
			}
			return nil, s.internalError(err, "reading docpack metadata")
		}
		*dst = val
	}

	files, err := s.store.ListFiles(ctx, "")
	if err != nil {
		return nil, s.internalError(err, "counting docpack files")
	}
	out.Body.FileCount = len(files)

	return out, nil
}

func (s *Server) handleListFiles(ctx context.Context, input *listFilesInput) (*listFilesOutput, error) {
	files, err := s.store.ListFiles(ctx, input.Prefix)
	if err != nil {
		return nil, s.internalError(err, "listing files")
	}

	out := &listFilesOutput{}
	out.Body.Files = make([]FileSummary, len(files))
	for i, f := range files {
		out.Body.Files[i] = FileSummary{
			Path:      f.Path,
			SizeBytes: f.SizeBytes,
			Extension: f.Extension,
			IsBinary:  f.IsBinary,
		}
	}
	return out, nil
}

func (s *Server) handleReadFile(ctx context.Context, input *readFileInput) (*readFileOutput, error) {
	rec, err := s.store.ReadFile(ctx, input.Path)
	if err != nil {
		if dperr.IsNotFound(err) {
			return nil, huma.Error404NotFound(fmt.Sprintf("file %q not found", input.Path))
		}
		return nil, s.internalError(err, "reading file")
	}

	out := &readFileOutput{}
	out.Body.Path = rec.Path
	out.Body.Content = rec.Text()
	out.Body.IsBinary = rec.IsBinary
	return out, nil
}

func (s *Server) handleRecall(ctx context.Context, input *recallInput) (*recallOutput, error) {
	limit := input.Body.Limit
	if limit <= 0 {
		limit = 5
	}

	vectors, err := s.provider.Embed(ctx, []string{input.Body.Query})
	if err != nil {
		if dperr.IsUpstreamFailure(err) {
			return nil, huma.Error502BadGateway("embedding the query failed", err)
		}
		return nil, s.internalError(err, "embedding query")
	}

	results, err := s.store.Recall(ctx, vectors[0], limit)
	if err != nil {
		if dperr.IsInvalidInput(err) || dperr.HasCode(err, dperr.CodeStoreVectorDimensions) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		return nil, s.internalError(err, "recall query")
	}

	out := &recallOutput{}
	out.Body.Results = make([]RecallResult, len(results))
	for i, r := range results {
		out.Body.Results[i] = RecallResult{FilePath: r.FilePath, Text: r.Text, Score: r.Score}
	}
	return out, nil
}

func (s *Server) internalError(err error, msg string) error {
	s.logger.Error(msg, "error", err)
	return huma.Error500InternalServerError(msg, err)
}
