// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

// Package store defines the docpack domain types and the DocStore contract
// implemented by the SQLite backend.
package store

// FileRecord describes one ingested file. Path is the identity; Content is
// nil for binary files.
type FileRecord struct {
	Path      string
	Content   *string
	SizeBytes int64
	Extension string
	IsBinary  bool
}

// Text returns the file content, or the empty string for binary files.
func (f *FileRecord) Text() string {
	if f.Content == nil {
		return ""
	}
	return *f.Content
}

// Chunk is a bounded contiguous fragment of a file's text content.
// StartChar/EndChar are offsets into the original file content, with
// EndChar == StartChar + len(Text).
type Chunk struct {
	FilePath  string
	Index     int
	Text      string
	StartChar int
	EndChar   int
}

// SearchResult is one ranked recall hit.
type SearchResult struct {
	FilePath string
	Text     string
	Score    float64
}

// Well-known metadata keys stamped during freeze.
const (
	MetaDocpackID       = "docpack_id"
	MetaSource          = "source"
	MetaSourceType      = "source_type"
	MetaCreatedAt       = "created_at"
	MetaEmbeddingModel  = "embedding_model"
	MetaEmbeddingDims   = "embedding_dimensions"
)
