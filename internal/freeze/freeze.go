// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

// Package freeze runs the ingest -> chunk -> embed -> store pipeline that
// turns a source tree or archive into a docpack.
package freeze

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/doctown/docpack/internal/chunk"
	"github.com/doctown/docpack/internal/embed"
	"github.com/doctown/docpack/internal/ingest"
	"github.com/doctown/docpack/internal/store"
)

// defaultEmbedBatch bounds how many chunk texts go to the embedding
// provider in one request.
const defaultEmbedBatch = 64

// Pipeline wires the collaborators of a freeze run. All fields except
// Logger and EmbedBatch are required.
type Pipeline struct {
	Store    store.DocStore
	Registry *ingest.Registry
	Provider embed.Provider

	// Splitter cuts file text into chunks; defaults to chunk.Split.
	Splitter func(text, filePath string) []store.Chunk

	// EmbedBatch caps texts per embedding request; defaults to 64.
	EmbedBatch int

	Logger *slog.Logger
}

// Stats summarizes a completed freeze run.
type Stats struct {
	Files       int
	TextFiles   int
	BinaryFiles int
	Chunks      int
	Vectors     int
	Duration    time.Duration
}

// Run freezes source into the pipeline's store: every file is recorded,
// text files are chunked and embedded. Provenance metadata is stamped
// before any file is written so a partially frozen pack still says where
// it came from.
func (p *Pipeline) Run(ctx context.Context, source string) (*Stats, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	splitter := p.Splitter
	if splitter == nil {
		splitter = chunk.Split
	}
	batch := p.EmbedBatch
	if batch <= 0 {
		batch = defaultEmbedBatch
	}

	ing, err := p.Registry.Resolve(source)
	if err != nil {
		return nil, err
	}

	if err := p.stampProvenance(ctx, source, ing.SourceType()); err != nil {
		return nil, err
	}

	start := time.Now()
	stats := &Stats{}

	logger.Info("freezing source",
		"source", source,
		"source_type", ing.SourceType(),
		"embedding_model", p.Provider.ModelName())

	err = ing.Ingest(ctx, source, func(rec *store.FileRecord) error {
		if err := p.Store.StoreDocument(ctx, rec); err != nil {
			return err
		}
		stats.Files++

		if rec.IsBinary || rec.Content == nil {
			stats.BinaryFiles++
			return nil
		}
		stats.TextFiles++

		chunks := splitter(rec.Text(), rec.Path)
		if len(chunks) == 0 {
			return nil
		}

		ids, err := p.Store.StoreChunks(ctx, chunks)
		if err != nil {
			return err
		}
		stats.Chunks += len(chunks)

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}

		for lo := 0; lo < len(texts); lo += batch {
			hi := lo + batch
			if hi > len(texts) {
				hi = len(texts)
			}

			vectors, err := p.Provider.Embed(ctx, texts[lo:hi])
			if err != nil {
				return err
			}
			if err := p.Store.StoreEmbeddings(ctx, ids[lo:hi], vectors); err != nil {
				return err
			}
			stats.Vectors += len(vectors)
		}

		logger.Debug("froze file", "path", rec.Path, "chunks", len(chunks))
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	logger.Info("freeze complete",
		"files", stats.Files,
		"text_files", stats.TextFiles,
		"binary_files", stats.BinaryFiles,
		"chunks", stats.Chunks,
		"vectors", stats.Vectors,
		"duration", stats.Duration)

	return stats, nil
}

// stampProvenance records where the pack came from and how it was embedded.
func (p *Pipeline) stampProvenance(ctx context.Context, source, sourceType string) error {
	meta := map[string]string{
		store.MetaSource:         source,
		store.MetaSourceType:     sourceType,
		store.MetaCreatedAt:      time.Now().UTC().Format(time.RFC3339),
		store.MetaEmbeddingModel: p.Provider.ModelName(),
		store.MetaEmbeddingDims:  strconv.Itoa(p.Provider.Dimension()),
	}
	for key, value := range meta {
		if err := p.Store.SetMetadata(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
