// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

// Package ingest turns raw sources (folders, zip archives) into sequences
// of file records for freezing into a docpack.
package ingest

import (
	"context"

	"github.com/doctown/docpack/internal/store"
	dperr "github.com/doctown/docpack/pkg/errors"
)

// Ingester produces file records from one kind of source. The walk is lazy,
// single-pass, and finite; returning an error from fn aborts it.
type Ingester interface {
	// SourceType identifies this source kind, e.g. "folder" or "zip".
	SourceType() string

	// CanHandle reports whether this ingester can process the given source.
	CanHandle(source string) bool

	// Ingest calls fn once per file in the source. Binary files carry a nil
	// Content.
	Ingest(ctx context.Context, source string, fn func(rec *store.FileRecord) error) error
}

// Registry is an explicit, owned collection of ingesters. The composing
// layer constructs one and passes it down; there is no package-level
// registration.
type Registry struct {
	ingesters []Ingester
}

// NewRegistry returns a registry holding the given ingesters, consulted in
// order.
func NewRegistry(ingesters ...Ingester) *Registry {
	return &Registry{ingesters: ingesters}
}

// DefaultRegistry returns a registry with the built-in ingesters: zip
// archives first, then folders.
func DefaultRegistry() *Registry {
	return NewRegistry(NewZipIngester(), NewFolderIngester())
}

// Register appends a custom ingester.
func (r *Registry) Register(ing Ingester) {
	r.ingesters = append(r.ingesters, ing)
}

// Resolve returns the first ingester that can handle the source, or a coded
// error naming the supported kinds.
func (r *Registry) Resolve(source string) (Ingester, error) {
	for _, ing := range r.ingesters {
		if ing.CanHandle(source) {
			return ing, nil
		}
	}
	return nil, dperr.New(dperr.CodeIngestSourceUnsupported,
		"no ingester can process this source (supported: folders, .zip archives)",
		dperr.FieldSource(source))
}
