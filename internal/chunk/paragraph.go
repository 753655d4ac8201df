// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

// Package chunk splits text content into bounded fragments for embedding.
package chunk

import (
	"strings"

	"github.com/doctown/docpack/internal/store"
)

// Separator is the paragraph boundary: a blank line.
const Separator = "\n\n"

const (
	// MaxChunkSize is the hard upper bound; longer paragraphs are cut into
	// consecutive fixed-size slices.
	MaxChunkSize = 1000

	// MinChunkSize is the merge threshold; shorter paragraphs accumulate in
	// a buffer until it reaches this size.
	MinChunkSize = 50
)

// pending is a candidate chunk with its start offset into the original text.
type pending struct {
	text  string
	start int
}

// Split cuts text into ordered chunks: split on blank lines, hard-split
// paragraphs over MaxChunkSize, merge paragraphs under MinChunkSize.
// Deterministic, no side effects; offsets index the original text and
// EndChar is always StartChar + len(Text).
func Split(text, filePath string) []store.Chunk {
	return SplitWithBounds(text, filePath, MaxChunkSize, MinChunkSize)
}

// SplitWithBounds is Split with configurable size bounds.
func SplitWithBounds(text, filePath string, maxSize, minSize int) []store.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	segments := strings.Split(text, Separator)

	var (
		processed []pending
		buffer    string
		bufStart  int
	)
	offset := 0

	for _, seg := range segments {
		segStart := offset

		switch {
		case len(seg) > maxSize:
			if buffer != "" {
				processed = append(processed, pending{buffer, bufStart})
				buffer = ""
			}
			// Fixed-size slices at absolute offsets; no reflow across
			// slices.
			for i := 0; i < len(seg); i += maxSize {
				end := i + maxSize
				if end > len(seg) {
					end = len(seg)
				}
				processed = append(processed, pending{seg[i:end], segStart + i})
			}

		case len(seg) < minSize:
			if buffer != "" {
				// Re-join with the original separator so the merged chunk's
				// end offset stays consistent with the source text.
				buffer += Separator + seg
			} else {
				buffer = seg
				bufStart = segStart
			}
			if len(buffer) >= minSize {
				processed = append(processed, pending{buffer, bufStart})
				buffer = ""
			}

		default:
			if buffer != "" {
				processed = append(processed, pending{buffer, bufStart})
				buffer = ""
			}
			processed = append(processed, pending{seg, segStart})
		}

		offset += len(seg) + len(Separator)
	}

	// A trailing short fragment is not dropped.
	if buffer != "" {
		processed = append(processed, pending{buffer, bufStart})
	}

	chunks := make([]store.Chunk, 0, len(processed))
	for idx, p := range processed {
		if strings.TrimSpace(p.text) == "" {
			continue
		}
		chunks = append(chunks, store.Chunk{
			FilePath:  filePath,
			Index:     idx,
			Text:      p.text,
			StartChar: p.start,
			EndChar:   p.start + len(p.text),
		})
	}

	return chunks
}
