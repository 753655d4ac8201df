// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package freeze_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctown/docpack/internal/embed"
	"github.com/doctown/docpack/internal/freeze"
	"github.com/doctown/docpack/internal/ingest"
	"github.com/doctown/docpack/internal/store"
	"github.com/doctown/docpack/internal/store/sqlite"
)

func writeSourceTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

func newPipeline(t *testing.T) (*freeze.Pipeline, *sqlite.DocPack, embed.Provider) {
	t.Helper()
	dp, err := sqlite.Open(filepath.Join(t.TempDir(), "out.docpack"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dp.Close() })

	provider := embed.NewHash(64)
	return &freeze.Pipeline{
		Store:    dp,
		Registry: ingest.DefaultRegistry(),
		Provider: provider,
	}, dp, provider
}

func TestPipeline_FreezeFolderEndToEnd(t *testing.T) {
	ctx := context.Background()

	paragraph := strings.Repeat("the quick brown fox jumps over the lazy dog ", 3)
	source := writeSourceTree(t, map[string]string{
		"notes/animals.txt": paragraph,
		"notes/space.txt":   strings.Repeat("rockets launch into orbit around distant planets ", 3),
		"logo.png":          "\x89PNG\x00",
	})

	pipeline, dp, provider := newPipeline(t)
	stats, err := pipeline.Run(ctx, source)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 2, stats.TextFiles)
	assert.Equal(t, 1, stats.BinaryFiles)
	assert.Positive(t, stats.Chunks)
	assert.Equal(t, stats.Chunks, stats.Vectors)

	// Provenance metadata is stamped.
	src, err := dp.GetMetadata(ctx, store.MetaSource)
	require.NoError(t, err)
	assert.Equal(t, source, src)

	srcType, err := dp.GetMetadata(ctx, store.MetaSourceType)
	require.NoError(t, err)
	assert.Equal(t, "folder", srcType)

	model, err := dp.GetMetadata(ctx, store.MetaEmbeddingModel)
	require.NoError(t, err)
	assert.Equal(t, provider.ModelName(), model)

	dims, err := dp.GetMetadata(ctx, store.MetaEmbeddingDims)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(provider.Dimension()), dims)

	// Frozen content is recallable: a query about foxes lands on animals.txt.
	qvec, err := provider.Embed(ctx, []string{"quick brown fox"})
	require.NoError(t, err)
	results, err := dp.Recall(ctx, qvec[0], 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "notes/animals.txt", results[0].FilePath)
}

func TestPipeline_UnsupportedSource(t *testing.T) {
	pipeline, _, _ := newPipeline(t)

	_, err := pipeline.Run(context.Background(), filepath.Join(t.TempDir(), "no-such-source"))
	require.Error(t, err)
}

func TestPipeline_EmptyTextFileStoredWithoutChunks(t *testing.T) {
	ctx := context.Background()
	source := writeSourceTree(t, map[string]string{"empty.txt": ""})

	pipeline, dp, _ := newPipeline(t)
	stats, err := pipeline.Run(ctx, source)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Files)
	assert.Zero(t, stats.Chunks)

	rec, err := dp.ReadFile(ctx, "empty.txt")
	require.NoError(t, err)
	assert.False(t, rec.IsBinary)
}

func TestPipeline_EmbedBatching(t *testing.T) {
	ctx := context.Background()

	// Eleven paragraphs, batch size three: the counting provider must see
	// ceil(11/3) = 4 requests and every text exactly once.
	var sb strings.Builder
	for i := 0; i < 11; i++ {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(strings.Repeat("paragraph number "+strconv.Itoa(i)+" ", 5))
	}
	source := writeSourceTree(t, map[string]string{"doc.txt": sb.String()})

	pipeline, _, _ := newPipeline(t)
	counter := &countingProvider{inner: embed.NewHash(32)}
	pipeline.Provider = counter
	pipeline.EmbedBatch = 3

	stats, err := pipeline.Run(ctx, source)
	require.NoError(t, err)

	assert.Equal(t, 11, stats.Chunks)
	assert.Equal(t, 11, counter.texts)
	assert.Equal(t, 4, counter.calls)
}

// countingProvider wraps a provider and records request sizes.
type countingProvider struct {
	inner embed.Provider
	calls int
	texts int
}

func (c *countingProvider) ModelName() string { return c.inner.ModelName() }
func (c *countingProvider) Dimension() int    { return c.inner.Dimension() }

func (c *countingProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls++
	c.texts += len(texts)
	return c.inner.Embed(ctx, texts)
}
