// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doctown/docpack/internal/chunk"
	"github.com/doctown/docpack/internal/config"
	"github.com/doctown/docpack/internal/freeze"
	"github.com/doctown/docpack/internal/ingest"
	"github.com/doctown/docpack/internal/store"
	"github.com/doctown/docpack/internal/store/sqlite"
)

func newFreezeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freeze <source>",
		Short: "Freeze a folder or zip archive into a docpack",
		Long:  "Walk the source, store every file, chunk and embed text content, and write a single portable .docpack file.",
		Args:  cobra.ExactArgs(1),
		RunE:  runFreeze,
	}

	cmd.Flags().StringP("output", "o", "", "output path (default: <source>.docpack)")

	return cmd
}

func runFreeze(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = defaultOutputPath(source)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	dp, err := sqlite.Open(output)
	if err != nil {
		return err
	}
	defer func() { _ = dp.Close() }()

	pipeline := &freeze.Pipeline{
		Store:    dp,
		Registry: ingest.DefaultRegistry(),
		Provider: provider,
		Splitter: chunkSplitter(cfg),
	}

	stats, err := pipeline.Run(cmd.Context(), source)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"Froze %d files (%d text, %d binary) into %s: %d chunks, %d vectors in %s\n",
		stats.Files, stats.TextFiles, stats.BinaryFiles, output,
		stats.Chunks, stats.Vectors, stats.Duration.Round(1e6))
	return err
}

// defaultOutputPath derives <source>.docpack, dropping a .zip suffix first.
func defaultOutputPath(source string) string {
	base := filepath.Clean(source)
	if strings.EqualFold(filepath.Ext(base), ".zip") {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + ".docpack"
}

// chunkSplitter honors configured chunk bounds while keeping the stock
// splitter for the default configuration.
func chunkSplitter(cfg *config.Config) func(text, filePath string) []store.Chunk {
	if cfg.Chunking.MaxChunkSize == chunk.MaxChunkSize && cfg.Chunking.MinChunkSize == chunk.MinChunkSize {
		return chunk.Split
	}
	return func(text, filePath string) []store.Chunk {
		return chunk.SplitWithBounds(text, filePath, cfg.Chunking.MaxChunkSize, cfg.Chunking.MinChunkSize)
	}
}
