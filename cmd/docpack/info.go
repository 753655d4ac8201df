// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doctown/docpack/internal/store"
	"github.com/doctown/docpack/internal/store/sqlite"
	dperr "github.com/doctown/docpack/pkg/errors"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <pack.docpack>",
		Short: "Show a docpack's provenance and contents",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	cmd.Flags().Bool("yaml", false, "output as YAML")

	return cmd
}

// packInfo is the printable summary of one docpack.
type packInfo struct {
	Path           string `yaml:"path"`
	DocpackID      string `yaml:"docpack_id"`
	Source         string `yaml:"source,omitempty"`
	SourceType     string `yaml:"source_type,omitempty"`
	CreatedAt      string `yaml:"created_at,omitempty"`
	EmbeddingModel string `yaml:"embedding_model,omitempty"`
	EmbeddingDims  string `yaml:"embedding_dimensions,omitempty"`
	Files          int    `yaml:"files"`
	BinaryFiles    int    `yaml:"binary_files"`
	TotalSizeBytes int64  `yaml:"total_size_bytes"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}

	dp, err := sqlite.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = dp.Close() }()

	info, err := collectInfo(cmd.Context(), dp)
	if err != nil {
		return err
	}
	info.Path = args[0]

	out := cmd.OutOrStdout()
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		enc := yaml.NewEncoder(out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "Docpack:          %s\n", info.Path)
	fmt.Fprintf(out, "ID:               %s\n", info.DocpackID)
	if info.Source != "" {
		fmt.Fprintf(out, "Source:           %s (%s)\n", info.Source, info.SourceType)
	}
	if info.CreatedAt != "" {
		fmt.Fprintf(out, "Created:          %s\n", info.CreatedAt)
	}
	if info.EmbeddingModel != "" {
		fmt.Fprintf(out, "Embedding model:  %s (%s dims)\n", info.EmbeddingModel, info.EmbeddingDims)
	}
	fmt.Fprintf(out, "Files:            %d (%d binary)\n", info.Files, info.BinaryFiles)
	fmt.Fprintf(out, "Content size:     %d bytes\n", info.TotalSizeBytes)
	return nil
}

func collectInfo(ctx context.Context, dp *sqlite.DocPack) (*packInfo, error) {
	info := &packInfo{}

	fields := map[string]*string{
		store.MetaDocpackID:      &info.DocpackID,
		store.MetaSource:         &info.Source,
		store.MetaSourceType:     &info.SourceType,
		store.MetaCreatedAt:      &info.CreatedAt,
		store.MetaEmbeddingModel: &info.EmbeddingModel,
		store.MetaEmbeddingDims:  &info.EmbeddingDims,
	}
	for key, dst := range fields {
		val, err := dp.GetMetadata(ctx, key)
		if err != nil {
			if dperr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		*dst = val
	}

	files, err := dp.ListFiles(ctx, "")
	if err != nil {
		return nil, err
	}
	info.Files = len(files)
	for _, f := range files {
		if f.IsBinary {
			info.BinaryFiles++
		}
		info.TotalSizeBytes += f.SizeBytes
	}

	return info, nil
}
