// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doctown/docpack/internal/deck"
	"github.com/doctown/docpack/internal/embed"
	"github.com/doctown/docpack/internal/store"
	"github.com/doctown/docpack/internal/store/sqlite"
)

func newDeckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deck <pack.docpack>",
		Short: "Browse a docpack interactively",
		Long:  "Open a full-screen terminal browser over a frozen docpack: type a query, flip through scored chunks.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeck,
	}
}

func runDeck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dp, err := sqlite.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = dp.Close() }()

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	warnProviderMismatch(cmd.Context(), dp, provider)

	info, err := collectInfo(cmd.Context(), dp)
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("%s  (%d files, model %s)", args[0], info.Files, info.EmbeddingModel)

	return deck.Run(&deckQuerier{store: dp, provider: provider}, summary)
}

// deckQuerier adapts store + embedder into the deck's recall surface.
type deckQuerier struct {
	store    store.DocStore
	provider embed.Provider
}

func (q *deckQuerier) Recall(ctx context.Context, query string, limit int) ([]store.SearchResult, error) {
	vectors, err := q.provider.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return q.store.Recall(ctx, vectors[0], limit)
}
