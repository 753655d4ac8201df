// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/doctown/docpack/internal/embed"
	"github.com/doctown/docpack/internal/server"
	"github.com/doctown/docpack/internal/store"
	"github.com/doctown/docpack/internal/store/sqlite"
	dperr "github.com/doctown/docpack/pkg/errors"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <pack.docpack>",
		Short: "Serve a docpack over HTTP",
		Long:  "Open a frozen docpack and expose its files and semantic recall over a REST API.",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}

	cmd.Flags().String("listen", "", "override listen address (host:port)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.Listen = listen
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

	srv, err := server.New(server.Config{ListenAddr: cfg.Server.Listen}, dp, provider, slog.Default())
	if err != nil {
		return err
	}

	return srv.Start(cmd.Context())
}

// warnProviderMismatch flags queries embedded with a different model than
// the pack was frozen with; scores would be meaningless.
func warnProviderMismatch(ctx context.Context, dp *sqlite.DocPack, provider embed.Provider) {
	frozen, err := dp.GetMetadata(ctx, store.MetaEmbeddingModel)
	if err != nil {
		if !dperr.IsNotFound(err) {
			slog.Debug("could not read pack embedding model", "error", err)
		}
		return
	}
	if frozen != provider.ModelName() {
		slog.Warn("query embedding model differs from the model the pack was frozen with",
			"frozen_model", frozen,
			"query_model", provider.ModelName())
	}
}
