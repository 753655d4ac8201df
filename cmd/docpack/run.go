// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doctown/docpack/internal/freeze"
	"github.com/doctown/docpack/internal/ingest"
	"github.com/doctown/docpack/internal/server"
	"github.com/doctown/docpack/internal/store/sqlite"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <source>",
		Short: "Freeze a source and serve it in one step",
		Long:  "Freeze the source into a temporary docpack and immediately serve it. The pack is deleted on shutdown.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}

	cmd.Flags().String("listen", "", "override listen address (host:port)")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.Listen = listen
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "docpack-run-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	packPath := filepath.Join(tmpDir, "run.docpack")
	dp, err := sqlite.Open(packPath)
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
	if _, err := pipeline.Run(cmd.Context(), args[0]); err != nil {
		return err
	}

	srv, err := server.New(server.Config{ListenAddr: cfg.Server.Listen}, dp, provider, slog.Default())
	if err != nil {
		return err
	}

	return srv.Start(cmd.Context())
}
