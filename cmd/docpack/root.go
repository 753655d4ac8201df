// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/doctown/docpack/internal/config"
	"github.com/doctown/docpack/internal/embed"
	"github.com/doctown/docpack/internal/secrets"
)

// NewRootCmd creates the root docpack command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docpack",
		Short:         "docpack - portable semantic snapshots of file trees",
		Long:          "docpack freezes a folder or archive into a single queryable file: contents, chunks, and embedding vectors together.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newFreezeCmd(),
		newServeCmd(),
		newRunCmd(),
		newInfoCmd(),
		newDeckCmd(),
		newSecretCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	return root
}

// loadConfig resolves the config file (explicit flag, else the default
// location, bootstrapping it on first run) and sets up logging to match.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		if defaultPath, err := config.DefaultConfigPath(); err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				cfgPath = defaultPath
			} else if path := config.BootstrapConfig(); path != "" {
				cfgPath = path
			}
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	config.WarnInsecurePermissions(cfgPath)
	setupLogging(cmd, cfg)
	return cfg, nil
}

// setupLogging configures the default slog logger from config, with the
// --verbose flag forcing debug level.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// buildProvider constructs the embedding provider from config, resolving
// the API key through config, environment, and the OS keyring. The hash
// provider needs no key, so it never touches the keyring.
func buildProvider(cfg *config.Config) (embed.Provider, error) {
	var apiKey string
	if cfg.Embedding.Provider == "openai" || cfg.Embedding.Provider == "google" {
		var err error
		apiKey, err = secrets.ResolveAPIKey(secretStoreFactory(), cfg.Embedding.Provider, cfg.Embedding.APIKey)
		if err != nil {
			return nil, err
		}
	}

	return embed.New(embed.Config{
		Provider:   cfg.Embedding.Provider,
		Model:      cfg.Embedding.Model,
		APIKey:     apiKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Dimensions: cfg.Embedding.Dimensions,
	})
}
