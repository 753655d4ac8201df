// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/doctown/docpack/internal/config"
	"github.com/doctown/docpack/internal/secrets"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostics",
		Long:  "Check binary health, configuration, embedding API keys, and disk space.",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		if defaultPath, err := config.DefaultConfigPath(); err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				cfgPath = defaultPath
			}
		}
	}

	checks := []struct {
		name string
		fn   func() string
	}{
		{"Binary", checkBinary},
		{"Platform", checkPlatform},
		{"Config", func() string { return checkConfig(cfgPath) }},
		{"API Keys", func() string { return checkAPIKeys(cfgPath) }},
		{"Disk Space", checkDiskSpace},
	}

	for _, c := range checks {
		if _, err := fmt.Fprintf(w, "%-20s %s\n", c.name+":", c.fn()); err != nil {
			return err
		}
	}

	return nil
}

func checkBinary() string {
	return fmt.Sprintf("docpack %s (%s/%s)", version, runtime.GOOS, runtime.GOARCH)
}

func checkPlatform() string {
	return fmt.Sprintf("%s/%s, Go %s", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func checkConfig(cfgPath string) string {
	if cfgPath == "" {
		return "using defaults (no config file found)"
	}
	if _, err := config.Load(cfgPath); err != nil {
		return fmt.Sprintf("invalid: %s", err)
	}
	return fmt.Sprintf("loaded from %s", cfgPath)
}

// checkAPIKeys reports which hosted embedding providers have a resolvable
// key. The hash provider needs none, so a pack can always be frozen.
func checkAPIKeys(cfgPath string) string {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		cfg = &config.Config{}
	}

	store := secretStoreFactory()
	var available []string
	for _, provider := range []string{"openai", "google"} {
		configured := ""
		if cfg.Embedding.Provider == provider {
			configured = cfg.Embedding.APIKey
		}
		if key, err := secrets.ResolveAPIKey(store, provider, configured); err == nil && key != "" {
			available = append(available, provider)
		}
	}

	if len(available) == 0 {
		return "none configured (hash provider still works offline)"
	}
	return fmt.Sprintf("%v configured", available)
}

func checkDiskSpace() string {
	path, err := os.Getwd()
	if err != nil {
		path, _ = os.UserHomeDir()
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return fmt.Sprintf("unable to check: %s", err)
	}

	availBytes := stat.Bavail * uint64(stat.Bsize)
	return formatBytes(availBytes) + " available"
}

// formatBytes formats a byte count as a human-readable string.
func formatBytes(b uint64) string {
	const (
		gb = 1024 * 1024 * 1024
		mb = 1024 * 1024
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(mb))
	default:
		return fmt.Sprintf("%d bytes", b)
	}
}
