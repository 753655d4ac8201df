// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

// Package config loads and validates docpack configuration from file,
// environment, and defaults.
package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	dperr "github.com/doctown/docpack/pkg/errors"
)

// Config is the top-level docpack configuration.
type Config struct {
	Chunking  ChunkingConfig  `mapstructure:"chunking"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ChunkingConfig bounds the paragraph chunker.
type ChunkingConfig struct {
	MaxChunkSize int `mapstructure:"max_chunk_size"`
	MinChunkSize int `mapstructure:"min_chunk_size"`
}

// EmbeddingConfig selects and parameterizes the embedding provider.
type EmbeddingConfig struct {
	Provider   string `mapstructure:"provider"`
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Dimensions int    `mapstructure:"dimensions"`
}

// ServerConfig controls how `docpack serve` listens.
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix DOCPACK_).
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("chunking.max_chunk_size", 1000)
	v.SetDefault("chunking.min_chunk_size", 50)
	v.SetDefault("embedding.provider", "hash")
	v.SetDefault("server.listen", "127.0.0.1:8421")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Environment
	v.SetEnvPrefix("DOCPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// File
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, dperr.Errorf(dperr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, dperr.Errorf(dperr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, dperr.Errorf(dperr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors.
// It returns a slice of all validation errors found, collecting all issues
// rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateChunking()...)
	errs = append(errs, c.validateEmbedding()...)
	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

func (c *Config) validateChunking() []error {
	var errs []error

	if c.Chunking.MaxChunkSize <= 0 {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: chunking.max_chunk_size must be greater than 0, got %d",
			c.Chunking.MaxChunkSize,
		))
	}

	if c.Chunking.MinChunkSize <= 0 {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: chunking.min_chunk_size must be greater than 0, got %d",
			c.Chunking.MinChunkSize,
		))
	}

	if c.Chunking.MaxChunkSize > 0 && c.Chunking.MinChunkSize > 0 &&
		c.Chunking.MinChunkSize >= c.Chunking.MaxChunkSize {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: chunking.min_chunk_size (%d) must be less than chunking.max_chunk_size (%d)",
			c.Chunking.MinChunkSize, c.Chunking.MaxChunkSize,
		))
	}

	return errs
}

func (c *Config) validateEmbedding() []error {
	var errs []error

	validProviders := map[string]bool{"openai": true, "google": true, "hash": true}
	if !validProviders[c.Embedding.Provider] {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: embedding.provider must be one of [openai, google, hash], got %q",
			c.Embedding.Provider,
		))
	}

	if c.Embedding.Dimensions < 0 {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: embedding.dimensions must not be negative, got %d",
			c.Embedding.Dimensions,
		))
	}

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue, "config: server.listen must not be empty"))
		return errs
	}

	_, portStr, err := net.SplitHostPort(c.Server.Listen)
	if err != nil {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: server.listen must be a valid host:port address, got %q: %w",
			c.Server.Listen, err,
		))
		return errs
	}

	// Host can be empty (e.g. ":8080"), which is valid.
	port, err := strconv.Atoi(portStr)
	if err != nil {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be a number, got %q",
			portStr,
		))
	} else if port < 1 || port > 65535 {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be between 1 and 65535, got %d",
			port,
		))
	}

	return errs
}

func (c *Config) validateLogging() []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: logging.level must be one of [debug, info, warn, error], got %q",
			c.Logging.Level,
		))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, dperr.Errorf(dperr.CodeConfigValidateInvalidValue,
			"config: logging.format must be one of [text, json], got %q",
			c.Logging.Format,
		))
	}

	return errs
}
