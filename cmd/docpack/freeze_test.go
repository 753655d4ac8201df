// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := strings.Repeat("ships sail across the wine-dark sea toward troy ", 3)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "iliad.txt"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), []byte{0x89, 0x50, 0x4e, 0x47}, 0o644))
	return dir
}

func TestFreezeCommand_EndToEnd(t *testing.T) {
	isolateHome(t)
	source := writeSource(t)
	output := filepath.Join(t.TempDir(), "out.docpack")

	// Default config uses the offline hash provider, so no key is needed.
	stdout, err := execute(t, "freeze", source, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Froze 2 files")
	assert.FileExists(t, output)
}

func TestInfoCommand_AfterFreeze(t *testing.T) {
	isolateHome(t)
	source := writeSource(t)
	output := filepath.Join(t.TempDir(), "out.docpack")

	_, err := execute(t, "freeze", source, "-o", output)
	require.NoError(t, err)

	stdout, err := execute(t, "info", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ID:")
	assert.Contains(t, stdout, "folder")
	assert.Contains(t, stdout, "hash-fnv")
	assert.Contains(t, stdout, "Files:            2 (1 binary)")
}

func TestInfoCommand_YAML(t *testing.T) {
	isolateHome(t)
	source := writeSource(t)
	output := filepath.Join(t.TempDir(), "out.docpack")

	_, err := execute(t, "freeze", source, "-o", output)
	require.NoError(t, err)

	stdout, err := execute(t, "info", output, "--yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "docpack_id:")
	assert.Contains(t, stdout, "source_type: folder")
	assert.Contains(t, stdout, "files: 2")
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "project.docpack", defaultOutputPath("project"))
	assert.Equal(t, "bundle.docpack", defaultOutputPath("bundle.zip"))
	assert.Equal(t, filepath.Join("a", "b.docpack"), defaultOutputPath(filepath.Join("a", "b")))
}
