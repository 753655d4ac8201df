// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doctown/docpack/internal/store"
	"github.com/doctown/docpack/internal/store/sqlite"
)

// testPackPath returns a temp .docpack path.
func testPackPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name+".docpack")
}

// openPack opens a docpack and registers cleanup.
func openPack(t *testing.T, name string) *sqlite.DocPack {
	t.Helper()
	dp, err := sqlite.Open(testPackPath(t, name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dp.Close() })
	return dp
}

func textRecord(path, content string) *store.FileRecord {
	return &store.FileRecord{
		Path:      path,
		Content:   &content,
		SizeBytes: int64(len(content)),
		Extension: filepath.Ext(path),
	}
}
