// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package secrets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/doctown/docpack/internal/secrets"
	dperr "github.com/doctown/docpack/pkg/errors"
)

func init() {
	// Use the mock keyring for all tests so they don't touch the real OS keyring.
	keyring.MockInit()
}

func TestKeyringStore_StoreAndRetrieve(t *testing.T) {
	ks := secrets.NewKeyringStore()
	svc := "test-store-retrieve"

	require.NoError(t, ks.Store(svc, "api-key", "sk-secret-123"))

	val, err := ks.Retrieve(svc, "api-key")
	require.NoError(t, err)
	assert.Equal(t, "sk-secret-123", val)
}

func TestKeyringStore_RetrieveNotFound(t *testing.T) {
	ks := secrets.NewKeyringStore()

	_, err := ks.Retrieve("no-such-service", "no-key")
	require.Error(t, err)
	assert.True(t, dperr.HasCode(err, dperr.CodeSecretNotFound), "expected CodeSecretNotFound, got: %v", err)
}

func TestKeyringStore_Delete(t *testing.T) {
	ks := secrets.NewKeyringStore()
	svc := "test-delete"

	require.NoError(t, ks.Store(svc, "temp-key", "temp-value"))
	require.NoError(t, ks.Delete(svc, "temp-key"))

	_, err := ks.Retrieve(svc, "temp-key")
	require.Error(t, err)
	assert.True(t, dperr.HasCode(err, dperr.CodeSecretNotFound))
}

func TestKeyringStore_DeleteNotFound(t *testing.T) {
	ks := secrets.NewKeyringStore()

	err := ks.Delete("no-such-service", "no-key")
	require.Error(t, err)
	assert.True(t, dperr.HasCode(err, dperr.CodeSecretNotFound))
}

func TestKeyringStore_List(t *testing.T) {
	ks := secrets.NewKeyringStore()
	svc := "test-list"

	keys, err := ks.List(svc)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, ks.Store(svc, "first", "1"))
	require.NoError(t, ks.Store(svc, "second", "2"))
	require.NoError(t, ks.Store(svc, "first", "1-again")) // idempotent in the index

	keys, err = ks.List(svc)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first", "second"}, keys)

	require.NoError(t, ks.Delete(svc, "first"))
	keys, err = ks.List(svc)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, keys)
}

func TestKeyringStore_EmptyInputs(t *testing.T) {
	ks := secrets.NewKeyringStore()

	assert.True(t, dperr.IsInvalidInput(ks.Store("", "k", "v")))
	assert.True(t, dperr.IsInvalidInput(ks.Store("svc", "", "v")))

	_, err := ks.Retrieve("", "k")
	assert.True(t, dperr.IsInvalidInput(err))

	assert.True(t, dperr.IsInvalidInput(ks.Delete("svc", "")))
}
