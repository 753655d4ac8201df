// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package secrets

import (
	"os"
	"strings"

	dperr "github.com/doctown/docpack/pkg/errors"
)

const keyringScheme = "keyring://"

// envKeysByProvider lists the environment variables consulted for each
// embedding provider, in priority order.
var envKeysByProvider = map[string][]string{
	"openai": {"DOCPACK_OPENAI_API_KEY", "OPENAI_API_KEY"},
	"google": {"DOCPACK_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// IsKeyringURI reports whether value uses the keyring:// URI scheme.
func IsKeyringURI(value string) bool {
	return strings.HasPrefix(value, keyringScheme)
}

// ParseKeyringURI extracts service and key from a keyring://service/key URI.
// Returns an error if the URI is malformed.
func ParseKeyringURI(uri string) (service, key string, err error) {
	if !IsKeyringURI(uri) {
		return "", "", dperr.Errorf(dperr.CodeSecretInvalidInput, "not a keyring URI: %q", uri)
	}

	path := strings.TrimPrefix(uri, keyringScheme)
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", dperr.Errorf(dperr.CodeSecretInvalidInput,
			"invalid keyring URI %q: expected keyring://service/key", uri)
	}

	return parts[0], parts[1], nil
}

// ResolveKeyringURI resolves a single keyring:// URI to its secret value.
// Returns the original value unchanged if it is not a keyring URI.
func ResolveKeyringURI(store Store, value string) (string, error) {
	if !IsKeyringURI(value) {
		return value, nil
	}

	service, key, err := ParseKeyringURI(value)
	if err != nil {
		return "", err
	}

	secret, err := store.Retrieve(service, key)
	if err != nil {
		return "", dperr.Wrapf(err, dperr.CodeSecretResolveFailure,
			"resolving keyring URI %q", value)
	}

	return secret, nil
}

// APIKeyName returns the keyring key under which a provider's API key is
// stored, e.g. "openai-api-key".
func APIKeyName(provider string) string {
	return provider + "-api-key"
}

// ResolveAPIKey finds the API key for an embedding provider. Priority:
// the configured value (with keyring:// URIs resolved), then the
// provider's environment variables, then the docpack keyring service.
// An empty string with a nil error means no key is configured anywhere;
// providers that need one report that themselves.
func ResolveAPIKey(store Store, provider, configured string) (string, error) {
	if configured != "" {
		return ResolveKeyringURI(store, configured)
	}

	for _, env := range envKeysByProvider[provider] {
		if val := os.Getenv(env); val != "" {
			return val, nil
		}
	}

	val, err := store.Retrieve(Service, APIKeyName(provider))
	if err != nil {
		if dperr.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}
