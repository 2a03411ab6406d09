// Package storage holds the LocalStorage backends. Every backend is scoped
// to one backend origin, the way browser storage is.
package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Origin derives the storage scope of an endpoint: scheme and host,
// flattened into a slug usable as a directory or key segment.
func Origin(endpoint string) (string, error) {
	if strings.TrimSpace(endpoint) == "" {
		return "", errors.New("endpoint is required to scope local storage")
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("endpoint %q has no origin", endpoint)
	}

	slug := strings.ToLower(parsed.Scheme + "_" + parsed.Host)
	return strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(slug), nil
}
