// Package uriutil implements the URI operations needed for $id and $ref
// handling: reference resolution against a base (RFC 3986 section 5),
// fragment extraction and percent-decoding.
package uriutil

import (
	"fmt"
	"net/url"
)

// Resolve resolves ref against base and returns the resulting URI string.
// Absolute refs replace the base entirely, fragment-only refs keep the base
// path and query, and relative refs merge with the base path.
// An empty base makes ref its own result.
func Resolve(base, ref string) (string, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing reference %q: %w", ref, err)
	}
	if base == "" {
		return refURL.String(), nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URI %q: %w", base, err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// Split separates uri into its fragment-less part and its percent-decoded
// fragment. "http://x/s.json#/a%25b" yields ("http://x/s.json", "/a%b").
func Split(uri string) (base, fragment string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("parsing URI %q: %w", uri, err)
	}
	fragment = u.Fragment
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), fragment, nil
}

// Normalize returns the canonical string form of uri, as used for registry
// keys. An empty trailing fragment ("#") is dropped.
func Normalize(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parsing URI %q: %w", uri, err)
	}
	return u.String(), nil
}

// DecodePercent decodes %XX escapes in s.
func DecodePercent(s string) (string, error) {
	return url.PathUnescape(s)
}

// IsAbsolute reports whether uri carries a scheme.
func IsAbsolute(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.IsAbs()
}
